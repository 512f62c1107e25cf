package async

import (
	"context"
	"time"
)

// ExecFuture is the pending result of an asynchronous function.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Await blocks until the function returns and reports its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// Exec runs fn(ctx, param) in a new goroutine. If ctx is already done the
// function is not called and the future holds ctx.Err().
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.err = fn(ctx, param)
	}()

	return f
}

// Detached runs fn like Exec but on a context that ignores the parent's
// cancellation and expires after timeout. Values of ctx remain visible.
// A non-positive timeout leaves the context without deadline.
func Detached[T any](ctx context.Context, timeout time.Duration, param T, fn func(context.Context, T) error) *ExecFuture {
	return Exec(context.WithoutCancel(ctx), param, func(ctx context.Context, p T) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return fn(ctx, p)
	})
}
