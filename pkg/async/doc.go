// Package async runs error-returning functions in the background and
// exposes their outcome as futures.
//
//	f := async.Exec(ctx, id, store.IncrementRequests)
//	if err := f.Await(); err != nil {
//		return err
//	}
//
// Detached runs work that must outlive the caller's request: the context is
// stripped of cancellation and bounded by its own timeout instead.
//
//	async.Detached(ctx, 2*time.Second, id, func(ctx context.Context, id string) error {
//		return store.IncrementRequests(ctx, id)
//	})
package async
