// Package server runs an http.Handler with graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, handler))
//	return eg.Wait()
//
// Run returns when ctx is cancelled (after shutdown completes) or when the
// listener fails. Shutdown waits up to the configured timeout for in-flight
// requests.
package server
