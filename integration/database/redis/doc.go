// Package redis provides Redis client initialization, health checking and a
// Redis-backed session store.
//
// Connect parses REDIS_URL, retries the initial ping with exponential back-off
// and returns a ready client:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewStore(client, redis.WithKeyPrefix(cfg.KeyPrefix))
//
// Each session is a hash under "<prefix><id>" with the fields created_at,
// client_ip, requests and expiry. The key expires at the session expiry, so
// Redis evicts stale sessions itself. Usage increments run a small script
// that only touches existing keys.
package redis
