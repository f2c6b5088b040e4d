// Package redis connects to the Redis server used for session storage.
//
// Connect retries the initial ping according to Config, and Healthcheck turns
// a client into a probe for readiness endpoints:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	sessions := session.New(session.WithStore(session.NewRedisStore(client)), ...)
//
// Errors wrap the sentinels in this package with errors.Join so they can be
// matched with errors.Is while keeping the go-redis cause.
package redis
