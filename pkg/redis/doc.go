// Package redis connects to Redis with go-redis/v9.
//
// Connect retries until the server answers PING, bounded by the attempt count
// and the connect timeout in Config. Check adapts a client to a
// readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Sentinel errors wrap the driver error with errors.Join, so both can be
// matched with errors.Is.
package redis
