// Package mongo connects to MongoDB with the official v2 driver.
//
// New applies pool and retry settings from Config, which is populated from
// MONGODB_* environment variables, and returns a client only after a
// successful ping. Check adapts a client to a readiness probe.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
