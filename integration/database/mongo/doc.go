// Package mongo provides MongoDB client initialization with retries, health
// checking and a Mongo-backed session store.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, cfg.Database)
//	if err != nil {
//		return err
//	}
//	store := mongo.NewStore(db.Collection(cfg.Collection))
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// Sessions are documents keyed by _id. The expires_at field is a BSON date
// covered by a TTL index, so MongoDB removes stale sessions in the background;
// reads hide expired documents the monitor has not reached yet.
//
// Configuration is read from MONGODB_* variables (see Config). New retries the
// initial ping to ride out cold starts of managed clusters.
package mongo
