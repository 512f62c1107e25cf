// Package dynamodb provides the DynamoDB session store and client setup.
//
// Sessions live in a single table keyed by the "sessionid" string attribute.
// The "expiry" attribute holds epoch seconds and should be configured as the
// table's TTL attribute so DynamoDB evicts stale sessions on its own; reads
// also treat expired items as absent because eviction is lazy.
//
//	cfg := config.MustLoad[dynamodb.Config]()
//	client, err := dynamodb.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := dynamodb.NewStore(client, cfg.TableName)
//	if err := store.Healthcheck(ctx); err != nil {
//		return err // table missing or unreachable
//	}
//
// Setting IS_LOCAL points the client at DynamoDB Local (http://localhost:8090
// by default) with static credentials.
package dynamodb
