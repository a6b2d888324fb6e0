// Package blazingsql is the client side control plane of a blazingsql
// cluster.  Opening a Context starts (or finds) the orchestrator,
// compute engine and query planner processes, connects to the
// orchestrator, and from then on turns create table inputs into
// registrations the engine can load.
//
// The control connection is found by Config.Bridge in the bridge
// registry.  The default "blazing" has to be registered by the wire
// protocol implementation, which lives outside this module; importing
// bridge/mockbridge registers an in-memory "mock" orchestrator:
//
//	import _ "github.com/blazingdb/blazingsql/bridge/mockbridge"
//
//	conf := blazingsql.DefaultConfig()
//	conf.Bridge = "mock"
//	ctx := context.Background()
//	bc, err := blazingsql.Open(ctx, conf)
//	if err != nil {
//		return err
//	}
//	defer bc.Close()
//	if _, err := bc.CreateTable(ctx, "orders", "/data/orders.parquet", nil); err != nil {
//		return err
//	}
//	rs, err := bc.SQL(ctx, "SELECT count(*) FROM orders")
package blazingsql
