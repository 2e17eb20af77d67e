// Package sync implements schema synchronization between declared models and the database.
//
// Overview
//
// The sync package holds the core reconciliation logic behind the
// sync-db command. It compares the models registered by configured
// applications against the live database schema and creates whatever
// tables and secondary indexes are missing. Existing objects are left
// untouched; nothing is ever dropped or altered.
//
// Architecture
//
// Declarations flow from registered apps to the database:
//
//	Application packages (init-time registration)
//	     └── verge.Register("blog", Post)   → verge.Model values
//	                                              ↓
//	                                           Syncer
//	                                              ↓
//	                                        db.Conn (DDL)
//	                                              ↓
//	                                           Report
//
// Usage
//
// Whole-run orchestration:
//
//	report, err := sync.Run(ctx, settings, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(ui.RenderReport(report))
//
// Syncing one app's models against an open connection:
//
//	conn, err := db.Open(ctx, settings.Database)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	syncer := sync.New(nil)
//	results := syncer.SyncModels(ctx, conn, verge.ModelsFor("blog"))
//
// Error Handling
//
// Only two failures unwind a run:
//
//   - A table name collision between models, returned before connecting
//   - A connection failure, returned with Report{Aborted: true}
//
// Everything else is captured as data: a failed table creation records
// a failed outcome, skips that model's indexes, and the run continues
// with the next model. A failed index creation affects only that index.
//
// Idempotence
//
// Running sync twice over unchanged declarations yields created
// outcomes everywhere on the first run and exists outcomes everywhere
// on the second. The second run issues no DDL at all.
//
// Concurrency
//
// Processing is strictly sequential: apps in configured order, models
// in declaration order, indexes in field order. Concurrent DDL against
// one connection would let schema statements race each other for no
// measurable gain on a run this short.
package sync
