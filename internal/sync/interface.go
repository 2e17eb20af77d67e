package sync

import (
	"context"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/db"
)

// Syncer reconciles declared models against the live database schema.
//
// The syncer is responsible for checking which tables and secondary
// indexes already exist, creating the ones that are missing, and
// recording an outcome for every unit it touches. It never drops or
// alters anything: synchronization is additive only.
//
// The syncer is designed to be resilient - individual model failures
// do not stop the run. A failed table creation skips that model's
// indexes and moves on to the next model; a failed index creation
// still attempts the model's remaining indexes.
type Syncer interface {
	// SyncModel reconciles a single model: its table, then one index
	// per indexed field in declaration order.
	//
	// Outcomes are recorded in the returned ModelResult; errors from
	// schema statements become failed outcomes, never returned errors.
	//
	// Example:
	//   result := syncer.SyncModel(ctx, conn, blog.Post)
	SyncModel(ctx context.Context, conn *db.Conn, m verge.Model) ModelResult

	// SyncModels reconciles models strictly sequentially, in the order
	// given. One result per model, same order.
	//
	// Sequential processing is a guarantee, not an implementation
	// detail: concurrent DDL against one connection is how schema
	// statements stop observing each other.
	//
	// Example:
	//   results := syncer.SyncModels(ctx, conn, verge.ModelsFor("blog"))
	SyncModels(ctx context.Context, conn *db.Conn, models []verge.Model) []ModelResult
}
