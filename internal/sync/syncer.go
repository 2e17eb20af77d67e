package sync

import (
	"context"
	"log"
	"os"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/db"
)

// syncer implements the Syncer interface.
type syncer struct {
	logger *log.Logger
}

// New creates a new Syncer instance.
//
// If logger is nil, a default logger writing to stderr is used.
//
// Example:
//
//	conn, err := db.Open(ctx, settings.Database)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//	syncer := sync.New(nil)
func New(logger *log.Logger) Syncer {
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	return &syncer{logger: logger}
}

// SyncModel implements Syncer.SyncModel.
func (s *syncer) SyncModel(ctx context.Context, conn *db.Conn, m verge.Model) ModelResult {
	table := verge.TableName(m)
	result := ModelResult{
		Model:   m.ModelName(),
		Table:   table,
		Outcome: s.ensureTable(ctx, conn, m, table),
	}

	if result.Outcome.Failed() {
		// Index work presumes the table. Skip it and let the caller
		// move on to the next model.
		return result
	}

	for _, f := range m.ModelFields() {
		if !f.WantsIndex() {
			continue
		}
		result.Indexes = append(result.Indexes, IndexResult{
			Name:    verge.IndexName(f),
			Outcome: s.ensureIndex(ctx, conn, m, f, table),
		})
	}

	return result
}

// SyncModels implements Syncer.SyncModels.
func (s *syncer) SyncModels(ctx context.Context, conn *db.Conn, models []verge.Model) []ModelResult {
	results := make([]ModelResult, 0, len(models))
	for _, m := range models {
		results = append(results, s.SyncModel(ctx, conn, m))
	}
	return results
}

// ensureTable checks for the model's table and creates it if absent.
func (s *syncer) ensureTable(ctx context.Context, conn *db.Conn, m verge.Model, table string) Outcome {
	exists, err := conn.TableExists(ctx, table)
	if err != nil {
		s.logger.Printf("WARNING: Failed to check table %s: %v", table, err)
		return failed(err)
	}
	if exists {
		return alreadyExists()
	}

	if err := conn.CreateTable(ctx, m); err != nil {
		s.logger.Printf("WARNING: Failed to create table %s: %v", table, err)
		return failed(err)
	}

	s.logger.Printf("Created table: %s", table)
	return created()
}

// ensureIndex checks for the field's index on the table and creates it
// if absent.
func (s *syncer) ensureIndex(ctx context.Context, conn *db.Conn, m verge.Model, f verge.Field, table string) Outcome {
	index := verge.IndexName(f)

	exists, err := conn.IndexExists(ctx, table, index)
	if err != nil {
		s.logger.Printf("WARNING: Failed to check index %s on %s: %v", index, table, err)
		return failed(err)
	}
	if exists {
		return alreadyExists()
	}

	if err := conn.CreateIndex(ctx, m, f); err != nil {
		s.logger.Printf("WARNING: Failed to create index %s on %s: %v", index, table, err)
		return failed(err)
	}

	s.logger.Printf("Created index: %s on %s", index, table)
	return created()
}
