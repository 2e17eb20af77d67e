package sync

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/config"
	"github.com/vergeframework/verge/internal/db"
)

// appModels pairs a configured app with its discovered models, in
// configured order.
type appModels struct {
	app    string
	models []verge.Model
}

// Run performs one complete synchronization run: discover models for
// every configured app, validate derived table names, connect, then
// sync app by app.
//
// A connection failure returns Report{Aborted: true} with zero app
// results alongside the error; nothing was attempted. A table name
// collision returns a nil report and an error wrapping
// config.ErrInvalid, raised before connecting. Every other failure is
// recorded in the report as a failed outcome, never returned.
func Run(ctx context.Context, settings *config.Settings, logger *log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}

	// Discovery happens up front so naming collisions surface before
	// any connection or DDL.
	discovered := make([]appModels, 0, len(settings.Apps))
	for _, app := range settings.Apps {
		discovered = append(discovered, appModels{app: app, models: verge.ModelsFor(app)})
	}

	if err := checkTableNames(discovered); err != nil {
		return nil, err
	}

	logger.Printf("Starting schema sync: engine=%s database=%s apps=%d",
		settings.Database.Engine, settings.Database.Name, len(settings.Apps))

	conn, err := db.Open(ctx, settings.Database)
	if err != nil {
		logger.Printf("WARNING: Connection failed, nothing was synced: %v", err)
		return &Report{Aborted: true}, err
	}
	defer conn.Close()

	syncer := New(logger)
	report := &Report{Apps: make([]AppResult, 0, len(discovered))}

	for _, d := range discovered {
		if len(d.models) == 0 {
			logger.Printf("No models found for app: %s", d.app)
			report.Apps = append(report.Apps, AppResult{App: d.app, NoModels: true})
			continue
		}
		report.Apps = append(report.Apps, AppResult{
			App:    d.app,
			Models: syncer.SyncModels(ctx, conn, d.models),
		})
	}

	t := report.Totals()
	logger.Printf("Schema sync complete: created=%d existing=%d failed=%d",
		t.Created, t.Existing, t.Failed)

	return report, nil
}

// checkTableNames rejects runs where two models collapse to the same
// derived table name. Left unchecked, creation order would decide which
// model owns the table.
func checkTableNames(discovered []appModels) error {
	owners := make(map[string]string)
	for _, d := range discovered {
		for _, m := range d.models {
			table := verge.TableName(m)
			owner := d.app + "." + m.ModelName()
			if prev, ok := owners[table]; ok {
				return fmt.Errorf("%w: models %s and %s both map to table %q",
					config.ErrInvalid, prev, owner, table)
			}
			owners[table] = owner
		}
	}
	return nil
}
