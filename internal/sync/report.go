package sync

// OutcomeStatus classifies what happened to one schema unit (a table or
// an index) during a run.
type OutcomeStatus string

const (
	// StatusCreated means the unit was absent and has been created.
	StatusCreated OutcomeStatus = "created"

	// StatusExists means the unit was already present; nothing was done.
	StatusExists OutcomeStatus = "exists"

	// StatusFailed means the unit could not be created. The run
	// continues with the next unit.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome records the result for one schema unit. Reason is set only
// for failed outcomes.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
}

// Failed reports whether the unit failed.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

func created() Outcome {
	return Outcome{Status: StatusCreated}
}

func alreadyExists() Outcome {
	return Outcome{Status: StatusExists}
}

func failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Reason: err.Error()}
}

// IndexResult records the outcome for one secondary index.
type IndexResult struct {
	// Name is the derived index name, e.g. title_index.
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
}

// ModelResult records the outcomes for one model: its table, then its
// indexes in field declaration order. When the table outcome is failed
// the index list is empty; index work presumes the table.
type ModelResult struct {
	// Model is the model name as declared.
	Model string `json:"model"`

	// Table is the derived table name.
	Table string `json:"table"`

	Outcome Outcome       `json:"outcome"`
	Indexes []IndexResult `json:"indexes,omitempty"`
}

// AppResult records the outcomes for one configured application.
type AppResult struct {
	App string `json:"app"`

	// NoModels marks an app that declares no synchronizable models.
	// This is informational, not a failure.
	NoModels bool `json:"no_models,omitempty"`

	Models []ModelResult `json:"models,omitempty"`
}

// Report is the complete result of one synchronization run. Apps appear
// in configured order, models in declaration order. Pure data; rendering
// lives elsewhere.
type Report struct {
	Apps []AppResult `json:"apps"`

	// Aborted is set only when the database connection itself could not
	// be established. An aborted report carries zero app results.
	Aborted bool `json:"aborted"`
}

// Totals counts outcomes across every table and index in the report.
type Totals struct {
	Created  int
	Existing int
	Failed   int
}

// HasFailures reports whether any table or index outcome failed.
func (r *Report) HasFailures() bool {
	return r.Totals().Failed > 0
}

// Totals tallies the report's outcomes for the summary line.
func (r *Report) Totals() Totals {
	var t Totals
	count := func(o Outcome) {
		switch o.Status {
		case StatusCreated:
			t.Created++
		case StatusExists:
			t.Existing++
		case StatusFailed:
			t.Failed++
		}
	}
	for _, app := range r.Apps {
		for _, m := range app.Models {
			count(m.Outcome)
			for _, idx := range m.Indexes {
				count(idx.Outcome)
			}
		}
	}
	return t
}
