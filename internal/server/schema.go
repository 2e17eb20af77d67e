package server

import (
	"encoding/json"
	"time"

	"github.com/vergeframework/verge"
)

// MessageType defines the type of broadcast message
type MessageType string

const (
	// MessageTypeSchema carries the full schema overview
	MessageTypeSchema MessageType = "schema"

	// MessageTypeSyncReport carries the report of a completed sync run
	MessageTypeSyncReport MessageType = "sync_report"
)

// Message represents a broadcast message
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// SchemaOverview describes every served app's declared models
type SchemaOverview struct {
	Apps []AppSchema `json:"apps"`
}

// AppSchema describes one app's models
type AppSchema struct {
	Name   string        `json:"name"`
	Models []ModelSchema `json:"models"`
}

// ModelSchema describes one declared model and its derived table name.
// Models excluded from sync still appear here, marked skip_sync.
type ModelSchema struct {
	Name     string        `json:"name"`
	Table    string        `json:"table"`
	SkipSync bool          `json:"skip_sync,omitempty"`
	Fields   []FieldSchema `json:"fields"`
}

// FieldSchema describes one field and, when indexed, its derived index name
type FieldSchema struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Indexed bool   `json:"indexed,omitempty"`
	Unique  bool   `json:"unique,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Index   string `json:"index,omitempty"`
}

// BuildSchemaOverview collects the registered models for the given apps,
// in the order given
func BuildSchemaOverview(apps []string) SchemaOverview {
	overview := SchemaOverview{Apps: make([]AppSchema, 0, len(apps))}
	for _, app := range apps {
		models := verge.AllModelsFor(app)
		appSchema := AppSchema{Name: app, Models: make([]ModelSchema, 0, len(models))}
		for _, m := range models {
			appSchema.Models = append(appSchema.Models, buildModelSchema(m))
		}
		overview.Apps = append(overview.Apps, appSchema)
	}
	return overview
}

func buildModelSchema(m verge.Model) ModelSchema {
	fields := m.ModelFields()
	ms := ModelSchema{
		Name:   m.ModelName(),
		Table:  verge.TableName(m),
		Fields: make([]FieldSchema, 0, len(fields)),
	}
	if skipper, ok := m.(interface{ SyncSkipped() bool }); ok {
		ms.SkipSync = skipper.SyncSkipped()
	}
	for _, f := range fields {
		fs := FieldSchema{
			Name:    f.Name,
			Kind:    string(f.Kind),
			Indexed: f.Indexed,
			Unique:  f.Unique,
			Ref:     f.RefModel,
		}
		if f.WantsIndex() {
			fs.Index = verge.IndexName(f)
		}
		ms.Fields = append(ms.Fields, fs)
	}
	return ms
}

// NewSchemaMessage builds a schema overview message ready to broadcast
func NewSchemaMessage(apps []string) (Message, error) {
	data, err := json.Marshal(BuildSchemaOverview(apps))
	if err != nil {
		return Message{}, err
	}
	return Message{Type: MessageTypeSchema, Timestamp: time.Now(), Data: data}, nil
}
