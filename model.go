package verge

import "fmt"

// Model is the declaration contract consumed by schema sync and the
// development server. Anything that exposes a stable name and an ordered
// field list qualifies; *Definition from New is the standard
// implementation.
type Model interface {
	// ModelName returns the declared name, e.g. "Post". Table names are
	// derived from it; see TableName.
	ModelName() string

	// ModelFields returns the fields in declaration order.
	ModelFields() []Field
}

// Definition is the standard Model implementation produced by New.
// Definitions are immutable after construction apart from SkipSync.
type Definition struct {
	name     string
	fields   []Field
	skipSync bool
}

// New constructs a model definition.
//
// Declarations are validated eagerly: an empty model name, an unnamed
// field, or two fields sharing a name panic immediately. Declarations run
// at package init, so a panic here stops the process before any command
// touches the database.
//
// Example:
//
//	var Post = verge.New("Post",
//	    verge.Text("title", verge.Indexed()),
//	    verge.Text("body"),
//	)
func New(name string, fields ...Field) *Definition {
	if name == "" {
		panic("verge: New called with empty model name")
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("verge: model %s declares a field with no name", name))
		}
		if seen[f.Name] {
			panic(fmt.Sprintf("verge: model %s declares field %s twice", name, f.Name))
		}
		seen[f.Name] = true
	}

	return &Definition{
		name:   name,
		fields: fields,
	}
}

// ModelName implements Model.
func (d *Definition) ModelName() string {
	return d.name
}

// ModelFields implements Model. The returned slice is a copy; mutating it
// does not affect the definition.
func (d *Definition) ModelFields() []Field {
	fields := make([]Field, len(d.fields))
	copy(fields, d.fields)
	return fields
}

// SkipSync excludes the model from schema synchronization. The model
// stays registered and visible to the development server; only sync-db
// ignores it. Returns the definition for chaining:
//
//	var Draft = verge.New("Draft", verge.Text("body")).SkipSync()
func (d *Definition) SkipSync() *Definition {
	d.skipSync = true
	return d
}

// SyncSkipped reports whether SkipSync was called.
func (d *Definition) SyncSkipped() bool {
	return d.skipSync
}

// syncSkipper is the optional capability checked during discovery.
// Custom Model implementations can opt out of sync by implementing it.
type syncSkipper interface {
	SyncSkipped() bool
}
