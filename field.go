package verge

// Kind identifies the storage class of a field. The database engine maps
// each kind to a concrete column type.
type Kind string

const (
	// KindText holds arbitrary-length text.
	KindText Kind = "text"

	// KindNumber holds integral numeric values.
	KindNumber Kind = "number"

	// KindBoolean holds true/false flags.
	KindBoolean Kind = "boolean"

	// KindDateTime holds timestamps.
	KindDateTime Kind = "datetime"

	// KindReference holds the id of a record in another model's table.
	// No foreign key constraint is emitted; references are plain ids.
	KindReference Kind = "reference"
)

// Field describes one persisted attribute of a model.
// Fields are immutable once declared.
type Field struct {
	// Name is the column name, unique within its model.
	Name string

	// Kind selects the column type.
	Kind Kind

	// Indexed requests a secondary index on the field.
	Indexed bool

	// Unique requests a uniqueness guarantee, which implies an index.
	Unique bool

	// RefModel names the referenced model for KindReference fields.
	RefModel string
}

// WantsIndex reports whether schema sync must ensure a secondary index
// for the field. Unique fields are always indexed.
func (f Field) WantsIndex() bool {
	return f.Indexed || f.Unique
}

// FieldOption customizes a field at construction time.
type FieldOption func(*Field)

// Indexed marks the field for a secondary index.
func Indexed() FieldOption {
	return func(f *Field) { f.Indexed = true }
}

// Unique marks the field as unique. Unique fields are indexed.
func Unique() FieldOption {
	return func(f *Field) { f.Unique = true }
}

// Text declares a text field.
func Text(name string, opts ...FieldOption) Field {
	return newField(name, KindText, opts)
}

// Number declares a numeric field.
func Number(name string, opts ...FieldOption) Field {
	return newField(name, KindNumber, opts)
}

// Bool declares a boolean field.
func Bool(name string, opts ...FieldOption) Field {
	return newField(name, KindBoolean, opts)
}

// DateTime declares a timestamp field.
func DateTime(name string, opts ...FieldOption) Field {
	return newField(name, KindDateTime, opts)
}

// Reference declares a field holding another model's record id.
// The model argument is the referenced model's name, not its table name.
func Reference(name, model string, opts ...FieldOption) Field {
	f := newField(name, KindReference, opts)
	f.RefModel = model
	return f
}

func newField(name string, kind Kind, opts []FieldOption) Field {
	f := Field{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}
