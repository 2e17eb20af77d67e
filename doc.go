// Package verge declares the data-model vocabulary for verge projects.
//
// # Overview
//
// A verge project is a list of apps, and each app declares the entities it
// persists as models: a name plus an ordered list of typed fields. Model
// declarations are passive data. The verge CLI reads them to reconcile the
// database schema (the sync-db command creates missing tables and secondary
// indexes), and the development server exposes them for introspection.
//
// # Declaring Models
//
// Apps declare models in their package init, typically in a models.go file:
//
//	var Post = verge.New("Post",
//	    verge.Text("title", verge.Indexed()),
//	    verge.Text("body"),
//	    verge.Reference("author", "User"),
//	)
//
//	func init() {
//	    verge.Register("blog", Post)
//	}
//
// The project's main package blank-imports each app so registration runs
// before any command executes:
//
//	import _ "example.com/myproject/blog"
//
// # The Model Contract
//
// Register accepts anything satisfying the Model interface: a stable name
// and an ordered field list. New returns the standard implementation, but
// apps with generated or computed declarations can satisfy the interface
// themselves.
//
// # Naming
//
// Table and index names are derived deterministically: TableName snake_cases
// the model name (Post -> post, OrderLine -> order_line) and IndexName
// appends _index to the field name (title -> title_index). Schema
// reconciliation relies on these names being stable across runs.
//
// # Design Principles
//
//   - Declarations are immutable after construction
//   - Registration is explicit, never discovered by reflection
//   - Misdeclarations (duplicate fields, duplicate models) panic at
//     process start rather than surfacing mid-sync
package verge
