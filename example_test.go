package verge_test

import (
	"fmt"

	"github.com/vergeframework/verge"
)

// This example demonstrates declaring and registering models the way an
// app's models.go does it.
func ExampleNew() {
	post := verge.New("Post",
		verge.Text("title", verge.Indexed()),
		verge.Text("body"),
		verge.Reference("author", "User"),
	)

	verge.Register("blog", post)

	for _, m := range verge.ModelsFor("blog") {
		fmt.Println(verge.TableName(m))
		for _, f := range m.ModelFields() {
			if f.WantsIndex() {
				fmt.Println(verge.IndexName(f))
			}
		}
	}

	// Output:
	// post
	// title_index
}
