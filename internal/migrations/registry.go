// Package migrations holds the versioned schema changes for the products
// database. Each migration registers itself from an init function.
package migrations

import "github.com/pankajredekar/productsvc/internal/runner"

var registry = runner.NewRegistry()

func register(m runner.Migration) {
	registry.Register(m)
}

// Registry returns every registered migration.
func Registry() *runner.Registry {
	return registry
}
