// Package loader registers the HTTP features of the service.
//
// A feature is a self-contained route group with its own service and handler:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers inventory, imports and integrity with a
// Manager and calls LoadAll once the middleware chain is in place. Features
// whose dependencies are missing report IsEnabled() == false and are skipped,
// so the imports routes disappear when no object storage is configured.
package loader
