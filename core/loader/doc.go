// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which names it, reports
// whether it is enabled and registers its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features in registration order:
//   - Register() adds a feature (duplicate names panic at startup)
//   - LoadAll() loads the enabled ones and stops at the first error
//
// The serve command registers the 'presets' and 'integrity' features.
package loader
