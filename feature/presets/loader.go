package presets

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new presets feature. ext is the default extension of
// names written through the API.
func NewFeature(service *Service, ext string) *Feature {
	return &Feature{service: service, handler: NewHandler(service, ext)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "presets"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
