package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature is a self-contained module exposing HTTP routes.
type Feature interface {
	// Name returns the unique feature name.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes.
	Load(app fiber.Router) error
}

// Manager keeps the registered features in registration order.
type Manager struct {
	features []Feature
	names    map[string]struct{}
	logger   *zap.Logger
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{names: make(map[string]struct{}), logger: zap.L()}
}

// Register adds a feature. Registering a name twice panics.
func (m *Manager) Register(f Feature) {
	if _, ok := m.names[f.Name()]; ok {
		panic(fmt.Sprintf("feature %q registered twice", f.Name()))
	}
	m.names[f.Name()] = struct{}{}
	m.features = append(m.features, f)
}

// Features returns the registered features.
func (m *Manager) Features() []Feature {
	return m.features
}

// LoadAll loads every enabled feature, stopping at the first failure.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.logger.Info("Feature disabled", zap.String("feature", f.Name()))
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		m.logger.Info("Feature loaded", zap.String("feature", f.Name()))
	}
	return nil
}
