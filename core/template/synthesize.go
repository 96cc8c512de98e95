package template

import (
	"fmt"
	"time"

	"preset-manager/core/preset"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Topology is the number of strips and buses of a product tier.
type Topology struct {
	Strips int `json:"strips"`
	Buses  int `json:"buses"`
}

// Topologies maps every known variant to its mixer topology.
var Topologies = map[preset.Variant]Topology{
	preset.VariantBasic:  {Strips: 3, Buses: 2},
	preset.VariantBanana: {Strips: 5, Buses: 3},
	preset.VariantPotato: {Strips: 8, Buses: 5},
}

const (
	// TemplateVersion is the metadata version of synthesized presets.
	TemplateVersion = "1.0"
	// DefaultScenario is the single scenario every template carries.
	DefaultScenario = "default"
	// extendedStrips is the number of leading strips with B1, comp and gate.
	extendedStrips = 2
)

// Synthesize builds a sealed, schema-conformant template for variant.
// Unknown variants fail with preset.ErrUnknownVariant.
func Synthesize(name string, variant preset.Variant, now time.Time) (*preset.Configuration, error) {
	topology, ok := Topologies[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of %v)", preset.ErrUnknownVariant, variant, preset.Variants)
	}

	title := cases.Title(language.English).String(string(variant))
	cfg := &preset.Configuration{
		Metadata: preset.Metadata{
			Name:        name,
			Description: "Template for Voicemeeter " + title,
			Version:     TemplateVersion,
			Created:     now.Format(time.RFC3339),
			Variant:     preset.VariantPtr(variant),
		},
		Strips: make([]preset.Channel, 0, topology.Strips),
		Buses:  make([]preset.Channel, 0, topology.Buses),
		Scenarios: []preset.Scenario{
			{Name: DefaultScenario, Description: "Default configuration", Parameters: []preset.Parameter{}},
		},
	}

	for i := 0; i < topology.Strips; i++ {
		cfg.Strips = append(cfg.Strips, preset.Channel{ID: i, Parameters: stripParameters(i)})
	}
	for i := 0; i < topology.Buses; i++ {
		cfg.Buses = append(cfg.Buses, preset.Channel{ID: i, Parameters: busParameters(i)})
	}

	cfg.Seal()
	return cfg, nil
}

func stripParameters(i int) []preset.Parameter {
	prefix := fmt.Sprintf("Strip[%d].", i)
	params := []preset.Parameter{
		preset.Param(prefix+"label", preset.NewText(fmt.Sprintf("Strip %d", i+1))),
		preset.Param(prefix+"mute", preset.NewFloat(0)),
		preset.Param(prefix+"gain", preset.NewFloat(0)),
		preset.Param(prefix+"A1", preset.NewFloat(1)),
		preset.Param(prefix+"A2", preset.NewFloat(0)),
	}
	if i < extendedStrips {
		params = append(params,
			preset.Param(prefix+"B1", preset.NewFloat(0)),
			preset.Param(prefix+"comp", preset.NewFloat(0)),
			preset.Param(prefix+"gate", preset.NewFloat(0)),
		)
	}
	return params
}

func busParameters(i int) []preset.Parameter {
	prefix := fmt.Sprintf("Bus[%d].", i)
	return []preset.Parameter{
		preset.Param(prefix+"mute", preset.NewFloat(0)),
		preset.Param(prefix+"gain", preset.NewFloat(0)),
		preset.Param(prefix+"eq.on", preset.NewFloat(0)),
	}
}
