package diff_test

import (
	"testing"

	"preset-manager/core/diff"
	"preset-manager/core/preset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func base() *preset.Configuration {
	return &preset.Configuration{
		Metadata: preset.Metadata{
			Name:        "Studio",
			Description: "Streaming",
			Version:     "1.0",
			Created:     "2025-01-21T10:00:00",
			Variant:     preset.VariantPtr(preset.VariantBanana),
		},
		Strips: []preset.Channel{
			{ID: 0, Parameters: []preset.Parameter{
				preset.Param("Strip[0].mute", preset.NewFloat(0)),
				preset.Param("Strip[0].gain", preset.NewFloat(-3)),
			}},
			{ID: 1, Parameters: []preset.Parameter{
				preset.Param("Strip[1].label", preset.NewText("Music")),
			}},
		},
		Buses: []preset.Channel{
			{ID: 0, Parameters: []preset.Parameter{preset.Param("Bus[0].gain", preset.NewFloat(0))}},
		},
		Scenarios: []preset.Scenario{
			{Name: "meeting_mode", Description: "Meeting", Parameters: []preset.Parameter{
				preset.Param("Strip[0].mute", preset.NewFloat(1)),
			}},
		},
	}
}

func TestCompare_Identical(t *testing.T) {
	report := diff.Compare(base(), base())

	assert.True(t, report.Identical())
	assert.Empty(t, report.MetadataChanges)
	assert.Empty(t, report.StripChanges)
	assert.Empty(t, report.BusChanges)
	assert.Empty(t, report.ScenarioChanges)
	assert.Equal(t, diff.Summary{}, report.Summary)
}

func TestCompare_SameInstance(t *testing.T) {
	c := base()
	assert.Equal(t, 0, diff.Compare(c, c).Summary.TotalChanges)
}

func TestCompare_NumericEquality(t *testing.T) {
	a := base()
	b := base()
	b.Strips[0].Parameters[0].Value = preset.ParseValue("0.000")

	assert.True(t, diff.Compare(a, b).Identical())
}

func TestCompare_NumberNeverEqualsText(t *testing.T) {
	a := base()
	b := base()
	b.Strips[0].Parameters[0].Value = preset.NewText("0.0")

	report := diff.Compare(a, b)
	require.Contains(t, report.StripChanges, 0)
	assert.Equal(t, diff.StatusModified, report.StripChanges[0].Status)
}

func TestCompare_Metadata(t *testing.T) {
	a := base()
	b := base()
	b.Metadata.Name = "Studio v2"
	b.Metadata.Author = preset.StringPtr("Jane")
	b.Metadata.Variant = nil
	b.Metadata.Tags = []string{"ignored"}
	b.Metadata.Created = "2026-01-01T00:00:00"

	report := diff.Compare(a, b)

	require.Len(t, report.MetadataChanges, 3)
	name := report.MetadataChanges["name"]
	assert.Equal(t, "Studio", *name.Old)
	assert.Equal(t, "Studio v2", *name.New)

	author := report.MetadataChanges["author"]
	assert.Nil(t, author.Old)
	assert.Equal(t, "Jane", *author.New)

	variant := report.MetadataChanges["voicemeeter_type"]
	assert.Equal(t, "banana", *variant.Old)
	assert.Nil(t, variant.New)

	assert.Equal(t, 3, report.Summary.TotalChanges)
}

func TestCompare_Entities(t *testing.T) {
	a := base()
	b := base()

	// Strip 0: gain changed, mute removed, new parameter added
	b.Strips[0].Parameters = []preset.Parameter{
		preset.Param("Strip[0].gain", preset.NewFloat(-6)),
		preset.Param("Strip[0].A1", preset.NewFloat(1)),
	}
	// Strip 1 removed, strip 2 added
	b.Strips = append(b.Strips[:1], preset.Channel{ID: 2, Parameters: []preset.Parameter{
		preset.Param("Strip[2].mute", preset.NewFloat(1)),
	}})
	// Bus 1 added
	b.Buses = append(b.Buses, preset.Channel{ID: 1, Parameters: []preset.Parameter{}})
	// Scenario renamed: one removed, one added
	b.Scenarios[0].Name = "gaming_mode"

	report := diff.Compare(a, b)

	strip0 := report.StripChanges[0]
	assert.Equal(t, diff.StatusModified, strip0.Status)
	require.Len(t, strip0.ParameterChanges, 3)

	gain := strip0.ParameterChanges["Strip[0].gain"]
	assert.Equal(t, "-3.0", gain.Old.String())
	assert.Equal(t, "-6.0", gain.New.String())

	mute := strip0.ParameterChanges["Strip[0].mute"]
	assert.NotNil(t, mute.Old)
	assert.Nil(t, mute.New)

	a1 := strip0.ParameterChanges["Strip[0].A1"]
	assert.Nil(t, a1.Old)
	assert.NotNil(t, a1.New)

	assert.Equal(t, diff.StatusRemoved, report.StripChanges[1].Status)
	assert.Len(t, report.StripChanges[1].Parameters, 1)
	assert.Equal(t, diff.StatusAdded, report.StripChanges[2].Status)
	assert.Equal(t, diff.StatusAdded, report.BusChanges[1].Status)
	assert.Equal(t, diff.StatusRemoved, report.ScenarioChanges["meeting_mode"].Status)
	assert.Equal(t, diff.StatusAdded, report.ScenarioChanges["gaming_mode"].Status)

	assert.Equal(t, diff.Summary{
		TotalChanges:      6,
		StripsModified:    3,
		BusesModified:     1,
		ScenariosModified: 2,
	}, report.Summary)
}

func TestCompare_ZeroIsSymmetric(t *testing.T) {
	a := base()
	b := base()
	// Reordering parameters and entities is not a change
	b.Strips[0].Parameters[0], b.Strips[0].Parameters[1] = b.Strips[0].Parameters[1], b.Strips[0].Parameters[0]
	b.Strips[0], b.Strips[1] = b.Strips[1], b.Strips[0]

	assert.Equal(t, 0, diff.Compare(a, b).Summary.TotalChanges)
	assert.Equal(t, 0, diff.Compare(b, a).Summary.TotalChanges)
}

func TestCompare_DuplicateParameterLastWins(t *testing.T) {
	a := base()
	b := base()
	b.Strips[0].Parameters = append(b.Strips[0].Parameters, preset.Param("Strip[0].gain", preset.NewFloat(-12)))

	report := diff.Compare(a, b)
	change := report.StripChanges[0].ParameterChanges["Strip[0].gain"]
	assert.Equal(t, "-12.0", change.New.String())
}

func TestReport_Lines(t *testing.T) {
	a := base()
	b := base()
	b.Metadata.Version = "1.1"
	b.Buses[0].Parameters[0].Value = preset.NewFloat(-1.5)
	b.Strips[1].Parameters[0].Value = preset.NewText("Voice")

	lines := diff.Compare(a, b).Lines()

	assert.Equal(t, []string{
		`metadata.version: "1.0" -> "1.1"`,
		`strip 1 modified`,
		`  Strip[1].label: "Music" -> "Voice"`,
		`bus 0 modified`,
		`  Bus[0].gain: 0.0 -> -1.5`,
		`3 change(s): 1 strip(s), 1 bus(es), 0 scenario(s)`,
	}, lines)
}
