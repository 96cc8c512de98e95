package schema_test

import (
	"encoding/json"
	"errors"
	"testing"

	"preset-manager/core/preset"
	"preset-manager/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() map[string]any {
	cfg := &preset.Configuration{
		Metadata: preset.Metadata{
			Name:        "Studio",
			Description: "Streaming setup",
			Version:     "1.2.3",
			Created:     "2025-01-21T10:00:00",
			Variant:     preset.VariantPtr(preset.VariantPotato),
		},
		Strips: []preset.Channel{
			{ID: 0, Parameters: []preset.Parameter{
				preset.Param("Strip[0].mute", preset.NewFloat(0)),
				preset.Param("Strip[0].label", preset.NewText("Mic")),
			}},
		},
		Buses: []preset.Channel{
			{ID: 0, Parameters: []preset.Parameter{preset.Param("Bus[0].gain", preset.NewFloat(0))}},
		},
		Scenarios: []preset.Scenario{
			{Name: "meeting_mode", Description: "Meeting", Parameters: []preset.Parameter{}},
		},
	}
	return cfg.Document()
}

func violationOf(t *testing.T, err error) *schema.Violation {
	t.Helper()
	require.Error(t, err)
	var v *schema.Violation
	require.True(t, errors.As(err, &v), "expected *schema.Violation, got %T", err)
	return v
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, schema.Validate(validDocument()))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
		path   string
		rule   string
	}{
		{
			name:   "EmptyName",
			mutate: func(doc map[string]any) { meta(doc)["name"] = "" },
			path:   "metadata.name",
			rule:   "minLength",
		},
		{
			name:   "MissingBuses",
			mutate: func(doc map[string]any) { delete(doc, "buses") },
			path:   "buses",
			rule:   "required",
		},
		{
			name:   "UnknownSection",
			mutate: func(doc map[string]any) { doc["mixer"] = map[string]any{} },
			path:   "mixer",
			rule:   "additional",
		},
		{
			name:   "BadVersion",
			mutate: func(doc map[string]any) { meta(doc)["version"] = "v1" },
			path:   "metadata.version",
			rule:   "pattern",
		},
		{
			name:   "MissingCreated",
			mutate: func(doc map[string]any) { delete(meta(doc), "created") },
			path:   "metadata.created",
			rule:   "required",
		},
		{
			name:   "UnknownVariant",
			mutate: func(doc map[string]any) { meta(doc)["voicemeeter_type"] = "tomato" },
			path:   "metadata.voicemeeter_type",
			rule:   "enum",
		},
		{
			name:   "NegativeID",
			mutate: func(doc map[string]any) { entry(doc, "strips", 0)["id"] = -1 },
			path:   "strips[0].id",
			rule:   "minimum",
		},
		{
			name:   "IDAboveInt32",
			mutate: func(doc map[string]any) { entry(doc, "strips", 0)["id"] = json.Number("3000000000") },
			path:   "strips[0].id",
			rule:   "maximum",
		},
		{
			name:   "EmptyTag",
			mutate: func(doc map[string]any) { meta(doc)["tags"] = []any{"live", ""} },
			path:   "metadata.tags[1]",
			rule:   "minLength",
		},
		{
			name:   "FractionalID",
			mutate: func(doc map[string]any) { entry(doc, "buses", 0)["id"] = json.Number("1.5") },
			path:   "buses[0].id",
			rule:   "type",
		},
		{
			name: "DuplicateStripID",
			mutate: func(doc map[string]any) {
				doc["strips"] = append(doc["strips"].([]any), map[string]any{"id": 0, "parameters": []any{}})
			},
			path: "strips[1].id",
			rule: "unique",
		},
		{
			name:   "BooleanValue",
			mutate: func(doc map[string]any) { param(doc, "strips", 0, 0)["value"] = true },
			path:   "strips[0].parameters[0].value",
			rule:   "type",
		},
		{
			name:   "EmptyParameterName",
			mutate: func(doc map[string]any) { param(doc, "strips", 0, 1)["name"] = "" },
			path:   "strips[0].parameters[1].name",
			rule:   "minLength",
		},
		{
			name:   "ScenarioWithoutDescription",
			mutate: func(doc map[string]any) { delete(entry(doc, "scenarios", 0), "description") },
			path:   "scenarios[0].description",
			rule:   "required",
		},
		{
			name:   "ScenarioParametersNull",
			mutate: func(doc map[string]any) { entry(doc, "scenarios", 0)["parameters"] = nil },
			path:   "scenarios[0].parameters",
			rule:   "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			v := violationOf(t, schema.Validate(doc))
			assert.Equal(t, tt.path, v.Path)
			assert.Equal(t, tt.rule, v.Rule)
			assert.Contains(t, v.Error(), tt.path)
		})
	}
}

func TestValidate_RootNotMapping(t *testing.T) {
	v := violationOf(t, schema.Validate([]any{}))
	assert.Equal(t, "", v.Path)
	assert.Equal(t, "type", v.Rule)
	assert.Contains(t, v.Error(), "(root)")
}

func TestValidate_NullOptionals(t *testing.T) {
	doc := validDocument()
	meta(doc)["voicemeeter_type"] = nil
	meta(doc)["tags"] = nil
	entry(doc, "strips", 0)["label"] = nil

	assert.NoError(t, schema.Validate(doc))
}

func TestValidate_IntegralFloatID(t *testing.T) {
	doc := validDocument()
	entry(doc, "strips", 0)["id"] = json.Number("2.0")

	assert.NoError(t, schema.Validate(doc))
}

func meta(doc map[string]any) map[string]any {
	return doc["metadata"].(map[string]any)
}

func entry(doc map[string]any, section string, i int) map[string]any {
	return doc[section].([]any)[i].(map[string]any)
}

func param(doc map[string]any, section string, i, j int) map[string]any {
	return entry(doc, section, i)["parameters"].([]any)[j].(map[string]any)
}

func TestValidate_IDRangeDetail(t *testing.T) {
	doc := validDocument()
	entry(doc, "buses", 0)["id"] = json.Number("3000000000")

	v := violationOf(t, schema.Validate(doc))
	assert.Equal(t, "maximum", v.Rule)
	assert.Equal(t, "must be <= 2147483647, got 3000000000", v.Detail)
}
