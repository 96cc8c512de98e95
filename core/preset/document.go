package preset

import (
	"fmt"

	"preset-manager/core/utils"
)

// Document converts the configuration into the canonical generic tree.
// Absent optional fields are present with a nil value.
func (c *Configuration) Document() map[string]any {
	return map[string]any{
		"metadata":  c.Metadata.document(),
		"strips":    channelsDocument(c.Strips),
		"buses":     channelsDocument(c.Buses),
		"scenarios": scenariosDocument(c.Scenarios),
	}
}

func (m Metadata) document() map[string]any {
	doc := map[string]any{
		"name":             m.Name,
		"description":      m.Description,
		"version":          m.Version,
		"created":          m.Created,
		"author":           nil,
		"tags":             nil,
		"voicemeeter_type": nil,
		"checksum":         nil,
	}
	if m.Author != nil {
		doc["author"] = *m.Author
	}
	if m.Tags != nil {
		tags := make([]any, 0, len(m.Tags))
		for _, tag := range m.Tags {
			tags = append(tags, tag)
		}
		doc["tags"] = tags
	}
	if m.Variant != nil {
		doc["voicemeeter_type"] = string(*m.Variant)
	}
	if m.Checksum != nil {
		doc["checksum"] = *m.Checksum
	}
	return doc
}

func channelsDocument(channels []Channel) []any {
	out := make([]any, 0, len(channels))
	for _, ch := range channels {
		entry := map[string]any{
			"id":         ch.ID,
			"label":      nil,
			"parameters": parametersDocument(ch.Parameters),
		}
		if ch.Label != nil {
			entry["label"] = *ch.Label
		}
		out = append(out, entry)
	}
	return out
}

func scenariosDocument(scenarios []Scenario) []any {
	out := make([]any, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, map[string]any{
			"name":        sc.Name,
			"description": sc.Description,
			"parameters":  parametersDocument(sc.Parameters),
		})
	}
	return out
}

func parametersDocument(params []Parameter) []any {
	out := make([]any, 0, len(params))
	for _, p := range params {
		entry := map[string]any{
			"name":        p.Name,
			"value":       p.Value.documentValue(),
			"description": nil,
		}
		if p.Description != nil {
			entry["description"] = *p.Description
		}
		out = append(out, entry)
	}
	return out
}

// FromDocument builds a Configuration from a canonical tree. The tree must
// already have passed schema validation; structural surprises are reported
// as errors rather than panics.
func FromDocument(doc map[string]any) (*Configuration, error) {
	meta, ok := doc["metadata"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("metadata: expected mapping")
	}
	cfg := &Configuration{Metadata: metadataFromDocument(meta)}

	var err error
	if cfg.Strips, err = channelsFromDocument("strips", doc["strips"]); err != nil {
		return nil, err
	}
	if cfg.Buses, err = channelsFromDocument("buses", doc["buses"]); err != nil {
		return nil, err
	}
	if cfg.Scenarios, err = scenariosFromDocument(doc["scenarios"]); err != nil {
		return nil, err
	}
	return cfg, nil
}

func metadataFromDocument(meta map[string]any) Metadata {
	m := Metadata{
		Name:        stringField(meta, "name"),
		Description: stringField(meta, "description"),
		Version:     stringField(meta, "version"),
		Created:     stringField(meta, "created"),
		Author:      optionalString(meta, "author"),
		Checksum:    optionalString(meta, "checksum"),
	}
	if raw, ok := meta["tags"].([]any); ok {
		m.Tags = make([]string, 0, len(raw))
		for _, tag := range raw {
			if s, ok := tag.(string); ok {
				m.Tags = append(m.Tags, s)
			}
		}
	}
	if variant := optionalString(meta, "voicemeeter_type"); variant != nil {
		m.Variant = VariantPtr(Variant(*variant))
	}
	return m
}

func channelsFromDocument(section string, raw any) ([]Channel, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected sequence", section)
	}
	channels := make([]Channel, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected mapping", section, i)
		}
		id, ok := utils.ToInt(entry["id"])
		if !ok {
			return nil, fmt.Errorf("%s[%d].id: expected integer", section, i)
		}
		params, err := parametersFromDocument(fmt.Sprintf("%s[%d]", section, i), entry["parameters"])
		if err != nil {
			return nil, err
		}
		channels = append(channels, Channel{
			ID:         id,
			Label:      optionalString(entry, "label"),
			Parameters: params,
		})
	}
	return channels, nil
}

func scenariosFromDocument(raw any) ([]Scenario, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("scenarios: expected sequence")
	}
	scenarios := make([]Scenario, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("scenarios[%d]: expected mapping", i)
		}
		params, err := parametersFromDocument(fmt.Sprintf("scenarios[%d]", i), entry["parameters"])
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, Scenario{
			Name:        stringField(entry, "name"),
			Description: stringField(entry, "description"),
			Parameters:  params,
		})
	}
	return scenarios, nil
}

func parametersFromDocument(owner string, raw any) ([]Parameter, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s.parameters: expected sequence", owner)
	}
	params := make([]Parameter, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.parameters[%d]: expected mapping", owner, i)
		}
		value, err := valueFromDocument(entry["value"])
		if err != nil {
			return nil, fmt.Errorf("%s.parameters[%d].value: %w", owner, i, err)
		}
		params = append(params, Parameter{
			Name:        stringField(entry, "name"),
			Value:       value,
			Description: optionalString(entry, "description"),
		})
	}
	return params, nil
}

func valueFromDocument(raw any) (Value, error) {
	if s, ok := raw.(string); ok {
		return NewText(s), nil
	}
	if d, ok := utils.ToDecimal(raw); ok {
		return NewNumber(d), nil
	}
	return Value{}, fmt.Errorf("expected number or string, got %T", raw)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func optionalString(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}
