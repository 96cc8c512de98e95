package diff

import (
	"fmt"
	"sort"

	"preset-manager/core/preset"
)

// Compare reports how b differs from a. It never fails; an empty report
// means the two configurations are semantically identical.
func Compare(a, b *preset.Configuration) *Report {
	report := &Report{
		MetadataChanges: compareMetadata(a.Metadata, b.Metadata),
		StripChanges:    compareChannels(a.Strips, b.Strips),
		BusChanges:      compareChannels(a.Buses, b.Buses),
		ScenarioChanges: compareScenarios(a.Scenarios, b.Scenarios),
	}

	report.Summary = Summary{
		StripsModified:    len(report.StripChanges),
		BusesModified:     len(report.BusChanges),
		ScenariosModified: len(report.ScenarioChanges),
	}
	report.Summary.TotalChanges = len(report.MetadataChanges) +
		report.Summary.StripsModified +
		report.Summary.BusesModified +
		report.Summary.ScenariosModified

	return report
}

func compareMetadata(a, b preset.Metadata) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	left, right := metadataFields(a), metadataFields(b)
	for _, field := range MetadataFields {
		if !equalOptional(left[field], right[field]) {
			changes[field] = FieldChange{Old: left[field], New: right[field]}
		}
	}
	return changes
}

func metadataFields(m preset.Metadata) map[string]*string {
	fields := map[string]*string{
		"name":        &m.Name,
		"description": &m.Description,
		"version":     &m.Version,
		"author":      m.Author,
	}
	if m.Variant != nil {
		variant := string(*m.Variant)
		fields["voicemeeter_type"] = &variant
	}
	return fields
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func compareChannels(a, b []preset.Channel) map[int]EntityChange {
	left := indexChannels(a)
	right := indexChannels(b)

	// Build union of ids
	union := make(map[int]struct{}, len(left)+len(right))
	for id := range left {
		union[id] = struct{}{}
	}
	for id := range right {
		union[id] = struct{}{}
	}

	changes := make(map[int]EntityChange)
	for id := range union {
		before, inLeft := left[id]
		after, inRight := right[id]
		if change, ok := compareEntity(before, inLeft, after, inRight); ok {
			changes[id] = change
		}
	}
	return changes
}

func compareScenarios(a, b []preset.Scenario) map[string]EntityChange {
	left := indexScenarios(a)
	right := indexScenarios(b)

	// Build union of names
	union := make(map[string]struct{}, len(left)+len(right))
	for name := range left {
		union[name] = struct{}{}
	}
	for name := range right {
		union[name] = struct{}{}
	}

	changes := make(map[string]EntityChange)
	for name := range union {
		before, inLeft := left[name]
		after, inRight := right[name]
		if change, ok := compareEntity(before, inLeft, after, inRight); ok {
			changes[name] = change
		}
	}
	return changes
}

// compareEntity classifies one key of the union. The bool is false when the
// entity is present on both sides with equal parameter sets.
func compareEntity(before []preset.Parameter, inLeft bool, after []preset.Parameter, inRight bool) (EntityChange, bool) {
	switch {
	case !inLeft:
		return EntityChange{Status: StatusAdded, Parameters: after}, true
	case !inRight:
		return EntityChange{Status: StatusRemoved, Parameters: before}, true
	}

	paramChanges := compareParameters(before, after)
	if len(paramChanges) == 0 {
		return EntityChange{}, false
	}
	return EntityChange{Status: StatusModified, ParameterChanges: paramChanges}, true
}

func compareParameters(a, b []preset.Parameter) map[string]ParameterChange {
	left := indexParameters(a)
	right := indexParameters(b)

	changes := make(map[string]ParameterChange)
	for name, old := range left {
		updated, ok := right[name]
		if !ok {
			changes[name] = ParameterChange{Old: valuePtr(old)}
			continue
		}
		if !old.Equal(updated) {
			changes[name] = ParameterChange{Old: valuePtr(old), New: valuePtr(updated)}
		}
	}
	for name, updated := range right {
		if _, ok := left[name]; !ok {
			changes[name] = ParameterChange{New: valuePtr(updated)}
		}
	}
	return changes
}

func indexChannels(channels []preset.Channel) map[int][]preset.Parameter {
	index := make(map[int][]preset.Parameter, len(channels))
	for _, ch := range channels {
		index[ch.ID] = ch.Parameters
	}
	return index
}

func indexScenarios(scenarios []preset.Scenario) map[string][]preset.Parameter {
	index := make(map[string][]preset.Parameter, len(scenarios))
	for _, sc := range scenarios {
		index[sc.Name] = sc.Parameters
	}
	return index
}

// indexParameters maps names to values. On duplicate names the last one wins.
func indexParameters(params []preset.Parameter) map[string]preset.Value {
	index := make(map[string]preset.Value, len(params))
	for _, p := range params {
		index[p.Name] = p.Value
	}
	return index
}

func valuePtr(v preset.Value) *preset.Value {
	return &v
}

// Lines renders the report as a deterministic human-readable listing.
func (r *Report) Lines() []string {
	var lines []string

	for _, field := range MetadataFields {
		change, ok := r.MetadataChanges[field]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("metadata.%s: %s -> %s", field, optionalText(change.Old), optionalText(change.New)))
	}

	lines = append(lines, channelLines("strip", r.StripChanges)...)
	lines = append(lines, channelLines("bus", r.BusChanges)...)

	names := make([]string, 0, len(r.ScenarioChanges))
	for name := range r.ScenarioChanges {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, entityLines(fmt.Sprintf("scenario %q", name), r.ScenarioChanges[name])...)
	}

	lines = append(lines, fmt.Sprintf("%d change(s): %d strip(s), %d bus(es), %d scenario(s)",
		r.Summary.TotalChanges, r.Summary.StripsModified, r.Summary.BusesModified, r.Summary.ScenariosModified))
	return lines
}

func channelLines(kind string, changes map[int]EntityChange) []string {
	ids := make([]int, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var lines []string
	for _, id := range ids {
		lines = append(lines, entityLines(fmt.Sprintf("%s %d", kind, id), changes[id])...)
	}
	return lines
}

func entityLines(label string, change EntityChange) []string {
	if change.Status != StatusModified {
		return []string{fmt.Sprintf("%s %s (%d parameters)", label, change.Status, len(change.Parameters))}
	}

	names := make([]string, 0, len(change.ParameterChanges))
	for name := range change.ParameterChanges {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{fmt.Sprintf("%s %s", label, change.Status)}
	for _, name := range names {
		pc := change.ParameterChanges[name]
		lines = append(lines, fmt.Sprintf("  %s: %s -> %s", name, optionalValue(pc.Old), optionalValue(pc.New)))
	}
	return lines
}

func optionalText(s *string) string {
	if s == nil {
		return "<none>"
	}
	return fmt.Sprintf("%q", *s)
}

func optionalValue(v *preset.Value) string {
	if v == nil {
		return "<none>"
	}
	if v.IsNumber() {
		return v.String()
	}
	return fmt.Sprintf("%q", v.String())
}
