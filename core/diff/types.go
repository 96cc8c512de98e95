package diff

import "preset-manager/core/preset"

// Status describes how an entity differs between two configurations.
type Status string

const (
	// StatusAdded marks an entity present only in the second configuration.
	StatusAdded Status = "added"
	// StatusRemoved marks an entity present only in the first configuration.
	StatusRemoved Status = "removed"
	// StatusModified marks an entity present in both with differing parameters.
	StatusModified Status = "modified"
)

// MetadataFields lists the metadata fields that take part in a comparison.
var MetadataFields = []string{"name", "description", "version", "author", "voicemeeter_type"}

// FieldChange records an old and new metadata value. Nil means absent.
type FieldChange struct {
	Old *string `json:"old"`
	New *string `json:"new"`
}

// ParameterChange records an old and new parameter value. Nil means the
// parameter is missing on that side.
type ParameterChange struct {
	Old *preset.Value `json:"old"`
	New *preset.Value `json:"new"`
}

// EntityChange is the comparison result for one strip, bus or scenario.
type EntityChange struct {
	// Status is added, removed or modified.
	Status Status `json:"status"`

	// Parameters holds the full parameter list of an added or removed entity.
	Parameters []preset.Parameter `json:"parameters,omitempty"`

	// ParameterChanges holds per-parameter differences of a modified entity,
	// keyed by parameter name.
	ParameterChanges map[string]ParameterChange `json:"parameter_changes,omitempty"`
}

// Report is the categorized result of comparing two configurations.
type Report struct {
	// MetadataChanges is keyed by metadata field name.
	MetadataChanges map[string]FieldChange `json:"metadata_changes"`

	// StripChanges is keyed by strip id.
	StripChanges map[int]EntityChange `json:"strip_changes"`

	// BusChanges is keyed by bus id.
	BusChanges map[int]EntityChange `json:"bus_changes"`

	// ScenarioChanges is keyed by scenario name.
	ScenarioChanges map[string]EntityChange `json:"scenario_changes"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate counts for a report.
type Summary struct {
	// TotalChanges is metadata changes plus every added, removed or modified entity.
	TotalChanges int `json:"total_changes"`

	// StripsModified counts added, removed and modified strips.
	StripsModified int `json:"strips_modified"`

	// BusesModified counts added, removed and modified buses.
	BusesModified int `json:"buses_modified"`

	// ScenariosModified counts added, removed and modified scenarios.
	ScenariosModified int `json:"scenarios_modified"`
}

// Identical reports whether the report contains no changes.
func (r *Report) Identical() bool {
	return r.Summary.TotalChanges == 0
}
