package preset

// Variant is a Voicemeeter product tier.
type Variant string

const (
	VariantBasic  Variant = "basic"
	VariantBanana Variant = "banana"
	VariantPotato Variant = "potato"
)

// Variants lists the known product tiers from smallest to richest.
var Variants = []Variant{VariantBasic, VariantBanana, VariantPotato}

// IsValid checks if the variant is one of the known product tiers.
func (v Variant) IsValid() bool {
	switch v {
	case VariantBasic, VariantBanana, VariantPotato:
		return true
	default:
		return false
	}
}

// Metadata describes a preset.
type Metadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Created     string   `json:"created"`
	Author      *string  `json:"author"`
	Tags        []string `json:"tags"`
	Variant     *Variant `json:"voicemeeter_type"`
	// Checksum holds the fingerprint as of the last Seal. It is not kept
	// fresh across mutations.
	Checksum *string `json:"checksum"`
}

// Parameter is a single named setting such as "Strip[0].gain".
type Parameter struct {
	Name        string  `json:"name"`
	Value       Value   `json:"value"`
	Description *string `json:"description"`
}

// Channel is a strip or a bus: an input or output of the mixer topology.
type Channel struct {
	ID         int         `json:"id"`
	Label      *string     `json:"label"`
	Parameters []Parameter `json:"parameters"`
}

// Scenario is a named bundle of parameter assignments, e.g. "meeting mode".
type Scenario struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// Configuration is the canonical form of one mixer preset.
type Configuration struct {
	Metadata  Metadata   `json:"metadata"`
	Strips    []Channel  `json:"strips"`
	Buses     []Channel  `json:"buses"`
	Scenarios []Scenario `json:"scenarios"`
}

// Param builds a parameter without description.
func Param(name string, value Value) Parameter {
	return Parameter{Name: name, Value: value}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// VariantPtr returns a pointer to v.
func VariantPtr(v Variant) *Variant {
	return &v
}
