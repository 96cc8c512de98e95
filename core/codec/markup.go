package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"preset-manager/core/logger"
	"preset-manager/core/preset"

	"go.uber.org/zap"
)

const (
	markupRoot           = "voicemeeter_preset"
	markupDefaultVersion = "1.0"
)

// Markup reads and writes the hierarchical XML preset form.
type Markup struct {
	logger *zap.Logger
	// Now supplies the timestamp used when metadata.created is missing.
	Now func() time.Time
}

// NewMarkup creates a markup codec.
func NewMarkup(log *zap.Logger) *Markup {
	return &Markup{logger: logger.OrNop(log), Now: time.Now}
}

// Extension returns ".xml".
func (m *Markup) Extension() string {
	return ".xml"
}

// Load parses an XML preset, applies metadata defaults, validates the result
// and seals its fingerprint into metadata.checksum.
func (m *Markup) Load(path string) (*preset.Configuration, error) {
	data, err := readPreset(path)
	if err != nil {
		return nil, err
	}

	cfg, err := m.Parse(data, path)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Loaded markup preset",
		zap.String("path", path),
		zap.Int("strips", len(cfg.Strips)),
		zap.Int("buses", len(cfg.Buses)),
		zap.String("checksum", *cfg.Metadata.Checksum),
	)
	return cfg, nil
}

// Parse builds a sealed configuration from in-memory XML. source names the
// origin of data in errors.
func (m *Markup) Parse(data []byte, source string) (*preset.Configuration, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var doc markupDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, formatError(source, err)
	}
	if err := endOfDocument(dec); err != nil {
		return nil, formatError(source, err)
	}

	cfg, err := doc.configuration(m.Now())
	if err != nil {
		var missing *missingSectionError
		if errors.As(err, &missing) {
			return nil, invalid(source, err)
		}
		return nil, formatError(source, err)
	}

	if err := validate(cfg); err != nil {
		return nil, invalid(source, err)
	}

	cfg.Seal()
	return cfg, nil
}

// Save validates cfg and writes it as indented XML with a declaration.
func (m *Markup) Save(cfg *preset.Configuration, path string) error {
	if err := validate(cfg); err != nil {
		return invalid(path, err)
	}

	out, err := xml.MarshalIndent(newMarkupDocument(cfg), "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", preset.ErrIO, path, err)
	}

	data := make([]byte, 0, len(xml.Header)+len(out)+1)
	data = append(data, xml.Header...)
	data = append(data, out...)
	data = append(data, '\n')
	if err := writePreset(path, data); err != nil {
		return err
	}

	m.logger.Info("Saved markup preset", zap.String("path", path))
	return nil
}

// endOfDocument consumes what follows the root element. Only whitespace,
// comments and processing instructions may appear there.
func endOfDocument(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("junk after document element: %q", bytes.TrimSpace(t))
			}
		default:
			return fmt.Errorf("junk after document element: %T", tok)
		}
	}
}

type missingSectionError struct {
	section string
}

func (e *missingSectionError) Error() string {
	return fmt.Sprintf("missing %s section", e.section)
}

// markupDocument accepts any root element name on decode.
type markupDocument struct {
	XMLName   xml.Name
	Metadata  *markupMetadata  `xml:"metadata"`
	Strips    *markupStrips    `xml:"strips"`
	Buses     *markupBuses     `xml:"buses"`
	Scenarios *markupScenarios `xml:"scenarios"`
}

type markupMetadata struct {
	Name        *string     `xml:"name"`
	Description *string     `xml:"description"`
	Version     *string     `xml:"version"`
	Created     *string     `xml:"created"`
	Author      *string     `xml:"author,omitempty"`
	Variant     *string     `xml:"voicemeeter_type,omitempty"`
	Tags        *markupTags `xml:"tags,omitempty"`
}

type markupTags struct {
	Tags []string `xml:"tag"`
}

type markupStrips struct {
	Items []markupChannel `xml:"strip"`
}

type markupBuses struct {
	Items []markupChannel `xml:"bus"`
}

type markupChannel struct {
	ID     *string       `xml:"id,attr"`
	Label  *string       `xml:"label,attr,omitempty"`
	Params []markupParam `xml:"param"`
}

type markupScenarios struct {
	Items []markupScenario `xml:"scenario"`
}

type markupScenario struct {
	Name        string        `xml:"name,attr"`
	Description *string       `xml:"description"`
	Params      *markupParams `xml:"params"`
}

type markupParams struct {
	Items []markupParam `xml:"param"`
}

type markupParam struct {
	Name        string  `xml:"name,attr"`
	Description *string `xml:"description,attr,omitempty"`
	Value       string  `xml:",chardata"`
}

func (d *markupDocument) configuration(now time.Time) (*preset.Configuration, error) {
	if d.Metadata == nil {
		return nil, &missingSectionError{section: "metadata"}
	}

	// Absent strips, buses and scenarios sections load as empty collections.
	var strips, buses []markupChannel
	var scenarios []markupScenario
	if d.Strips != nil {
		strips = d.Strips.Items
	}
	if d.Buses != nil {
		buses = d.Buses.Items
	}
	if d.Scenarios != nil {
		scenarios = d.Scenarios.Items
	}

	cfg := &preset.Configuration{Metadata: d.Metadata.metadata(now)}

	var err error
	if cfg.Strips, err = channels("strip", strips); err != nil {
		return nil, err
	}
	if cfg.Buses, err = channels("bus", buses); err != nil {
		return nil, err
	}

	cfg.Scenarios = make([]preset.Scenario, 0, len(scenarios))
	for _, sc := range scenarios {
		scenario := preset.Scenario{
			Name:       sc.Name,
			Parameters: []preset.Parameter{},
		}
		if sc.Description != nil {
			scenario.Description = *sc.Description
		}
		if sc.Params != nil {
			scenario.Parameters = parameters(sc.Params.Items)
		}
		cfg.Scenarios = append(cfg.Scenarios, scenario)
	}
	return cfg, nil
}

func (m *markupMetadata) metadata(now time.Time) preset.Metadata {
	meta := preset.Metadata{
		Name:        valueOr(m.Name, ""),
		Description: valueOr(m.Description, ""),
		Version:     valueOr(m.Version, markupDefaultVersion),
		Created:     valueOr(m.Created, now.Format(time.RFC3339)),
		Author:      m.Author,
	}
	if m.Variant != nil {
		meta.Variant = preset.VariantPtr(preset.Variant(*m.Variant))
	}
	if m.Tags != nil {
		meta.Tags = make([]string, 0, len(m.Tags.Tags))
		for _, tag := range m.Tags.Tags {
			if tag != "" {
				meta.Tags = append(meta.Tags, tag)
			}
		}
	}
	return meta
}

func channels(element string, items []markupChannel) ([]preset.Channel, error) {
	out := make([]preset.Channel, 0, len(items))
	for i, item := range items {
		id := 0
		if item.ID != nil {
			n, err := strconv.Atoi(strings.TrimSpace(*item.ID))
			if err != nil {
				return nil, fmt.Errorf("%s #%d: id %q is not an integer", element, i, *item.ID)
			}
			id = n
		}
		out = append(out, preset.Channel{
			ID:         id,
			Label:      item.Label,
			Parameters: parameters(item.Params),
		})
	}
	return out, nil
}

// parameters skips params without a name attribute or without text.
func parameters(items []markupParam) []preset.Parameter {
	out := make([]preset.Parameter, 0, len(items))
	for _, item := range items {
		if item.Name == "" || item.Value == "" {
			continue
		}
		out = append(out, preset.Parameter{
			Name:        item.Name,
			Value:       preset.ParseValue(item.Value),
			Description: item.Description,
		})
	}
	return out
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func newMarkupDocument(cfg *preset.Configuration) *markupDocument {
	meta := cfg.Metadata
	doc := &markupDocument{
		XMLName: xml.Name{Local: markupRoot},
		Metadata: &markupMetadata{
			Name:        &meta.Name,
			Description: &meta.Description,
			Version:     &meta.Version,
			Created:     &meta.Created,
			Author:      meta.Author,
		},
		Strips:    &markupStrips{Items: markupChannels(cfg.Strips)},
		Buses:     &markupBuses{Items: markupChannels(cfg.Buses)},
		Scenarios: &markupScenarios{Items: make([]markupScenario, 0, len(cfg.Scenarios))},
	}
	if meta.Variant != nil {
		variant := string(*meta.Variant)
		doc.Metadata.Variant = &variant
	}
	if meta.Tags != nil {
		doc.Metadata.Tags = &markupTags{Tags: meta.Tags}
	}

	for _, sc := range cfg.Scenarios {
		description := sc.Description
		doc.Scenarios.Items = append(doc.Scenarios.Items, markupScenario{
			Name:        sc.Name,
			Description: &description,
			Params:      &markupParams{Items: markupParameters(sc.Parameters)},
		})
	}
	return doc
}

func markupChannels(channels []preset.Channel) []markupChannel {
	out := make([]markupChannel, 0, len(channels))
	for _, ch := range channels {
		id := strconv.Itoa(ch.ID)
		out = append(out, markupChannel{
			ID:     &id,
			Label:  ch.Label,
			Params: markupParameters(ch.Parameters),
		})
	}
	return out
}

func markupParameters(params []preset.Parameter) []markupParam {
	out := make([]markupParam, 0, len(params))
	for _, p := range params {
		out = append(out, markupParam{
			Name:        p.Name,
			Description: p.Description,
			Value:       p.Value.String(),
		})
	}
	return out
}
