package codec_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"preset-manager/core/codec"
	"preset-manager/core/diff"
	"preset-manager/core/preset"
	"preset-manager/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const concreteMarkup = `<?xml version="1.0" encoding="UTF-8"?>
<voicemeeter_preset>
    <metadata>
        <name>Test Preset</name>
        <description>A test preset</description>
        <version>1.0</version>
        <created>2025-01-21T10:00:00</created>
    </metadata>
    <strips>
        <strip id="0">
            <param name="Strip[0].mute">0.0</param>
            <param name="Strip[0].gain">-3.0</param>
        </strip>
    </strips>
    <buses>
        <bus id="0">
            <param name="Bus[0].gain">0.0</param>
        </bus>
    </buses>
    <scenarios/>
</voicemeeter_preset>
`

func full() *preset.Configuration {
	return &preset.Configuration{
		Metadata: preset.Metadata{
			Name:        "Studio <Live>",
			Description: "Streaming & music",
			Version:     "2.1.0",
			Created:     "2025-01-21T10:00:00",
			Author:      preset.StringPtr("Test Author"),
			Tags:        []string{"streaming", "music"},
			Variant:     preset.VariantPtr(preset.VariantPotato),
		},
		Strips: []preset.Channel{
			{ID: 3, Label: preset.StringPtr("Microphone"), Parameters: []preset.Parameter{
				preset.Param("Strip[3].mute", preset.NewFloat(0)),
				preset.Param("Strip[3].gain", preset.ParseValue("-3.25")),
				preset.Param("Strip[3].label", preset.NewText("Mic 1")),
			}},
			{ID: 0, Parameters: []preset.Parameter{}},
		},
		Buses: []preset.Channel{
			{ID: 0, Parameters: []preset.Parameter{
				{Name: "Bus[0].gain", Value: preset.ParseValue("1000000"), Description: preset.StringPtr("Gain")},
			}},
		},
		Scenarios: []preset.Scenario{
			{Name: "meeting_mode", Description: "Meeting", Parameters: []preset.Parameter{
				preset.Param("Strip[3].mute", preset.NewFloat(1)),
			}},
			{Name: "empty", Description: "", Parameters: []preset.Parameter{}},
		},
	}
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMarkup_ConcreteScenario(t *testing.T) {
	path := write(t, "preset.xml", concreteMarkup)

	original, err := codec.NewMarkup(nil).Load(path)
	require.NoError(t, err)

	require.Len(t, original.Strips, 1)
	mute := original.Strips[0].Parameters[0]
	assert.Equal(t, "Strip[0].mute", mute.Name)
	assert.True(t, mute.Value.IsNumber())
	assert.Equal(t, "0.0", mute.Value.String())
	require.NotNil(t, original.Metadata.Checksum)
	assert.True(t, original.Verify())

	jsonPath := filepath.Join(t.TempDir(), "preset.json")
	jsonCodec := codec.NewJSON(nil)
	require.NoError(t, jsonCodec.Save(original, jsonPath))

	reloaded, err := jsonCodec.Load(jsonPath)
	require.NoError(t, err)

	assert.Equal(t, 0, diff.Compare(original, reloaded).Summary.TotalChanges)
	assert.Equal(t, original.Fingerprint(), reloaded.Fingerprint())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		codec codec.Codec
		file  string
	}{
		{"Markup", codec.NewMarkup(nil), "preset.xml"},
		{"JSON", codec.NewJSON(nil), "preset.json"},
		{"YAML", codec.NewYAML(nil), "preset.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full()
			path := filepath.Join(t.TempDir(), tt.file)

			require.NoError(t, tt.codec.Save(cfg, path))
			loaded, err := tt.codec.Load(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Fingerprint(), loaded.Fingerprint())
			assert.True(t, diff.Compare(cfg, loaded).Identical())
			assert.Equal(t, []string{"streaming", "music"}, loaded.Metadata.Tags)
			assert.Equal(t, "Microphone", *loaded.Strips[0].Label)
			assert.Nil(t, loaded.Strips[1].Label)
			assert.Equal(t, "1000000.0", loaded.Buses[0].Parameters[0].Value.String())
		})
	}
}

func TestDocument_StableOutput(t *testing.T) {
	for _, c := range []codec.Codec{codec.NewJSON(nil), codec.NewYAML(nil)} {
		dir := t.TempDir()
		first := filepath.Join(dir, "a"+c.Extension())
		second := filepath.Join(dir, "b"+c.Extension())

		require.NoError(t, c.Save(full(), first))
		loaded, err := c.Load(first)
		require.NoError(t, err)
		require.NoError(t, c.Save(loaded, second))

		a, err := os.ReadFile(first)
		require.NoError(t, err)
		b, err := os.ReadFile(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), c.Extension())
	}
}

func TestJSON_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, codec.NewJSON(nil).Save(full(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "{\n  \"buses\": ["), text)
	assert.Contains(t, text, `"value": -3.25`)
	assert.Contains(t, text, `"value": 0.0`)
	assert.Contains(t, text, `"name": "Studio <Live>"`)
	assert.NotContains(t, text, "e+")
	assert.True(t, strings.HasSuffix(text, "}\n"))
}

func TestYAML_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, codec.NewYAML(nil).Save(full(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "buses:\n"), text)
	assert.Contains(t, text, "value: -3.25")
	assert.Contains(t, text, `description: ""`)
	assert.Contains(t, text, "checksum: null")
}

func TestMarkup_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.xml")
	require.NoError(t, codec.NewMarkup(nil).Save(full(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<voicemeeter_preset>"))
	assert.Contains(t, text, "\n    <metadata>\n        <name>Studio &lt;Live&gt;</name>")
	assert.Contains(t, text, `<strip id="3" label="Microphone">`)
	assert.Contains(t, text, `<param name="Strip[3].gain">-3.25</param>`)
	assert.Contains(t, text, `<param name="Bus[0].gain" description="Gain">1000000.0</param>`)
	// Collection order is kept as stored
	assert.Less(t, strings.Index(text, `<strip id="3"`), strings.Index(text, `<strip id="0"`))
}

func TestMarkup_Defaults(t *testing.T) {
	path := write(t, "minimal.xml", `<preset>
    <metadata><name>Minimal</name></metadata>
    <strips><strip><param name="Strip[0].label">Mic</param><param name="Strip[0].gain"></param></strip></strips>
    <buses/>
    <scenarios><scenario name="quiet"/></scenarios>
</preset>`)

	m := codec.NewMarkup(nil)
	m.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	cfg, err := m.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Metadata.Description)
	assert.Equal(t, "1.0", cfg.Metadata.Version)
	assert.Equal(t, "2025-03-01T12:00:00Z", cfg.Metadata.Created)
	assert.Nil(t, cfg.Metadata.Author)
	assert.Nil(t, cfg.Metadata.Tags)
	assert.Nil(t, cfg.Metadata.Variant)

	require.Len(t, cfg.Strips, 1)
	assert.Equal(t, 0, cfg.Strips[0].ID)
	require.Len(t, cfg.Strips[0].Parameters, 1, "params without text are skipped")
	label, ok := cfg.Strips[0].Parameters[0].Value.Text()
	assert.True(t, ok)
	assert.Equal(t, "Mic", label)

	require.Len(t, cfg.Scenarios, 1)
	assert.Equal(t, "", cfg.Scenarios[0].Description)
	assert.Empty(t, cfg.Scenarios[0].Parameters)
}

func TestMarkup_TagsPresence(t *testing.T) {
	path := write(t, "tags.xml", `<voicemeeter_preset>
    <metadata><name>T</name><tags><tag>a</tag><tag></tag><tag>b</tag></tags></metadata>
    <strips/><buses/><scenarios/>
</voicemeeter_preset>`)

	cfg, err := codec.NewMarkup(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Metadata.Tags)
}

func TestMarkup_MissingSections(t *testing.T) {
	path := write(t, "no_scenarios.xml", `<voicemeeter_preset>
    <metadata><name>Partial</name></metadata>
    <strips><strip id="0"><param name="Strip[0].gain">-3.0</param></strip></strips>
    <buses/>
</voicemeeter_preset>`)

	cfg, err := codec.NewMarkup(nil).Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Strips, 1)
	assert.NotNil(t, cfg.Buses)
	assert.Empty(t, cfg.Buses)
	assert.NotNil(t, cfg.Scenarios)
	assert.Empty(t, cfg.Scenarios)

	bare, err := codec.NewMarkup(nil).Parse([]byte(`<voicemeeter_preset><metadata><name>Bare</name></metadata></voicemeeter_preset>`), "bare")
	require.NoError(t, err)
	assert.Empty(t, bare.Strips)
	assert.Empty(t, bare.Buses)
	assert.Empty(t, bare.Scenarios)
}

func TestMarkup_SkipsIncompleteParams(t *testing.T) {
	cfg, err := codec.NewMarkup(nil).Parse([]byte(`<voicemeeter_preset>
    <metadata><name>Params</name></metadata>
    <strips>
        <strip id="0">
            <param>1.0</param>
            <param name="Strip[0].gain">-3.0</param>
            <param name="Strip[0].mute"/>
        </strip>
    </strips>
    <scenarios>
        <scenario name="quiet"><params><param>0.0</param><param name="Bus[0].mute">1.0</param></params></scenario>
    </scenarios>
</voicemeeter_preset>`), "params")
	require.NoError(t, err)

	require.Len(t, cfg.Strips[0].Parameters, 1)
	assert.Equal(t, "Strip[0].gain", cfg.Strips[0].Parameters[0].Name)
	require.Len(t, cfg.Scenarios[0].Parameters, 1)
	assert.Equal(t, "Bus[0].mute", cfg.Scenarios[0].Parameters[0].Name)
}

func TestMarkup_TrailingContent(t *testing.T) {
	const doc = `<voicemeeter_preset><metadata><name>x</name></metadata></voicemeeter_preset>`

	accepted := []string{
		doc + "\n",
		doc + "\n<!-- exported -->\n<?pi data?>\n",
	}
	for _, data := range accepted {
		_, err := codec.NewMarkup(nil).Parse([]byte(data), "trailing")
		assert.NoError(t, err, data)
	}

	rejected := []string{
		doc + "<junk",
		doc + "<junk/>",
		doc + "text",
		doc + doc,
	}
	for _, data := range rejected {
		_, err := codec.NewMarkup(nil).Parse([]byte(data), "trailing")
		assert.ErrorIs(t, err, preset.ErrFormat, data)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		format   bool
		violated string
	}{
		{
			name:    "MalformedMarkup",
			file:    "bad.xml",
			content: `<voicemeeter_preset><metadata>`,
			format:  true,
		},
		{
			name:    "MissingMetadata",
			file:    "nometa.xml",
			content: `<voicemeeter_preset><strips/><buses/><scenarios/></voicemeeter_preset>`,
		},
		{
			name:    "TrailingMarkup",
			file:    "trailing.xml",
			content: `<voicemeeter_preset><metadata><name>x</name></metadata></voicemeeter_preset><junk`,
			format:  true,
		},
		{
			name:    "NonIntegerID",
			file:    "id.xml",
			content: `<voicemeeter_preset><metadata><name>x</name></metadata><strips><strip id="one"/></strips><buses/><scenarios/></voicemeeter_preset>`,
			format:  true,
		},
		{
			name:     "MarkupEmptyName",
			file:     "noname.xml",
			content:  `<voicemeeter_preset><metadata/><strips/><buses/><scenarios/></voicemeeter_preset>`,
			violated: "metadata.name",
		},
		{
			name:     "MarkupUnknownVariant",
			file:     "variant.xml",
			content:  `<voicemeeter_preset><metadata><name>x</name><voicemeeter_type>tomato</voicemeeter_type></metadata><strips/><buses/><scenarios/></voicemeeter_preset>`,
			violated: "metadata.voicemeeter_type",
		},
		{
			name:    "MalformedJSON",
			file:    "bad.json",
			content: `{"metadata": `,
			format:  true,
		},
		{
			name:    "TrailingJSON",
			file:    "trailing.json",
			content: `{} {}`,
			format:  true,
		},
		{
			name:     "JSONMissingBuses",
			file:     "nobuses.json",
			content:  `{"metadata": {"name": "x", "description": "", "version": "1.0", "created": "now"}, "strips": [], "scenarios": []}`,
			violated: "buses",
		},
		{
			name:     "JSONNoDefaulting",
			file:     "noversion.json",
			content:  `{"metadata": {"name": "x", "description": "", "created": "now"}, "strips": [], "buses": [], "scenarios": []}`,
			violated: "metadata.version",
		},
		{
			name:    "MalformedYAML",
			file:    "bad.yaml",
			content: "metadata: [unclosed",
			format:  true,
		},
		{
			name:    "EmptyYAML",
			file:    "empty.yml",
			content: "",
			format:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, tt.file, tt.content)
			c, err := codec.ForPath(path, nil)
			require.NoError(t, err)

			_, err = c.Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, preset.ErrValidation)
			assert.Equal(t, tt.format, errors.Is(err, preset.ErrFormat), err.Error())

			if tt.violated != "" {
				var v *schema.Violation
				require.ErrorAs(t, err, &v)
				assert.Equal(t, tt.violated, v.Path)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	for _, c := range []codec.Codec{codec.NewMarkup(nil), codec.NewJSON(nil), codec.NewYAML(nil)} {
		_, err := c.Load(missing + c.Extension())
		assert.ErrorIs(t, err, preset.ErrNotFound)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	for _, c := range []codec.Codec{codec.NewMarkup(nil), codec.NewJSON(nil), codec.NewYAML(nil)} {
		cfg := full()
		cfg.Metadata.Name = ""
		path := filepath.Join(t.TempDir(), "invalid"+c.Extension())

		err := c.Save(cfg, path)
		assert.ErrorIs(t, err, preset.ErrValidation)
		assert.NoFileExists(t, path, "invalid presets are never written")
	}
}

func TestSave_RejectsEmptyTag(t *testing.T) {
	for _, c := range []codec.Codec{codec.NewMarkup(nil), codec.NewJSON(nil), codec.NewYAML(nil)} {
		cfg := full()
		cfg.Metadata.Tags = []string{""}

		err := c.Save(cfg, filepath.Join(t.TempDir(), "tags"+c.Extension()))
		var v *schema.Violation
		require.ErrorAs(t, err, &v)
		assert.Equal(t, "metadata.tags[0]", v.Path)
	}
}

func TestSave_IOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "preset.json")
	err := codec.NewJSON(nil).Save(full(), path)
	assert.ErrorIs(t, err, preset.ErrIO)
}

func TestForPath(t *testing.T) {
	tests := map[string]string{
		"a.xml":  ".xml",
		"a.JSON": ".json",
		"a.yaml": ".yaml",
		"a.yml":  ".yaml",
	}
	for path, ext := range tests {
		c, err := codec.ForPath(path, nil)
		require.NoError(t, err, path)
		assert.Equal(t, ext, c.Extension(), path)
		assert.True(t, codec.IsSupported(path))
	}

	_, err := codec.ForPath("preset.toml", nil)
	assert.ErrorIs(t, err, preset.ErrUnsupportedFormat)
	assert.False(t, codec.IsSupported("preset.toml"))
}

func TestParse(t *testing.T) {
	markup, err := codec.NewMarkup(nil).Parse([]byte(concreteMarkup), "request")
	require.NoError(t, err)
	require.NotNil(t, markup.Metadata.Checksum)
	assert.True(t, markup.Verify())

	dir := t.TempDir()
	path := filepath.Join(dir, "concrete.json")
	require.NoError(t, codec.NewJSON(nil).Save(markup, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed, err := codec.NewJSON(nil).Parse(data, "request")
	require.NoError(t, err)
	assert.Equal(t, markup.Fingerprint(), parsed.Fingerprint())

	_, err = codec.NewYAML(nil).Parse([]byte("metadata: [unclosed"), "request")
	assert.ErrorIs(t, err, preset.ErrFormat)
	assert.ErrorContains(t, err, "request")
}
