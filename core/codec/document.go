package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"preset-manager/core/logger"
	"preset-manager/core/preset"
	"preset-manager/core/schema"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Encoding names a structured-document syntax.
type Encoding string

const (
	// EncodingJSON writes 2-space indented JSON.
	EncodingJSON Encoding = "json"
	// EncodingYAML writes 2-space indented YAML.
	EncodingYAML Encoding = "yaml"
)

// Document reads and writes the canonical structured form. It performs no
// field defaulting: everything the schema requires must be present.
type Document struct {
	encoding Encoding
	logger   *zap.Logger
}

// NewJSON creates a JSON document codec.
func NewJSON(log *zap.Logger) *Document {
	return &Document{encoding: EncodingJSON, logger: logger.OrNop(log)}
}

// NewYAML creates a YAML document codec.
func NewYAML(log *zap.Logger) *Document {
	return &Document{encoding: EncodingYAML, logger: logger.OrNop(log)}
}

// Encoding returns the syntax handled by the codec.
func (d *Document) Encoding() Encoding {
	return d.encoding
}

// Extension returns ".json" or ".yaml".
func (d *Document) Extension() string {
	return "." + string(d.encoding)
}

// Load parses, validates and builds a configuration. A stored checksum is
// kept as written.
func (d *Document) Load(path string) (*preset.Configuration, error) {
	data, err := readPreset(path)
	if err != nil {
		return nil, err
	}

	cfg, err := d.Parse(data, path)
	if err != nil {
		return nil, err
	}

	d.logger.Info("Loaded document preset",
		zap.String("path", path),
		zap.String("encoding", string(d.encoding)),
		zap.Int("strips", len(cfg.Strips)),
		zap.Int("buses", len(cfg.Buses)),
	)
	return cfg, nil
}

// Parse decodes and validates an in-memory document. source names the
// origin of data in errors.
func (d *Document) Parse(data []byte, source string) (*preset.Configuration, error) {
	tree, err := d.decode(data)
	if err != nil {
		return nil, formatError(source, err)
	}

	if err := schema.Validate(tree); err != nil {
		return nil, invalid(source, err)
	}

	cfg, err := preset.FromDocument(tree.(map[string]any))
	if err != nil {
		return nil, invalid(source, err)
	}
	return cfg, nil
}

// Save validates cfg and writes its canonical document with sorted keys.
func (d *Document) Save(cfg *preset.Configuration, path string) error {
	tree := cfg.Document()
	if err := schema.Validate(tree); err != nil {
		return invalid(path, err)
	}

	data, err := d.encode(tree)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", preset.ErrIO, path, err)
	}
	if err := writePreset(path, data); err != nil {
		return err
	}

	d.logger.Info("Saved document preset", zap.String("path", path), zap.String("encoding", string(d.encoding)))
	return nil
}

func (d *Document) decode(data []byte) (any, error) {
	if d.encoding == EncodingYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func (d *Document) encode(tree map[string]any) ([]byte, error) {
	if d.encoding == EncodingYAML {
		return encodeYAML(tree)
	}
	return encodeJSON(tree)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return tree, nil
}

func encodeJSON(tree map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeYAML goes through yaml.Node so numbers keep their written decimal
// form instead of passing through float64.
func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, errors.New("empty document")
	}
	return fromNode(&root)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])

	case yaml.AliasNode:
		return fromNode(n.Alias)

	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			if _, dup := out[key.Value]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
			}
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = val
		}
		return out, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!int", "!!float":
			if _, err := decimal.NewFromString(n.Value); err == nil {
				return json.Number(n.Value), nil
			}
			var v any
			if err := n.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		default:
			return n.Value, nil
		}
	}
	return nil, fmt.Errorf("line %d: unsupported node", n.Line)
}

func encodeYAML(tree map[string]any) ([]byte, error) {
	node, err := toNode(tree)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNode(val any) (*yaml.Node, error) {
	switch v := val.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}, nil
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: v.String()}, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			child, err := toNode(v[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unsupported document value %T", val)
	}
}
