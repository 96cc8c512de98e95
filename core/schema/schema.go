package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"preset-manager/core/utils"

	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a document node.
type FieldType string

const (
	FieldTypeObject  FieldType = "object"
	FieldTypeArray   FieldType = "array"
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	// FieldTypeScalar accepts a string or a number.
	FieldTypeScalar FieldType = "string or number"
)

// Field describes one node of the document tree.
type Field struct {
	Name      string
	Type      FieldType
	Required  bool
	Nullable  bool
	MinLength int
	Minimum   *int
	Maximum   *int
	Pattern   *regexp.Regexp
	Enum      []string
	// Closed rejects keys not listed in Children (objects only).
	Closed bool
	// Children are the keys of an object.
	Children []Field
	// Items describes the elements of an array.
	Items *Field
	// UniqueBy names an element key whose values must be unique (arrays only).
	UniqueBy string
}

// Violation is the single diagnostic produced for an invalid document.
type Violation struct {
	// Path locates the offending node, e.g. "strips[2].parameters[0].name".
	Path string
	// Rule names the failed rule (required, type, minLength, pattern, enum, minimum, maximum, unique, additional).
	Rule string
	// Detail is a human-readable explanation.
	Detail string
}

func (v *Violation) Error() string {
	path := v.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s: %s (%s)", path, v.Detail, v.Rule)
}

// Validator checks generic document trees against a field tree.
type Validator struct {
	root Field
}

// NewValidator creates a validator for the given root field.
func NewValidator(root Field) *Validator {
	return &Validator{root: root}
}

// Validate walks doc and returns the first *Violation found, or nil.
func (v *Validator) Validate(doc any) error {
	if viol := checkNode(v.root, doc, ""); viol != nil {
		return viol
	}
	return nil
}

func checkNode(f Field, val any, path string) *Violation {
	if val == nil {
		if f.Nullable {
			return nil
		}
		return &Violation{Path: path, Rule: "type", Detail: fmt.Sprintf("must be %s, got null", describe(f.Type))}
	}

	switch f.Type {
	case FieldTypeObject:
		obj, ok := val.(map[string]any)
		if !ok {
			return typeViolation(f, val, path)
		}
		return checkObject(f, obj, path)

	case FieldTypeArray:
		items, ok := val.([]any)
		if !ok {
			return typeViolation(f, val, path)
		}
		return checkArray(f, items, path)

	case FieldTypeString:
		s, ok := val.(string)
		if !ok {
			return typeViolation(f, val, path)
		}
		return checkString(f, s, path)

	case FieldTypeInteger:
		if !utils.IsInteger(val) {
			return typeViolation(f, val, path)
		}
		return checkInteger(f, val, path)

	case FieldTypeScalar:
		if s, ok := val.(string); ok {
			return checkString(f, s, path)
		}
		if !utils.IsNumber(val) {
			return typeViolation(f, val, path)
		}
		return nil
	}
	return nil
}

func checkObject(f Field, obj map[string]any, path string) *Violation {
	known := make(map[string]struct{}, len(f.Children))
	for _, child := range f.Children {
		known[child.Name] = struct{}{}
		childPath := joinPath(path, child.Name)
		val, present := obj[child.Name]
		if !present {
			if child.Required {
				return &Violation{Path: childPath, Rule: "required", Detail: "is required"}
			}
			continue
		}
		if viol := checkNode(child, val, childPath); viol != nil {
			return viol
		}
	}
	if f.Closed {
		var extra []string
		for key := range obj {
			if _, ok := known[key]; !ok {
				extra = append(extra, key)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			return &Violation{Path: joinPath(path, extra[0]), Rule: "additional", Detail: "is not an allowed key"}
		}
	}
	return nil
}

func checkArray(f Field, items []any, path string) *Violation {
	seen := make(map[string]int)
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if f.Items != nil {
			if viol := checkNode(*f.Items, item, itemPath); viol != nil {
				return viol
			}
		}
		if f.UniqueBy == "" {
			continue
		}
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		key := utils.ToString(obj[f.UniqueBy])
		if d, ok := utils.ToDecimal(obj[f.UniqueBy]); ok {
			key = d.String()
		}
		if first, dup := seen[key]; dup {
			return &Violation{
				Path:   joinPath(itemPath, f.UniqueBy),
				Rule:   "unique",
				Detail: fmt.Sprintf("duplicates %s[%d].%s (%s)", path, first, f.UniqueBy, key),
			}
		}
		seen[key] = i
	}
	return nil
}

func checkInteger(f Field, val any, path string) *Violation {
	d, _ := utils.ToDecimal(val)
	if f.Minimum != nil && d.LessThan(decimal.NewFromInt(int64(*f.Minimum))) {
		return &Violation{Path: path, Rule: "minimum", Detail: fmt.Sprintf("must be >= %d, got %s", *f.Minimum, d.String())}
	}
	if f.Maximum != nil && d.GreaterThan(decimal.NewFromInt(int64(*f.Maximum))) {
		return &Violation{Path: path, Rule: "maximum", Detail: fmt.Sprintf("must be <= %d, got %s", *f.Maximum, d.String())}
	}
	return nil
}

func checkString(f Field, s string, path string) *Violation {
	if len(s) < f.MinLength {
		if f.MinLength == 1 {
			return &Violation{Path: path, Rule: "minLength", Detail: "must be a non-empty string"}
		}
		return &Violation{Path: path, Rule: "minLength", Detail: fmt.Sprintf("must be at least %d characters", f.MinLength)}
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return &Violation{Path: path, Rule: "pattern", Detail: fmt.Sprintf("%q does not match %s", s, f.Pattern.String())}
	}
	if len(f.Enum) > 0 {
		for _, allowed := range f.Enum {
			if s == allowed {
				return nil
			}
		}
		return &Violation{Path: path, Rule: "enum", Detail: fmt.Sprintf("%q is not one of %s", s, strings.Join(f.Enum, ", "))}
	}
	return nil
}

func typeViolation(f Field, val any, path string) *Violation {
	return &Violation{Path: path, Rule: "type", Detail: fmt.Sprintf("must be %s, got %s", describe(f.Type), kindOf(val))}
}

func describe(t FieldType) string {
	switch t {
	case FieldTypeObject:
		return "a mapping"
	case FieldTypeArray:
		return "a sequence"
	case FieldTypeInteger:
		return "an integer"
	default:
		return "a " + string(t)
	}
}

func kindOf(val any) string {
	switch val.(type) {
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if utils.IsNumber(val) {
		return "number"
	}
	return fmt.Sprintf("%T", val)
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
