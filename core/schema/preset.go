package schema

import (
	"math"
	"regexp"
)

// VersionPattern is the accepted MAJOR.MINOR[.PATCH] version format.
var VersionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// VariantNames lists the accepted metadata.voicemeeter_type values.
var VariantNames = []string{"basic", "banana", "potato"}

// presetValidator is built once and never mutated.
var presetValidator = NewValidator(presetRoot())

// Validate checks a canonical preset document.
func Validate(doc any) error {
	return presetValidator.Validate(doc)
}

func parameterField() Field {
	return Field{
		Name:     "parameters",
		Type:     FieldTypeArray,
		Required: true,
		Items: &Field{
			Type: FieldTypeObject,
			Children: []Field{
				{Name: "name", Type: FieldTypeString, Required: true, MinLength: 1},
				{Name: "value", Type: FieldTypeScalar, Required: true},
				{Name: "description", Type: FieldTypeString, Nullable: true},
			},
		},
	}
}

func channelsField(name string) Field {
	zero, top := 0, math.MaxInt32
	return Field{
		Name:     name,
		Type:     FieldTypeArray,
		Required: true,
		UniqueBy: "id",
		Items: &Field{
			Type: FieldTypeObject,
			Children: []Field{
				{Name: "id", Type: FieldTypeInteger, Required: true, Minimum: &zero, Maximum: &top},
				{Name: "label", Type: FieldTypeString, Nullable: true},
				parameterField(),
			},
		},
	}
}

func presetRoot() Field {
	return Field{
		Type:   FieldTypeObject,
		Closed: true,
		Children: []Field{
			{
				Name:     "metadata",
				Type:     FieldTypeObject,
				Required: true,
				Children: []Field{
					{Name: "name", Type: FieldTypeString, Required: true, MinLength: 1},
					{Name: "description", Type: FieldTypeString, Required: true},
					{Name: "version", Type: FieldTypeString, Required: true, Pattern: VersionPattern},
					{Name: "created", Type: FieldTypeString, Required: true},
					{Name: "author", Type: FieldTypeString, Nullable: true},
					{Name: "tags", Type: FieldTypeArray, Nullable: true, Items: &Field{Type: FieldTypeString, MinLength: 1}},
					{Name: "voicemeeter_type", Type: FieldTypeString, Nullable: true, Enum: VariantNames},
					{Name: "checksum", Type: FieldTypeString, Nullable: true},
				},
			},
			channelsField("strips"),
			channelsField("buses"),
			{
				Name:     "scenarios",
				Type:     FieldTypeArray,
				Required: true,
				UniqueBy: "name",
				Items: &Field{
					Type: FieldTypeObject,
					Children: []Field{
						{Name: "name", Type: FieldTypeString, Required: true, MinLength: 1},
						{Name: "description", Type: FieldTypeString, Required: true},
						parameterField(),
					},
				},
			},
		},
	}
}
