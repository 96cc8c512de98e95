// Package utils provides common utility functions for the preset-manager application.
// It includes helpers for coercing the loosely typed values of decoded JSON and YAML
// documents (json.Number, the YAML integer kinds, float64) into decimals and ints,
// and other shared logic that doesn't fit into domain-specific packages.
package utils
