// Package schema validates canonical preset documents before they are turned
// into typed configurations or written to disk.
//
// Validation runs on the generic tree (map[string]any, []any and scalars)
// produced by the codecs, so a partially malformed file yields one precise
// diagnostic instead of a construction-time failure.
//
// # Rules
//
// The preset schema is a declarative Field tree built once at package
// initialisation. It requires exactly the metadata, strips, buses and
// scenarios sections and checks:
//   - metadata: non-empty name, MAJOR.MINOR[.PATCH] version, created string,
//     optional author/tags/checksum, voicemeeter_type in basic/banana/potato or null
//   - strips and buses: unique integer ids >= 0 with a parameters sequence
//   - scenarios: unique non-empty names, a description and parameters
//   - parameters: non-empty name and a string or numeric value
//
// # Diagnostics
//
// The first failing rule is returned as a *Violation naming the path and rule:
//
//	err := schema.Validate(doc)
//	var v *schema.Violation
//	if errors.As(err, &v) {
//	    fmt.Println(v.Path, v.Rule) // "metadata.version pattern"
//	}
package schema
