// Package diff produces structural change reports between two preset
// configurations.
//
// # Algorithm
//
// Compare(a, b) walks four sections:
//   - metadata: name, description, version, author and voicemeeter_type are
//     compared field by field; a value absent on one side counts as a change
//   - strips and buses: keyed by id; the union of ids is classified as added,
//     removed or modified
//   - scenarios: keyed by name with the same classification
//
// An entity present on both sides is modified only when the union of its
// parameter names holds at least one differing value. A parameter missing on
// one side compares as nil. Numbers compare by decimal value (0.0 equals 0)
// and a number never equals a string.
//
// # Summary
//
// TotalChanges is the number of metadata field changes plus every added,
// removed or modified strip, bus and scenario. It is a change count, not a
// byte diff: two files that differ only in attribute order or indentation
// produce an empty report.
//
// # Usage
//
//	report := diff.Compare(before, after)
//	if !report.Identical() {
//	    for _, line := range report.Lines() {
//	        fmt.Println(line)
//	    }
//	}
package diff
