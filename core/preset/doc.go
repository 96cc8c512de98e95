// Package preset defines the canonical in-memory form of a mixer preset.
//
// A Configuration bundles one Metadata block with ordered collections of
// strips, buses and scenarios. Strips and buses share the Channel shape: an
// integer id, an optional display label and an ordered list of parameters.
//
// # Parameter Values
//
// Parameter values are a tagged union decided once at parse time. ParseValue
// attempts a decimal parse first and falls back to the literal string, so a
// value read from any file format ends up with the same type:
//
//	v := preset.ParseValue("-3.0")   // number
//	v = preset.ParseValue("Mic 1")   // text
//
// Numbers are backed by shopspring/decimal and always render in plain decimal
// notation with at least one fractional digit ("0.0", "-3.0", "0.25").
//
// # Canonical Document
//
// Document converts a Configuration into the generic tree (maps, slices and
// scalars) used by the schema validator, the structured-document codec and
// the fingerprint. FromDocument performs the reverse conversion for trees
// that already passed validation.
//
// # Fingerprint
//
// Fingerprint is a BLAKE3-256 digest of the key-sorted JSON encoding of the
// canonical document, excluding metadata.checksum itself. Seal stores the
// fingerprint into the metadata; Verify reports whether it is still fresh.
//
//	cfg.Seal()
//	cfg.Metadata.Name = "renamed"
//	cfg.Verify() // false until Seal is called again
package preset
