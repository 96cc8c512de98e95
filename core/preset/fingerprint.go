package preset

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3-256 digest of the canonical document
// with metadata.checksum excluded. encoding/json sorts map keys, which makes
// the encoding deterministic.
func (c *Configuration) Fingerprint() string {
	doc := c.Document()
	if meta, ok := doc["metadata"].(map[string]any); ok {
		delete(meta, "checksum")
	}
	// The tree only holds strings, ints, json.Number, nil, maps and slices.
	data, _ := json.Marshal(doc)
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Seal computes the fingerprint and stores it as metadata.checksum.
func (c *Configuration) Seal() string {
	sum := c.Fingerprint()
	c.Metadata.Checksum = &sum
	return sum
}

// Verify reports whether metadata.checksum is present and matches the content.
func (c *Configuration) Verify() bool {
	return c.Metadata.Checksum != nil && *c.Metadata.Checksum == c.Fingerprint()
}
