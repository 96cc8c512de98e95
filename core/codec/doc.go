// Package codec converts preset files to and from preset.Configuration.
//
// Two families of codecs share one contract (Codec) and one validation gate:
// every Load validates before it returns and every Save validates before it
// writes. Saves never bypass the validator.
//
// # Markup
//
// Markup handles the hierarchical XML form:
//
//	<voicemeeter_preset>
//	    <metadata>
//	        <name>Studio</name>
//	        <version>1.0</version>
//	        <tags><tag>streaming</tag></tags>
//	    </metadata>
//	    <strips>
//	        <strip id="0" label="Mic">
//	            <param name="Strip[0].gain">-3.0</param>
//	        </strip>
//	    </strips>
//	    <buses>...</buses>
//	    <scenarios>
//	        <scenario name="meeting_mode">
//	            <description>Meeting</description>
//	            <params>...</params>
//	        </scenario>
//	    </scenarios>
//	</voicemeeter_preset>
//
// All four sections are mandatory. Missing metadata leaves default
// (description to "", version to "1.0", created to the load time); author,
// voicemeeter_type and tags are carried only when present. Parameter text is
// parsed as a decimal first and kept as a string otherwise, so a text value
// that looks numeric comes back as a number. Load seals the fingerprint into
// metadata.checksum.
//
// The decoder is encoding/xml, which never expands external entities.
//
// # Document
//
// Document handles the canonical structured form in JSON (.json) or YAML
// (.yaml, .yml). Keys are written sorted with 2-space indentation so two
// saves of unchanged content are byte-identical. No defaulting happens on
// load and the stored checksum is kept as written.
//
// # Errors
//
// Load fails with preset.ErrNotFound for missing files. Syntax errors wrap
// both preset.ErrValidation and preset.ErrFormat; schema failures wrap
// preset.ErrValidation and a *schema.Violation. Write failures wrap
// preset.ErrIO.
//
// # Usage
//
//	c, err := codec.ForPath("studio.xml", logger)
//	cfg, err := c.Load("studio.xml")
//	err = codec.NewJSON(logger).Save(cfg, "studio.json")
package codec
