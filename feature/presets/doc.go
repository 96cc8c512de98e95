// Package presets exposes the preset engine to the CLI and the HTTP API.
//
// Service is the collaborator interface of the engine. It applies the size
// guard of the library, routes every file to its codec by extension and
// wires the optional infrastructure around the engine:
//
//   - Backups are mirrored to object storage when a Mirror is configured;
//     pruned backups are removed from the mirror and restoring a backup that
//     is missing locally fetches it from the mirror first.
//   - Every save, backup and restore is recorded in the revision catalog
//     (table 'preset_revisions') when a database is available.
//   - Every operation is observed by the telemetry collector.
//
// # HTTP Endpoints
//
//   - GET  /presets                    : Lists the library (?ext=xml).
//   - GET  /presets/:name              : Returns the canonical document.
//   - PUT  /presets/:name              : Validates and stores a body (JSON, YAML or XML).
//   - GET  /presets/:name/validate     : Validates and reports the fingerprint.
//   - GET  /presets/:name/diff/:other  : Compares two presets.
//   - POST /presets/:name/convert      : Converts to ?to=xml|json|yaml.
//   - POST /presets/:name/backup       : Creates a timestamped backup.
//   - GET  /presets/:name/history      : Lists catalog revisions.
//   - GET  /backups                    : Lists backups.
//   - POST /backups/prune              : Applies retention (?max=N).
//   - POST /backups/:name/restore      : Restores into the library (?target=).
//   - POST /templates                  : Synthesizes a variant template.
//
// Names are resolved inside the library directory; names without an
// extension get the configured default format.
package presets
