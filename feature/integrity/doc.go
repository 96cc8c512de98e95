// Package integrity provides health checks over everything the preset
// manager persists.
//
// Unlike the 'presets' package which serves individual presets, this package
// inspects the library, the backups and the optional backends as a whole and
// repairs what can be repaired mechanically.
//
// # Checks Provided
//
//   - Structure: Checks that the storage bucket and its backup folder exist (fix creates them).
//   - Presets: Loads every library file and reports invalid, stale and unsealed presets (fix reseals them).
//   - Backups: Reports backups retention cannot group and groups whose preset left the library.
//   - Mirror: Lists local backups missing from object storage (fix uploads them).
//   - Catalog: Validates that the revision table matches the revision model (fix migrates it).
//
// Checks whose backend is not configured fail with ErrStorageDisabled,
// ErrMirrorDisabled or ErrCatalogDisabled and report "disabled".
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/presets : Runs preset scan (supports ?fix=true).
//   - GET /integrity/backups : Runs backup scan.
//   - GET /integrity/mirror : Runs mirror check (supports ?fix=true).
//   - GET /integrity/catalog : Runs catalog schema check (supports ?fix=true).
package integrity
