// Package middleware groups the HTTP middleware of the preset API.
//
// # Components
//
//   - auth: Validates the X-API-Key header against the configured key.
//     Metrics and swagger paths can be exempted; an empty key disables it.
//   - rayid: Assigns a Request ID (RayID) to every request, stores it in the
//     fiber locals under "ray_id" and echoes it in the X-Ray-ID header.
//
// Both are registered globally in the serve command, rayid first so that
// rejected requests are traced too.
package middleware
