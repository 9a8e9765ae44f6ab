// Package http exposes the practice scheduler over a JSON REST surface.
//
// The package wires plain net/http handlers behind a ServeMux based router.
// Handlers decode and structurally validate request bodies, delegate to the
// application services, and translate service errors into HTTP status codes:
// validation failures map to 422, scheduling conflicts to 409, missing
// resources to 404, and storage failures to 500.
package http
