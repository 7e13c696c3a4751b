// Package http implements the HTTP handlers for the report service.
// Handlers stay thin: they parse and validate requests, delegate to the
// service layer, and translate service errors into the structured API error
// model. Report validation findings are not errors; they come back as a
// payload the client surfaces to the user.
package http
