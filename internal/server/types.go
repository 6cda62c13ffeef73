// Package server provides the HTTP surface of the Drive PDF uploader.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

// UploadResponse is the HTTP response after a successful upload.
type UploadResponse struct {
	// FileID is the provider-assigned identifier of the uploaded file.
	FileID string `json:"file_id"`
	// ShareableURL is a browser-accessible link to the uploaded file.
	ShareableURL string `json:"shareable_url"`
}

// uploadForm holds the non-file form fields, validated before any file
// processing happens.
type uploadForm struct {
	FolderID string `validate:"required"`
}

// RootResponse is the HTTP response for the index endpoint.
type RootResponse struct {
	OK bool `json:"ok"`
	// Note is a short usage hint for the upload endpoint.
	Note string `json:"note"`
}

// CronResponse is the HTTP response for the heartbeat endpoint.
type CronResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
