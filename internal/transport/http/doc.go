// Package http implements the HTTP handlers of the sheetlens API. Handlers
// decode and validate requests, delegate to the service layer and render
// JSON. Errors are written as RFC 7807 problem documents by the shared
// ErrorHandler:
//
//	{
//	    "type": "/errors/file/not-found",
//	    "title": "Not Found",
//	    "status": 404,
//	    "detail": "file '0123...' not found",
//	    "instance": "/api/files/0123.../profile",
//	    "error_code": "FILE_NOT_FOUND",
//	    "trace_id": "..."
//	}
//
// Handlers are tested with httptest against testify mocks of the service
// interfaces declared in service_interfaces.go.
package http
