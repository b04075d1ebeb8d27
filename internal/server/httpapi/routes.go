package httpapi

import (
	"net/http"
	"strings"
)

// SetupRoutes registers every endpoint and wraps the mux in the request
// logger and the admin auth check.
func SetupRoutes(d *Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /admin/login", LoginHandler(d))
	mux.HandleFunc("GET /admin/pwa", SettingsHandler(d))
	mux.HandleFunc("POST /admin/pwa", ActionHandler(d))
	mux.HandleFunc("GET /manifest.json", ManifestHandler(d))
	mux.HandleFunc("GET /page_header.json", PageHeaderHandler(d))

	iconRoute := "GET /{name}"
	if root := strings.Trim(d.Icons.StoragePath(), "/"); root != "" {
		iconRoute = "GET /" + root + "/{name}"
	}
	mux.HandleFunc(iconRoute, IconFileHandler(d))

	return RequestLogger(d.Logger, AuthMiddleware(d, mux))
}
