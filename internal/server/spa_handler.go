package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAMiddleware serves the panel's single-page frontend alongside the API.
// API, health and metrics paths pass through untouched; any path without a
// matching static file falls back to index.html so client-side routing works.
func SPAMiddleware(next http.Handler, staticDir string) http.Handler {
	indexPath := filepath.Join(staticDir, "index.html")
	fileServer := http.FileServer(http.Dir(staticDir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") ||
			r.URL.Path == "/healthz" ||
			r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		if r.URL.Path == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}

		if _, err := os.Stat(filepath.Join(staticDir, filepath.Clean(r.URL.Path))); os.IsNotExist(err) {
			http.ServeFile(w, r, indexPath)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}
