package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSPAMiddleware(t *testing.T) {
	staticDir := t.TempDir()
	writeFile(t, filepath.Join(staticDir, "index.html"), "<html>panel</html>")
	writeFile(t, filepath.Join(staticDir, "app.js"), "console.log('panel')")

	apiHit := false
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiHit = true
		w.WriteHeader(http.StatusOK)
	})

	handler := SPAMiddleware(api, staticDir)

	t.Run("api paths pass through", func(t *testing.T) {
		apiHit = false
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/automation", nil))

		if !apiHit {
			t.Error("expected API handler to be invoked")
		}
	})

	t.Run("metrics passes through", func(t *testing.T) {
		apiHit = false
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		if !apiHit {
			t.Error("expected metrics handler to be invoked")
		}
	})

	t.Run("root serves index", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if rr.Body.String() != "<html>panel</html>" {
			t.Errorf("unexpected body %q", rr.Body.String())
		}
	})

	t.Run("static asset served directly", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app.js", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if rr.Body.String() != "console.log('panel')" {
			t.Errorf("unexpected body %q", rr.Body.String())
		}
	})

	t.Run("unknown route falls back to index", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/accounts/settings", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if rr.Body.String() != "<html>panel</html>" {
			t.Errorf("unexpected body %q", rr.Body.String())
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
