package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gramops/gramops/internal/composer"
)

func TestSuggestCommentUnavailableWithoutKey(t *testing.T) {
	comp := composer.New(composer.Config{}, discardLogger())
	handler := NewComposeHandler(comp, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/compose-comment", strings.NewReader(`{"postDescription":"a sunset"}`))
	rr := httptest.NewRecorder()
	handler.SuggestComment(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestSuggestCommentRequiresPost(t *testing.T) {
	comp := composer.New(composer.Config{APIKey: "test-key", Model: "gpt-4o-mini"}, discardLogger())
	handler := NewComposeHandler(comp, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/compose-comment", strings.NewReader(`{"tone":"friendly"}`))
	rr := httptest.NewRecorder()
	handler.SuggestComment(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSuggestCommentRejectsNonPost(t *testing.T) {
	comp := composer.New(composer.Config{}, discardLogger())
	handler := NewComposeHandler(comp, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/compose-comment", nil)
	rr := httptest.NewRecorder()
	handler.SuggestComment(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
