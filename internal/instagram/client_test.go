package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"
)

const testCookie = "csrftoken=abc123; sessionid=xyz"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewClientWithBaseURL(srv.URL, logger, 5*time.Second), srv
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestCheckSessionValid(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts/edit/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Cookie"); got != testCookie {
			t.Errorf("cookie header = %q, want %q", got, testCookie)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if !client.CheckSession(context.Background(), testCookie) {
		t.Error("expected session to be reported valid")
	}
}

func TestCheckSessionRedirectMeansLoggedOut(t *testing.T) {
	loginHits := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/accounts/login/" {
			loginHits++
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Location", "/accounts/login/")
		w.WriteHeader(http.StatusFound)
	}))

	if client.CheckSession(context.Background(), testCookie) {
		t.Error("expected redirect to be treated as logged out")
	}
	if loginHits != 0 {
		t.Errorf("client followed the redirect %d times; it must not", loginHits)
	}
}

func TestFollowResolvesAccountThenMutates(t *testing.T) {
	var mutationPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/users/web_profile_info/":
			if got := r.URL.Query().Get("username"); got != "alice" {
				t.Errorf("username query = %q, want alice", got)
			}
			w.Write([]byte(`{"data":{"user":{"id":"55","username":"alice"}},"status":"ok"}`))
		case "/api/v1/friendships/create/55/":
			mutationPath = r.URL.Path
			if got := r.Header.Get("X-CSRFToken"); got != "abc123" {
				t.Errorf("csrf header = %q, want abc123", got)
			}
			w.Write([]byte(`{"status":"ok"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	result, err := client.Follow(context.Background(), "alice", testCookie)
	if err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got failure: %s", result.Message)
	}
	if mutationPath == "" {
		t.Error("follow mutation was never issued")
	}
}

func TestFollowShortCircuitsWhenResolutionFails(t *testing.T) {
	mutations := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/users/web_profile_info/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		mutations++
		w.Write([]byte(`{"status":"ok"}`))
	}))

	result, err := client.Follow(context.Background(), "ghost", testCookie)
	if err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}
	if result.Success {
		t.Error("expected failure when resolution fails")
	}
	if mutations != 0 {
		t.Errorf("mutation issued despite failed resolution (%d calls)", mutations)
	}
}

func TestFollowFailsWhenProfileHasNoID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"username":"alice"}},"status":"ok"}`))
	}))

	result, err := client.Follow(context.Background(), "alice", testCookie)
	if err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}
	if result.Success {
		t.Error("expected failure when profile payload has no id")
	}
}

func TestLikeDerivesMediaID(t *testing.T) {
	requested := ""
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(`{"status":"ok"}`))
	}))

	result, err := client.Like(context.Background(), "https://example.com/p/ABC123/", testCookie)
	if err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if requested != "/api/v1/web/likes/17522103/like/" {
		t.Errorf("like endpoint = %s, want /api/v1/web/likes/17522103/like/", requested)
	}
}

func TestLikeFailsFastOnMalformedURL(t *testing.T) {
	hits := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))

	result, err := client.Like(context.Background(), "not-a-valid-url", testCookie)
	if err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if result.Success {
		t.Error("expected failure for malformed URL")
	}
	if hits != 0 {
		t.Errorf("network call issued for malformed URL (%d hits)", hits)
	}
}

func TestUnlikeRejectedByPlatform(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"media not found"}`))
	}))

	result, err := client.Unlike(context.Background(), "https://example.com/p/ABC123/", testCookie)
	if err != nil {
		t.Fatalf("Unlike returned error: %v", err)
	}
	if result.Success {
		t.Error("expected failure when platform rejects the action")
	}
}

func TestCommentSendsText(t *testing.T) {
	var gotText string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/web/comments/17522103/add/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		gotText = r.PostForm.Get("comment_text")
		w.Write([]byte(`{"status":"ok"}`))
	}))

	result, err := client.Comment(context.Background(), "https://example.com/p/ABC123/", "great shot", testCookie)
	if err != nil {
		t.Fatalf("Comment returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if gotText != "great shot" {
		t.Errorf("comment_text = %q, want %q", gotText, "great shot")
	}
}

func TestDeleteCommentUsesRawID(t *testing.T) {
	requested := ""
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(`{"status":"ok"}`))
	}))

	result, err := client.DeleteComment(context.Background(), "c-901", testCookie)
	if err != nil {
		t.Fatalf("DeleteComment returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if requested != "/api/v1/web/comments/c-901/delete/" {
		t.Errorf("delete endpoint = %s, want /api/v1/web/comments/c-901/delete/", requested)
	}
}

func TestFetchProfileReturnsPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"id":"55","username":"alice","follower_count":1200}},"status":"ok"}`))
	}))

	result, err := client.FetchProfile(context.Background(), "alice", testCookie)
	if err != nil {
		t.Fatalf("FetchProfile returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if result.Data["username"] != "alice" {
		t.Errorf("data username = %v, want alice", result.Data["username"])
	}
	if result.Data["id"] != "55" {
		t.Errorf("data id = %v, want 55", result.Data["id"])
	}
}

func TestTransportFaultBecomesFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	client := NewClientWithBaseURL(srv.URL, logger, time.Second)

	result, err := client.Like(context.Background(), "https://example.com/p/ABC123/", testCookie)
	if err != nil {
		t.Fatalf("transport fault escaped as error: %v", err)
	}
	if result.Success {
		t.Error("expected failure result for transport fault")
	}
	if result.Message == "" {
		t.Error("expected failure message to carry the underlying error text")
	}
}
