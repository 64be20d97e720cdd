package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"

	"github.com/gramops/gramops/internal/models"
)

const (
	defaultBaseURL = "https://www.instagram.com"

	// webAppID is the application id the web API expects on every call.
	webAppID = "936619743392459"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client performs automation actions against the platform's web API using a
// captured session cookie. Remote and transport failures are normalized into
// failure ActionResults; the returned error is reserved for faults the client
// itself cannot classify and is nil on every normal path.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a platform client against the production endpoint.
func NewClient(logger *slog.Logger, timeout time.Duration) *Client {
	return NewClientWithBaseURL(defaultBaseURL, logger, timeout)
}

// NewClientWithBaseURL creates a platform client against a specific endpoint.
// Redirects are never followed: a redirect response is the platform's
// "session invalid" signal and must be observed, not chased.
func NewClientWithBaseURL(baseURL string, logger *slog.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// profileResponse is the payload of the profile lookup endpoint, reduced to
// the fields the client consumes.
type profileResponse struct {
	Data struct {
		User map[string]any `json:"user"`
	} `json:"data"`
	Status string `json:"status"`
}

// mutationResponse is the common shape of mutation endpoint payloads.
type mutationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CheckSession probes whether the session cookie is still valid. Only a
// plain 200 counts; a redirect to the login page or any error means the
// session has lapsed.
func (c *Client) CheckSession(ctx context.Context, cookie string) bool {
	_, status, err := c.get(ctx, "/accounts/edit/", cookie, nil)
	if err != nil {
		c.logger.Debug("session check request failed", "error", err)
		return false
	}
	return status == http.StatusOK
}

// Follow resolves the username to its numeric account id, then issues the
// follow mutation against that id.
func (c *Client) Follow(ctx context.Context, username, cookie string) (models.ActionResult, error) {
	accountID, err := c.resolveAccountID(ctx, username, cookie)
	if err != nil {
		return models.Failure(fmt.Sprintf("Failed to follow @%s: %v", username, err)), nil
	}

	if err := c.mutate(ctx, fmt.Sprintf("/api/v1/friendships/create/%s/", accountID), cookie, nil); err != nil {
		return models.Failure(fmt.Sprintf("Failed to follow @%s: %v", username, err)), nil
	}

	c.logger.Info("followed account", "username", username, "account_id", accountID)
	return models.Successf("Successfully followed @%s", username), nil
}

// Unfollow mirrors Follow with the inverse mutation endpoint.
func (c *Client) Unfollow(ctx context.Context, username, cookie string) (models.ActionResult, error) {
	accountID, err := c.resolveAccountID(ctx, username, cookie)
	if err != nil {
		return models.Failure(fmt.Sprintf("Failed to unfollow @%s: %v", username, err)), nil
	}

	if err := c.mutate(ctx, fmt.Sprintf("/api/v1/friendships/destroy/%s/", accountID), cookie, nil); err != nil {
		return models.Failure(fmt.Sprintf("Failed to unfollow @%s: %v", username, err)), nil
	}

	c.logger.Info("unfollowed account", "username", username, "account_id", accountID)
	return models.Successf("Successfully unfollowed @%s", username), nil
}

// Like derives the media id from the post URL and issues the like mutation.
func (c *Client) Like(ctx context.Context, postURL, cookie string) (models.ActionResult, error) {
	mediaID, err := MediaIDFromURL(postURL)
	if err != nil {
		return models.Failure(fmt.Sprintf("Failed to like post: %v", err)), nil
	}

	if err := c.mutate(ctx, fmt.Sprintf("/api/v1/web/likes/%s/like/", mediaID), cookie, nil); err != nil {
		return models.Failure(fmt.Sprintf("Failed to like post: %v", err)), nil
	}

	c.logger.Info("liked post", "media_id", mediaID)
	return models.Successf("Successfully liked post"), nil
}

// Unlike mirrors Like with the inverse mutation endpoint.
func (c *Client) Unlike(ctx context.Context, postURL, cookie string) (models.ActionResult, error) {
	mediaID, err := MediaIDFromURL(postURL)
	if err != nil {
		return models.Failure(fmt.Sprintf("Failed to unlike post: %v", err)), nil
	}

	if err := c.mutate(ctx, fmt.Sprintf("/api/v1/web/likes/%s/unlike/", mediaID), cookie, nil); err != nil {
		return models.Failure(fmt.Sprintf("Failed to unlike post: %v", err)), nil
	}

	c.logger.Info("unliked post", "media_id", mediaID)
	return models.Successf("Successfully unliked post"), nil
}

// Comment posts the given text as a comment on the post.
func (c *Client) Comment(ctx context.Context, postURL, text, cookie string) (models.ActionResult, error) {
	mediaID, err := MediaIDFromURL(postURL)
	if err != nil {
		return models.Failure(fmt.Sprintf("Failed to comment: %v", err)), nil
	}

	form := url.Values{"comment_text": {text}}
	if err := c.mutate(ctx, fmt.Sprintf("/api/v1/web/comments/%s/add/", mediaID), cookie, form); err != nil {
		return models.Failure(fmt.Sprintf("Failed to comment: %v", err)), nil
	}

	c.logger.Info("commented on post", "media_id", mediaID, "text_length", len(text))
	return models.Successf("Successfully posted comment"), nil
}

// DeleteComment removes a comment by its raw identifier. No media id
// derivation is needed for deletion.
func (c *Client) DeleteComment(ctx context.Context, commentID, cookie string) (models.ActionResult, error) {
	if err := c.mutate(ctx, fmt.Sprintf("/api/v1/web/comments/%s/delete/", commentID), cookie, nil); err != nil {
		return models.Failure(fmt.Sprintf("Failed to delete comment %s: %v", commentID, err)), nil
	}

	c.logger.Info("deleted comment", "comment_id", commentID)
	return models.Successf("Successfully deleted comment %s", commentID), nil
}

// FetchProfile retrieves the public profile payload for a username.
func (c *Client) FetchProfile(ctx context.Context, username, cookie string) (models.ActionResult, error) {
	profile, err := c.fetchProfile(ctx, username, cookie)
	if err != nil {
		return models.Failure(fmt.Sprintf("Failed to fetch profile @%s: %v", username, err)), nil
	}

	result := models.Successf("Fetched profile for @%s", username)
	result.Data = profile
	return result, nil
}

// resolveAccountID maps a username to the stable numeric account id the
// friendship endpoints expect.
func (c *Client) resolveAccountID(ctx context.Context, username, cookie string) (string, error) {
	profile, err := c.fetchProfile(ctx, username, cookie)
	if err != nil {
		return "", err
	}

	id, ok := profile["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("profile response for @%s has no account id", username)
	}
	return id, nil
}

func (c *Client) fetchProfile(ctx context.Context, username, cookie string) (map[string]any, error) {
	query := url.Values{"username": {username}}
	body, status, err := c.get(ctx, "/api/v1/users/web_profile_info/", cookie, query)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("profile lookup returned status %d", status)
	}

	var resp profileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed profile response: %w", err)
	}
	if resp.Data.User == nil {
		return nil, fmt.Errorf("profile response has no user payload")
	}

	return resp.Data.User, nil
}

// mutate performs a POST mutation and verifies the platform acknowledged it.
func (c *Client) mutate(ctx context.Context, path, cookie string, form url.Values) error {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, cookie)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("platform returned status %d", resp.StatusCode)
	}

	var mr mutationResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if mr.Status != "ok" {
		if mr.Message != "" {
			return fmt.Errorf("platform rejected the action: %s", mr.Message)
		}
		return fmt.Errorf("platform rejected the action (status %q)", mr.Status)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path, cookie string, query url.Values) ([]byte, int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, cookie)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request, cookie string) {
	req.Header.Set("Cookie", cookie)
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("X-IG-App-ID", webAppID)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if token := CSRFToken(cookie); token != "" {
		req.Header.Set("X-CSRFToken", token)
	}
}
