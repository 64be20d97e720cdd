package automation

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/gramops/gramops/internal/instagram"
	"github.com/gramops/gramops/internal/models"
)

// Client is the remote action surface the dispatcher drives. Implementations
// normalize remote and transport failures into failure ActionResults; the
// dispatcher additionally treats any returned error as a failed outcome so a
// misbehaving implementation can never leave an activity entry pending.
type Client interface {
	Follow(ctx context.Context, username, cookie string) (models.ActionResult, error)
	Unfollow(ctx context.Context, username, cookie string) (models.ActionResult, error)
	Like(ctx context.Context, postURL, cookie string) (models.ActionResult, error)
	Unlike(ctx context.Context, postURL, cookie string) (models.ActionResult, error)
	Comment(ctx context.Context, postURL, text, cookie string) (models.ActionResult, error)
	DeleteComment(ctx context.Context, commentID, cookie string) (models.ActionResult, error)
	FetchProfile(ctx context.Context, username, cookie string) (models.ActionResult, error)
}

// CredentialStore supplies the stored session credentials for a user. The
// dispatcher always uses the first credential returned; stores must order
// deterministically (oldest first).
type CredentialStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Credential, error)
}

// ActivityStore records dispatch attempts. UpdateStatus reports whether the
// entry existed; an absent id is a latent inconsistency, not a fatal error.
type ActivityStore interface {
	Create(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error)
	UpdateStatus(ctx context.Context, id int64, status models.ActivityStatus, message string) (bool, error)
}

// ActionRecorder counts dispatched actions for metrics. A nil recorder
// disables recording.
type ActionRecorder interface {
	RecordAction(kind string, success bool)
}

// actionSpec describes how one action kind is validated, rendered and
// invoked. The single table replaces a per-action code path for each kind.
type actionSpec struct {
	validate func(models.ActionRequest) error
	target   func(models.ActionRequest) string
	invoke   func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error)
}

var actionTable = map[models.ActionKind]actionSpec{
	models.ActionFollow: {
		validate: requireUsername,
		target:   usernameTarget,
		invoke: func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error) {
			return c.Follow(ctx, req.Username, cookie)
		},
	},
	models.ActionUnfollow: {
		validate: requireUsername,
		target:   usernameTarget,
		invoke: func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error) {
			return c.Unfollow(ctx, req.Username, cookie)
		},
	},
	models.ActionLike: {
		validate: requirePostURL,
		target:   postURLTarget,
		invoke: func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error) {
			return c.Like(ctx, req.PostURL, cookie)
		},
	},
	models.ActionUnlike: {
		validate: requirePostURL,
		target:   postURLTarget,
		invoke: func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error) {
			return c.Unlike(ctx, req.PostURL, cookie)
		},
	},
	models.ActionComment: {
		validate: func(req models.ActionRequest) error {
			if err := requirePostURL(req); err != nil {
				return err
			}
			if req.CommentText == "" {
				return fmt.Errorf("commentText is required for comment actions")
			}
			return nil
		},
		target: postURLTarget,
		invoke: func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error) {
			return c.Comment(ctx, req.PostURL, req.CommentText, cookie)
		},
	},
	models.ActionDeleteComment: {
		validate: func(req models.ActionRequest) error {
			if req.CommentID == "" {
				return fmt.Errorf("commentId is required for delete_comment actions")
			}
			return nil
		},
		target: func(req models.ActionRequest) string { return "comment " + req.CommentID },
		invoke: func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error) {
			return c.DeleteComment(ctx, req.CommentID, cookie)
		},
	},
	models.ActionProfileInfo: {
		validate: requireUsername,
		target:   usernameTarget,
		invoke: func(ctx context.Context, c Client, req models.ActionRequest, cookie string) (models.ActionResult, error) {
			return c.FetchProfile(ctx, req.Username, cookie)
		},
	},
}

func requireUsername(req models.ActionRequest) error {
	if req.Username == "" {
		return fmt.Errorf("username is required for %s actions", req.Kind)
	}
	return nil
}

// requirePostURL also rejects URLs without a recognizable post segment so
// malformed targets fail before any log entry is written.
func requirePostURL(req models.ActionRequest) error {
	if req.PostURL == "" {
		return fmt.Errorf("postUrl is required for %s actions", req.Kind)
	}
	if _, err := instagram.ShortcodeFromURL(req.PostURL); err != nil {
		return err
	}
	return nil
}

func usernameTarget(req models.ActionRequest) string { return "@" + req.Username }
func postURLTarget(req models.ActionRequest) string  { return req.PostURL }

// Dispatcher maps an ActionRequest to exactly one client call and tracks the
// attempt through the activity log's pending to terminal lifecycle.
type Dispatcher struct {
	client      Client
	credentials CredentialStore
	activities  ActivityStore
	recorder    ActionRecorder
	logger      *slog.Logger
}

// NewDispatcher wires the dispatcher to its collaborators. recorder may be nil.
func NewDispatcher(client Client, credentials CredentialStore, activities ActivityStore, recorder ActionRecorder, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client:      client,
		credentials: credentials,
		activities:  activities,
		recorder:    recorder,
		logger:      logger,
	}
}

// Dispatch runs a single automation action for the user. Every dispatched
// action that passes validation and credential resolution produces exactly
// one activity entry whose terminal status matches the returned outcome.
// Errors never escape as raised faults; callers always get a structured
// ActionResult.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, req models.ActionRequest) models.ActionResult {
	spec, ok := actionTable[req.Kind]
	if !ok {
		return models.Failure("Unknown automation type")
	}

	if err := spec.validate(req); err != nil {
		return models.Failure(err.Error())
	}

	creds, err := d.credentials.ListByUser(ctx, userID)
	if err != nil {
		d.logger.Error("failed to load credentials", "user_id", userID, "error", err)
		return models.Failure("Failed to load session credentials")
	}
	if len(creds) == 0 {
		return models.Failure("No session credential available. Add an account cookie first.")
	}
	cred := creds[0]

	entry, err := d.activities.Create(ctx, models.ActivityLog{
		UserID: userID,
		Action: req.Kind,
		Target: spec.target(req),
		Status: models.ActivityPending,
	})
	if err != nil {
		d.logger.Error("failed to create activity entry", "user_id", userID, "action", req.Kind, "error", err)
		return models.Failure("Failed to record activity")
	}

	result, err := spec.invoke(ctx, d.client, req, cred.Cookie)
	if err != nil {
		// The entry still gets its terminal update below.
		result = models.Failure(err.Error())
	}

	status := models.ActivityFailed
	if result.Success {
		status = models.ActivitySuccess
	}

	found, err := d.activities.UpdateStatus(ctx, entry.ID, status, result.Message)
	if err != nil {
		d.logger.Error("failed to update activity entry", "id", entry.ID, "error", err)
	} else if !found {
		d.logger.Warn("activity entry missing at terminal update", "id", entry.ID)
	}

	if d.recorder != nil {
		d.recorder.RecordAction(string(req.Kind), result.Success)
	}

	d.logger.Info("action dispatched",
		"user_id", userID,
		"action", req.Kind,
		"target", entry.Target,
		"status", status)

	return result
}
