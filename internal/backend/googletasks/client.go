// Package googletasks implements service.Exporter using the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = tasks.TasksScope
)

// ErrAuth is returned when the API rejects the stored token.
var ErrAuth = &service.AuthError{Msg: "token expired or revoked (run: taskpad login)"}

// Client implements service.Exporter using Google Tasks API.
type Client struct {
	svc *tasks.Service
	log *log.Helper
}

// OAuthConfig reads the OAuth client credentials from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.OAuthClientFile, err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// Open checks that credentials exist and creates a client.
// Missing files are reported as *service.AuthError.
func Open(ctx context.Context, cfg *config.Config, logger log.Logger) (*Client, error) {
	if !cfg.HasOAuthClient() {
		return nil, &service.AuthError{Msg: fmt.Sprintf("%s not found in %s", config.OAuthClientFile, cfg.Dir)}
	}
	if !cfg.HasToken() {
		return nil, &service.AuthError{Msg: "not logged in (run: taskpad login)"}
	}

	c, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, &service.AuthError{Msg: err.Error()}
	}
	return c, nil
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, logger log.Logger) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.TokenFile, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.TokenFile, err)
	}

	// token source refreshes on demand
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	return NewWithHTTPClient(ctx, httpClient, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// Extra options (such as option.WithEndpoint) are passed to the API service.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, logger log.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)

	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		svc: svc,
		log: log.NewHelper(log.With(logger, "module", "googletasks")),
	}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, wrapError(err)
	}

	return service.TaskList{
		ID:        DefaultListID,
		Title:     list.Title,
		IsDefault: true,
	}, nil
}

// ListLists returns all task lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	// the default list is only recognisable by its real ID
	defaultList, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	var result []service.TaskList
	err = c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			isDefault := list.Id == defaultList.Id
			id := list.Id
			if isDefault {
				id = DefaultListID
			}
			result = append(result, service.TaskList{
				ID:        id,
				Title:     list.Title,
				IsDefault: isDefault,
			})
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return result, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := c.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return service.MatchList(lists, name)
}

// CreateList creates a new task list.
func (c *Client) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: name}).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, wrapError(err)
	}

	c.log.Debugw("msg", "list created", "id", list.Id, "title", list.Title)
	return service.TaskList{ID: list.Id, Title: list.Title}, nil
}

// InsertTasks creates tasks in the specified list.
// The API puts a task without a predecessor first, so each task is chained
// after the previous one to keep the exported order.
func (c *Client) InsertTasks(ctx context.Context, listID string, items []service.Task) (int, error) {
	previous := ""
	for i, task := range items {
		id, err := c.insertTask(ctx, listID, previous, task)
		if err != nil {
			return i, err
		}
		previous = id
	}
	return len(items), nil
}

func (c *Client) insertTask(ctx context.Context, listID, previous string, task service.Task) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	status := task.Status
	if status == "" {
		status = service.StatusNeedsAction
	}

	call := c.svc.Tasks.Insert(listID, &tasks.Task{
		Title:  task.Title,
		Status: status,
	})
	if previous != "" {
		call = call.Previous(previous)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}

	c.log.Debugw("msg", "task inserted", "list", listID, "id", created.Id, "previous", previous)
	return created.Id, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return ErrAuth
	}

	if strings.Contains(errStr, "404") {
		return service.ErrNotFound
	}

	return err
}
