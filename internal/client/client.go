// Package client is a typed HTTP client for the kiegate query API. It
// satisfies the waitfor prober interfaces.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mattjoyce/kiegate/internal/conversation"
	"github.com/mattjoyce/kiegate/internal/model"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Status         int
	Message        string
	ConversationID string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("kiegate: HTTP %d", e.Status)
	}
	return fmt.Sprintf("kiegate: HTTP %d: %s", e.Status, e.Message)
}

// Client talks to one kiegate server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "client"))
	return c
}

func (c *Client) ListContainers(ctx context.Context) (*model.ContainerList, error) {
	var out model.ContainerList
	if err := c.get(ctx, "/server/containers", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetJobRequest(ctx context.Context, id int64) (*model.JobRequest, error) {
	var out model.JobRequest
	if err := c.get(ctx, "/server/jobs/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProcessInstance(ctx context.Context, containerID string, id int64) (*model.ProcessInstance, error) {
	path := "/server/containers/" + url.PathEscape(containerID) + "/processes/instances/" + strconv.FormatInt(id, 10)
	var out model.ProcessInstance
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FindProcessInstances(ctx context.Context, page, pageSize int) (*model.ProcessInstanceList, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	var out model.ProcessInstanceList
	if err := c.get(ctx, "/server/queries/processes/instances", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCaseInstances lists case instances. An empty owner lists every owner.
func (c *Client) GetCaseInstances(ctx context.Context, owner string, statuses []int, page, pageSize int) (*model.CaseInstanceList, error) {
	q := url.Values{}
	if owner != "" {
		q.Set("owner", owner)
	}
	for _, s := range statuses {
		q.Add("status", strconv.Itoa(s))
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	var out model.CaseInstanceList
	if err := c.get(ctx, "/server/queries/cases/instances", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("response received", "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &StatusError{
			Status:         resp.StatusCode,
			Message:        msg,
			ConversationID: resp.Header.Get(conversation.HeaderName),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
