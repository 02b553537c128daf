// Package client is the typed data-access wrapper over the project API.
// Unlike the usual fetch-and-swallow helpers, every operation returns a
// typed error so callers can tell "empty" from "failed".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jcallahan/portfolio-site-backend/models"
)

const defaultTimeout = 30 * time.Second

// Client manages communication with the project API.
type Client struct {
	httpClient *http.Client

	// Base URL for API requests, injected at construction. Must include
	// scheme and host.
	BaseURL *url.URL

	logger zerolog.Logger
}

// New returns a new project API client for the given base origin.
func New(baseURLStr string) (*Client, error) {
	if strings.TrimSpace(baseURLStr) == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	parsedBaseURL, err := url.ParseRequestURI(baseURLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if parsedBaseURL.Scheme == "" || parsedBaseURL.Host == "" {
		return nil, fmt.Errorf("baseURL must include scheme and host")
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		BaseURL: parsedBaseURL,
		logger:  log.With().Str("component", "projectClient").Logger(),
	}, nil
}

// APIError represents a non-success response from the project API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: status %d, message: %s", e.StatusCode, e.Message)
}

// ErrNotFound is returned when a project is not found (HTTP 404).
var ErrNotFound = &APIError{StatusCode: http.StatusNotFound, Message: "project not found"}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	relURL, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse path: %w", err)
	}

	fullURL := c.BaseURL.ResolveReference(relURL)

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) doRequest(req *http.Request, v interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", req.URL.String()).Msg("request failed")
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       respBodyBytes,
		}
		if len(respBodyBytes) > 0 && len(respBodyBytes) < 512 {
			apiErr.Message = string(respBodyBytes)
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.logger.Error().Int("status", resp.StatusCode).Str("url", req.URL.String()).Msg("non-success response")
		return apiErr
	}

	if v != nil {
		if err := json.Unmarshal(respBodyBytes, v); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}

	return nil
}

// ListProjects returns every project, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/projects", nil)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := c.doRequest(req, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListFeaturedProjects returns the projects with the featured flag set.
func (c *Client) ListFeaturedProjects(ctx context.Context) ([]models.Project, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/projects/featured", nil)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := c.doRequest(req, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project by ID. A missing project is
// ErrNotFound; any other failure carries its own error.
func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := c.doRequest(req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a new project and returns the created record.
func (c *Client) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/projects", input)
	if err != nil {
		return nil, err
	}

	var created models.Project
	if err := c.doRequest(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject overwrites every field of an existing project and returns
// the updated record.
func (c *Client) UpdateProject(ctx context.Context, id string, input models.ProjectInput) (*models.Project, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), input)
	if err != nil {
		return nil, err
	}

	var updated models.Project
	if err := c.doRequest(req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject permanently removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	return c.doRequest(req, nil)
}

// FilterByCategory returns the projects whose category matches exactly.
// Pure and synchronous; operates on an already-fetched list.
func FilterByCategory(projects []models.Project, category string) []models.Project {
	var filtered []models.Project
	for _, p := range projects {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
