package docuseal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

const (
	authHeader      = "X-Auth-Token"
	maxErrorBody    = 4 << 10
	defaultTimeout  = 15 * time.Second
	templatesPath   = "/templates/html"
	submissionsPath = "/submissions"
)

var errAPIKeyRequired = errors.New("docuseal api key is required")

// APIError is returned for any non-2xx provider response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docuseal: status %d: %s", e.StatusCode, e.Body)
}

// Client calls the DocuSeal REST API.
type Client struct {
	baseURL    string
	apiKey     string
	folder     string
	httpClient *http.Client
}

// NewClient builds a DocuSeal client from config.
func NewClient(ctx context.Context, cfg config.DocuSealConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     apiKey,
		folder:     cfg.FolderName,
		httpClient: &http.Client{Timeout: timeout},
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "base_url", c.baseURL), "docuseal client initialized")
	}
	return c, nil
}

// NewClientWithHTTP is used when the caller owns the transport (tests, proxies).
func NewClientWithHTTP(baseURL, apiKey, folder string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		folder:     folder,
		httpClient: httpClient,
	}
}

// Template is the provider's template registration.
type Template struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type createHTMLTemplateRequest struct {
	Name       string `json:"name"`
	HTML       string `json:"html"`
	FolderName string `json:"folder_name,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// CreateHTMLTemplate registers an HTML document containing field tags.
func (c *Client) CreateHTMLTemplate(ctx context.Context, name, html, externalID string) (*Template, error) {
	body := createHTMLTemplateRequest{
		Name:       name,
		HTML:       html,
		FolderName: c.folder,
		ExternalID: externalID,
	}
	var out Template
	if err := c.do(ctx, http.MethodPost, templatesPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submitter is one signer on a submission.
type Submitter struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type createSubmissionRequest struct {
	TemplateID int64       `json:"template_id"`
	SendEmail  bool        `json:"send_email"`
	Submitters []Submitter `json:"submitters"`
}

// SubmitterResult is the provider's view of a created submitter.
type SubmitterResult struct {
	ID           int64  `json:"id"`
	SubmissionID int64  `json:"submission_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

// CreateSubmission sends the template to the submitters for signature.
func (c *Client) CreateSubmission(ctx context.Context, templateID int64, submitters []Submitter) ([]SubmitterResult, error) {
	body := createSubmissionRequest{
		TemplateID: templateID,
		SendEmail:  true,
		Submitters: submitters,
	}
	var out []SubmitterResult
	if err := c.do(ctx, http.MethodPost, submissionsPath, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode docuseal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build docuseal request: %w", err)
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("docuseal %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode docuseal response: %w", err)
	}
	return nil
}
