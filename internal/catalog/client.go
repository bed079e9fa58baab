package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher defines the read half of the catalog API. It is implemented by
// *Client and can be swapped out in tests.
type Fetcher interface {
	FetchFiles(ctx context.Context, query url.Values) (FileListPage, error)
	FetchFileTypes(ctx context.Context) ([]string, error)
	FetchStats(ctx context.Context) (*Stats, error)
	FetchSavings(ctx context.Context) (*Savings, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the vault catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8000"
	defaultUserAgent = "vaultview/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchFiles retrieves one page of the catalog using the encoded filter query.
func (c *Client) FetchFiles(ctx context.Context, query url.Values) (FileListPage, error) {
	if c == nil {
		return FileListPage{}, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/files/", RawQuery: query.Encode()}
	var payload FileListPage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return FileListPage{}, err
	}
	return payload, nil
}

// FetchFileTypes retrieves the known file type strings for the filter dropdown.
func (c *Client) FetchFileTypes(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/files/file_types/", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchStats retrieves the aggregate storage statistics.
func (c *Client) FetchStats(ctx context.Context) (*Stats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Stats
	if err := c.do(ctx, http.MethodGet, "/files/stats/", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSavings retrieves the total deduplication savings.
func (c *Client) FetchSavings(ctx context.Context) (*Savings, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Savings
	if err := c.do(ctx, http.MethodGet, "/files/savings/", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Upload sends the file at path as a multipart request. The server replies
// with the stored (or pre-existing, deduplicated) catalog entry.
func (c *Client) Upload(ctx context.Context, path string) (*UploadResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload source: %w", err)
	}
	defer func() { _ = f.Close() }()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: "/files/"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api /files/ returned status %d", resp.StatusCode)
	}
	var payload UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}

// Delete removes one reference to the file; the server only deletes content
// when the last reference goes away.
func (c *Client) Delete(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("file id required")
	}
	rel := &url.URL{Path: "/files/" + id + "/"}
	return c.doURL(ctx, http.MethodDelete, rel, nil, nil)
}

// UpdateTags replaces the tag set on a file.
func (c *Client) UpdateTags(ctx context.Context, id string, tags []string) (*File, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("file id required")
	}
	body := struct {
		Tags []string `json:"tags"`
	}{Tags: tags}
	rel := &url.URL{Path: "/files/" + id + "/"}
	var payload File
	if err := c.doURL(ctx, http.MethodPatch, rel, body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// BulkDelete removes one reference from each of the listed files.
func (c *Client) BulkDelete(ctx context.Context, ids []string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return fmt.Errorf("file ids required")
	}
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	rel := &url.URL{Path: "/files/bulk_delete/"}
	return c.doURL(ctx, http.MethodPost, rel, body, nil)
}

// BulkTag adds a tag to each of the listed files.
func (c *Client) BulkTag(ctx context.Context, ids []string, tag string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return fmt.Errorf("file ids required")
	}
	if strings.TrimSpace(tag) == "" {
		return fmt.Errorf("tag required")
	}
	body := struct {
		IDs []string `json:"ids"`
		Tag string   `json:"tag"`
	}{IDs: ids, Tag: tag}
	rel := &url.URL{Path: "/files/bulk_tag/"}
	return c.doURL(ctx, http.MethodPost, rel, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, nil, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body any, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
