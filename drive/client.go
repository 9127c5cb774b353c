package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/pkg/interfaces"
)

// DefaultBaseURL is the Google Drive v3 API root.
const DefaultBaseURL = "https://www.googleapis.com/drive/v3"

const exportMIMEType = "text/plain"

// unknownErrorMessage is reported when an upstream failure carries no
// parseable error body.
const unknownErrorMessage = "Unknown error"

// Client talks to the Google Drive v3 REST API. Authentication is the
// injected http.Client's concern; pass a client produced by your oauth2 or
// service-account token source.
type Client struct {
	http    *http.Client
	baseURL string
	logger  interfaces.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a non-default API root, used by tests and
// proxies.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithLogger attaches a logger to the client.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a Drive client over the supplied HTTP client.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		http:    httpClient,
		baseURL: DefaultBaseURL,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fileListResponse struct {
	Files         []File `json:"files"`
	NextPageToken string `json:"nextPageToken"`
}

// ListFolder lists the markdown documents inside folderID, following
// pagination until the listing is exhausted.
func (c *Client) ListFolder(ctx context.Context, folderID string) ([]File, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, errors.New("drive: folder id is required")
	}

	var (
		files     []File
		pageToken string
	)
	for {
		page, err := c.listPage(ctx, folderID, pageToken)
		if err != nil {
			return nil, err
		}
		files = append(files, page.Files...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	c.logger.Debug("listed drive folder", "folder_id", folderID, "files", len(files))
	return files, nil
}

func (c *Client) listPage(ctx context.Context, folderID, pageToken string) (*fileListResponse, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("'%s' in parents and trashed = false", folderID))
	query.Set("fields", "nextPageToken, files(id, name)")
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	body, err := c.get(ctx, "/files?"+query.Encode(), folderID)
	if err != nil {
		return nil, err
	}

	var page fileListResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("drive: decode listing: %w", err)
	}
	return &page, nil
}

// Read exports the document as plain text and returns its content.
func (c *Client) Read(ctx context.Context, fileID string) (string, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return "", errors.New("drive: file id is required")
	}

	path := fmt.Sprintf("/files/%s/export?mimeType=%s", url.PathEscape(fileID), url.QueryEscape(exportMIMEType))
	body, err := c.get(ctx, path, fileID)
	if err != nil {
		return "", err
	}

	c.logger.Debug("read drive file", "file_id", fileID, "bytes", len(body))
	return string(body), nil
}

func (c *Client) get(ctx context.Context, path, fileID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("drive: build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{FileID: fileID, Message: err.Error()}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &APIError{FileID: fileID, StatusCode: res.StatusCode, Message: err.Error()}
	}

	if res.StatusCode != http.StatusOK {
		return nil, c.classifyStatus(fileID, res.StatusCode, body)
	}
	return body, nil
}

// classifyStatus maps upstream HTTP statuses onto the package error
// taxonomy: 404 means the document is gone, 403 means the credentials cannot
// read it, anything else is a generic API failure carrying the upstream
// message.
func (c *Client) classifyStatus(fileID string, status int, body []byte) error {
	switch status {
	case http.StatusNotFound:
		return &NotFoundError{FileID: fileID}
	case http.StatusForbidden:
		return &PermissionError{FileID: fileID}
	default:
		return &APIError{
			FileID:     fileID,
			StatusCode: status,
			Message:    upstreamMessage(body),
		}
	}
}

// upstreamMessage pulls error.message out of a Drive error body, falling
// back to a fixed string when the body is not in the documented shape.
func upstreamMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
	}
	return unknownErrorMessage
}
