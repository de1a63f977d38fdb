// Implements the Notion API client with request pacing.

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Notion API base URL.
	DefaultBaseURL = "https://api.notion.com/v1"
	// APIVersion is the pinned Notion API version.
	APIVersion = "2022-06-28"
	// RequestInterval is the minimum time between requests. It keeps
	// paginated queries under Notion's rate limits.
	RequestInterval = 200 * time.Millisecond
	// PageSize is the page size used for all paginated endpoints.
	PageSize = 100
)

// Client is a paced Notion API client.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Notion API client.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(RequestInterval), 1),
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// do performs an HTTP request, waiting for the pacing limiter first.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr Error
		if err := json.Unmarshal(respBody, &apiErr); err != nil {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		return nil, &apiErr
	}

	return respBody, nil
}

// GetPage retrieves a page by ID.
func (c *Client) GetPage(ctx context.Context, id string) (*Page, error) {
	data, err := c.do(ctx, http.MethodGet, "/pages/"+id, nil)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page response: %w", err)
	}
	return &page, nil
}

// GetDatabase retrieves a database by ID.
func (c *Client) GetDatabase(ctx context.Context, id string) (*Database, error) {
	data, err := c.do(ctx, http.MethodGet, "/databases/"+id, nil)
	if err != nil {
		return nil, err
	}

	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse database response: %w", err)
	}
	return &db, nil
}

// queryRequest is the request body for the database query endpoint.
type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size"`
}

// QueryDatabase queries one page of database rows.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, cursor string) (*QueryResponse, error) {
	req := queryRequest{StartCursor: cursor, PageSize: PageSize}

	data, err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", &req)
	if err != nil {
		return nil, err
	}

	var resp QueryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}
	return &resp, nil
}

// QueryDatabaseAll queries all rows of a database, following the cursor.
func (c *Client) QueryDatabaseAll(ctx context.Context, databaseID string) ([]Page, error) {
	var rows []Page
	var cursor string

	for {
		resp, err := c.QueryDatabase(ctx, databaseID, cursor)
		if err != nil {
			return nil, err
		}

		rows = append(rows, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}

	return rows, nil
}

// GetBlockChildren retrieves one page of a block's children.
func (c *Client) GetBlockChildren(ctx context.Context, blockID, cursor string) (*BlocksResponse, error) {
	path := fmt.Sprintf("/blocks/%s/children?page_size=%d", blockID, PageSize)
	if cursor != "" {
		path += "&start_cursor=" + cursor
	}

	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp BlocksResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse blocks response: %w", err)
	}
	return &resp, nil
}

// GetBlockChildrenAll retrieves all children of a block, following the cursor.
func (c *Client) GetBlockChildrenAll(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block
	var cursor string

	for {
		resp, err := c.GetBlockChildren(ctx, blockID, cursor)
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}

	return blocks, nil
}

// GetBlockChildrenRecursive retrieves all children of a block recursively.
// Nested children are stored in each block's Children field.
func (c *Client) GetBlockChildrenRecursive(ctx context.Context, blockID string) ([]Block, error) {
	blocks, err := c.GetBlockChildrenAll(ctx, blockID)
	if err != nil {
		return nil, err
	}

	for i := range blocks {
		// Child pages and databases are exported separately; descending
		// into them would pull whole subtrees into this page's body.
		if blocks[i].Type == "child_page" || blocks[i].Type == "child_database" {
			continue
		}
		if blocks[i].HasChildren {
			children, err := c.GetBlockChildrenRecursive(ctx, blocks[i].ID)
			if err != nil {
				return nil, err
			}
			blocks[i].Children = children
		}
	}

	return blocks, nil
}
