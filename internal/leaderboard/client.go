package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned by Client when the server answers with a non-2xx code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return "leaderboard: unexpected status: " + http.StatusText(e.Code) + ": " + e.Message
	}
	return "leaderboard: unexpected status: " + http.StatusText(e.Code)
}

// Client talks to a leaderboard server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL
// (for example "https://example.org/api").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 4 * time.Second,
		},
	}
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// Top fetches the current board. A limit of zero asks for the server default.
func (c *Client) Top(ctx context.Context, limit int) (Board, error) {
	endpoint := c.baseURL + "/leaderboard"
	if limit > 0 {
		endpoint += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Board{}, err
	}

	var resp Response
	if err := c.do(req, &resp); err != nil {
		return Board{}, err
	}
	return Board{Scores: resp.Scores, DaysUntilReset: resp.DaysUntilReset}, nil
}

// Submit posts a score and returns the rank the server assigned.
func (c *Client) Submit(ctx context.Context, name string, score int) (Result, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return Result{}, err
	}
	payload, err := json.Marshal(SubmitRequest{Name: name, Score: score})
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leaderboard", bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp Response
	if err := c.do(req, &resp); err != nil {
		return Result{}, err
	}
	return Result{
		Entry: Entry{Name: name, Score: score},
		Rank:  resp.Rank,
		Board: Board{Scores: resp.Scores, DaysUntilReset: resp.DaysUntilReset},
	}, nil
}

func (c *Client) do(req *http.Request, out *Response) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &StatusError{Code: resp.StatusCode, Message: body.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leaderboard: bad response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("leaderboard: server reported failure")
	}
	return nil
}
