package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const booksPath = "/api/books"

// Client calls the Catalog Service REST API. It never retries; callers control
// cancellation through the context of each call.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, booksPath, nil, http.StatusOK, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Book, error) {
	var b Book
	if err := c.do(ctx, http.MethodGet, bookPath(id), nil, http.StatusOK, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create posts b and returns the stored book with its assigned id.
func (c *Client) Create(ctx context.Context, b Book) (*Book, error) {
	var out Book
	if err := c.do(ctx, http.MethodPost, booksPath, &b, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the book id with b. b.BookID is forced to id.
func (c *Client) Update(ctx context.Context, id int64, b Book) error {
	b.BookID = id
	return c.do(ctx, http.MethodPut, bookPath(id), &b, http.StatusNoContent, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, bookPath(id), nil, http.StatusNoContent, nil)
}

func bookPath(id int64) string { return booksPath + "/" + strconv.FormatInt(id, 10) }

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var er ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &er); err == nil {
		apiErr.Code = er.Code
		apiErr.Message = er.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if resp.StatusCode >= 500 {
		return errors.Join(ErrUnavailable, apiErr)
	}
	return apiErr
}
