package forum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is wrapped by every client call that receives HTTP 404.
var ErrNotFound = errors.New("not found")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/categories", "categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategoryByTitle(ctx context.Context, title string) (Category, error) {
	var category Category
	if err := c.getJSON(ctx, "/categories/"+url.PathEscape(title), "category", &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (c *Client) GetPostCountByCategoryTitle(ctx context.Context, title string) (int, error) {
	var count int
	if err := c.getJSON(ctx, "/categories/"+url.PathEscape(title)+"/posts/count", "post count", &count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetPostsByCategoryTitle lists one page of posts. page is zero-based and
// sort is a "<field>,<asc|desc>" token.
func (c *Client) GetPostsByCategoryTitle(ctx context.Context, title string, page, size int, sort string) ([]Post, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}

	q := make(url.Values)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if sort != "" {
		q.Set("sort", sort)
	}

	var posts []Post
	path := "/categories/" + url.PathEscape(title) + "/posts?" + q.Encode()
	if err := c.getJSON(ctx, path, "posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPostByID(ctx context.Context, id int64) (Post, error) {
	var post Post
	if err := c.getJSON(ctx, "/posts/"+strconv.FormatInt(id, 10), "post", &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (c *Client) getJSON(ctx context.Context, path, resource string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("get %s: %w", resource, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("get %s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
