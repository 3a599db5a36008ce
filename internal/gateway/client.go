// Package gateway is the HTTP client for the remote NoteNest persistence
// service. It speaks the service's wire contract and translates records
// into core models on ingestion.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/notenest/notenest/internal/store"
	"github.com/notenest/notenest/pkg/icons"
)

// ErrGateway wraps every transport or remote failure. Callers treat the
// operation as failed with no partial effect and do not retry.
var ErrGateway = errors.New("gateway")

// originTag identifies this client on smart-note requests.
const originTag = "notenest-go"

// NoteRecord is a note as the remote service represents it.
type NoteRecord struct {
	ID         string    `json:"_id"`
	OwnerID    string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Archived   bool      `json:"archived"`
	IsReminder bool      `json:"is_reminder"`
}

// CategoryRecord is a category as the remote service represents it.
type CategoryRecord struct {
	ID          string `json:"_id"`
	OwnerID     string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ColorCode   string `json:"color_code,omitempty"`
}

// SummaryRecord is one row of the remote analytics aggregation.
type SummaryRecord struct {
	CategoryName string `json:"category_name"`
	NoteCount    int    `json:"note_count"`
	ColorCode    string `json:"color_code,omitempty"`
}

// ToNote maps a remote record into the core model. The remote contract
// carries no icon, so the default token is substituted; updated_at is the
// display timestamp.
func (r NoteRecord) ToNote() store.Note {
	return store.Note{
		ID:         r.ID,
		Content:    r.Content,
		CategoryID: r.CategoryID,
		CreatedAt:  r.UpdatedAt,
		Icon:       icons.Default,
		Tags:       r.Tags,
	}
}

// ToCategory maps a remote record into the core model.
func (r CategoryRecord) ToCategory() store.Category {
	return store.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Color:       r.ColorCode,
	}
}

// Client talks to one owner's slice of the remote service.
type Client struct {
	baseURL string
	ownerID string
	http    *http.Client
}

// New creates a client for the service at baseURL, acting as ownerID.
func New(baseURL, ownerID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ownerID: ownerID,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListNotes fetches the owner's notes, newest first.
func (c *Client) ListNotes(ctx context.Context, archived bool) ([]NoteRecord, error) {
	var out []NoteRecord
	path := fmt.Sprintf("/notes/%s?archived=%t", url.PathEscape(c.ownerID), archived)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSmartNote submits raw content for server-side classification.
func (c *Client) CreateSmartNote(ctx context.Context, content string) (NoteRecord, error) {
	body := map[string]string{
		"user_id": c.ownerID,
		"content": content,
		"llm_ref": originTag,
	}
	var out NoteRecord
	if err := c.do(ctx, http.MethodPost, "/smart-notes/", body, &out); err != nil {
		return NoteRecord{}, err
	}
	return out, nil
}

// UpdateNote replaces a note's content and category.
func (c *Client) UpdateNote(ctx context.Context, noteID, content, categoryID string) (NoteRecord, error) {
	body := map[string]string{
		"content":     content,
		"category_id": categoryID,
	}
	var out NoteRecord
	if err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(noteID), body, &out); err != nil {
		return NoteRecord{}, err
	}
	return out, nil
}

// ArchiveNote marks a note archived.
func (c *Client) ArchiveNote(ctx context.Context, noteID string) (NoteRecord, error) {
	path := fmt.Sprintf("/notes/%s/archive?user_id=%s", url.PathEscape(noteID), url.QueryEscape(c.ownerID))
	var out NoteRecord
	if err := c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return NoteRecord{}, err
	}
	return out, nil
}

// DeleteNote removes a note remotely.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(noteID), nil, nil)
}

// ListCategories fetches the owner's categories in display order.
func (c *Client) ListCategories(ctx context.Context) ([]CategoryRecord, error) {
	var out []CategoryRecord
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(c.ownerID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory creates a category remotely.
func (c *Client) CreateCategory(ctx context.Context, name, description, colorCode string) (CategoryRecord, error) {
	body := map[string]string{
		"user_id":     c.ownerID,
		"name":        name,
		"description": description,
		"color_code":  colorCode,
	}
	var out CategoryRecord
	if err := c.do(ctx, http.MethodPost, "/categories/", body, &out); err != nil {
		return CategoryRecord{}, err
	}
	return out, nil
}

// DeleteCategory removes a category remotely.
func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	path := fmt.Sprintf("/categories/%s?user_id=%s", url.PathEscape(categoryID), url.QueryEscape(c.ownerID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// AnalyticsSummary fetches the per-category note counts.
func (c *Client) AnalyticsSummary(ctx context.Context) ([]SummaryRecord, error) {
	var out []SummaryRecord
	if err := c.do(ctx, http.MethodGet, "/analytics/"+url.PathEscape(c.ownerID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues one request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrGateway, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrGateway, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrGateway, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: status %d", ErrGateway, method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrGateway, err)
		}
	}
	return nil
}
