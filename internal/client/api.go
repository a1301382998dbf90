// Package client provides an HTTP client for the notehub API together with
// on-disk session storage for the REPL client.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mkraev/notehub/internal/models"
)

// Client talks to the notehub HTTP API. The zero value is not usable; use New.
type Client struct {
	http    *http.Client
	baseURL string

	// Token is the bearer token attached to protected requests. Login sets
	// it; callers may also restore it from a Session file.
	Token string
}

// New returns a Client for the API at baseURL. A nil httpClient falls back
// to http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, baseURL: baseURL}
}

// apiError mirrors the server's failure envelope.
type apiError struct {
	Error string `json:"error"`
}

// Register creates an account and returns its id.
func (c *Client) Register(email, password string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do("POST", "/api/auth/signup", map[string]string{
		"email": email, "password": password,
	}, &out)
	return out.ID, err
}

// Login authenticates and stores the returned session token on the client.
func (c *Client) Login(email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do("POST", "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &out); err != nil {
		return err
	}
	c.Token = out.Token
	return nil
}

// CreateNote stores a new note owned by the logged-in account.
func (c *Client) CreateNote(title, content string) (*models.Note, error) {
	var note models.Note
	err := c.do("POST", "/api/notes", map[string]string{
		"title": title, "content": content,
	}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns every note the account owns or has been granted.
func (c *Client) ListNotes() ([]models.Note, error) {
	var notes []models.Note
	err := c.do("GET", "/api/notes", nil, &notes)
	return notes, err
}

// GetNote fetches a single note by id.
func (c *Client) GetNote(id string) (*models.Note, error) {
	var note models.Note
	if err := c.do("GET", "/api/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote applies a partial update; nil fields are left unchanged.
func (c *Client) UpdateNote(id string, title, content *string) (*models.Note, error) {
	var note models.Note
	err := c.do("PUT", "/api/notes/"+url.PathEscape(id), models.NoteUpdate{
		Title: title, Content: content,
	}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a note by id.
func (c *Client) DeleteNote(id string) error {
	return c.do("DELETE", "/api/notes/"+url.PathEscape(id), nil, nil)
}

// ShareNote grants userID read access to the note.
func (c *Client) ShareNote(id, userID string) (*models.Note, error) {
	var note models.Note
	err := c.do("POST", "/api/notes/"+url.PathEscape(id)+"/share", map[string]string{
		"userId": userID,
	}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Search runs a full-text query over the account's accessible notes.
func (c *Client) Search(query string) ([]models.Note, error) {
	var notes []models.Note
	err := c.do("GET", "/api/search?q="+url.QueryEscape(query), nil, &notes)
	return notes, err
}

// do performs one API round-trip: marshals body if present, attaches the
// bearer token, and decodes either the success payload into out or the
// failure envelope into an error.
func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (%d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
