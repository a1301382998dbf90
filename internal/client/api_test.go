package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_RegisterAndLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/signup":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "id-1"})
		case "/api/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)

	id, err := c.Register("a@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "id-1", id)

	require.NoError(t, c.Login("a@x.com", "secret1"))
	require.Equal(t, "tok-1", c.Token)
}

func TestClient_BearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Token = "tok-1"

	_, err := c.ListNotes()
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_ErrorEnvelopeSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "note not found"})
	}))
	defer server.Close()

	c := New(server.URL, nil)

	_, err := c.GetNote("n1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "note not found")
	require.Contains(t, err.Error(), "404")
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "apple pie", r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "n1"}})
	}))
	defer server.Close()

	c := New(server.URL, nil)

	notes, err := c.Search("apple pie")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "n1", notes[0].ID)
}

func TestSession_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/session.json"

	s, err := LoadSession(path)
	require.NoError(t, err)
	require.Empty(t, s.Token)

	s.Token = "tok-1"
	require.NoError(t, s.Save())

	restored, err := LoadSession(path)
	require.NoError(t, err)
	require.Equal(t, "tok-1", restored.Token)
}
