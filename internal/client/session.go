package client

import (
	"encoding/json"
	"os"
)

// Session persists the bearer token between REPL runs.
type Session struct {
	Token string `json:"token"`

	path string
}

// LoadSession reads the session file at path. A missing file yields an empty
// session, not an error.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the session back to its file with owner-only permissions.
func (s *Session) Save() error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
