package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rizkypriyadi/authkit/internal/auth/domain"
)

// FileStore persists the session record as a single JSON file, the
// client-side analog of browser local storage. The write goes through a
// temp file and a rename, so a crash leaves either the old record or the
// new one, never a torn write.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileRecord struct {
	AccessToken  string          `json:"auth_token"`
	RefreshToken string          `json:"auth_refresh_token"`
	User         json.RawMessage `json:"auth_user"`
}

func (s *FileStore) Save(_ context.Context, rec *domain.SessionRecord) error {
	userJSON, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	data, err := json.Marshal(fileRecord{
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		User:         userJSON,
	})
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write session record: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit session record: %w", err)
	}

	return nil
}

func (s *FileStore) Load(_ context.Context) (*domain.SessionRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session record: %w", err)
	}

	var fr fileRecord
	if err := json.Unmarshal(data, &fr); err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}
	if fr.AccessToken == "" || fr.RefreshToken == "" || len(fr.User) == 0 {
		return nil, fmt.Errorf("corrupt session record: missing entries")
	}

	var user domain.User
	if err := json.Unmarshal(fr.User, &user); err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("corrupt session record: empty identity")
	}

	return &domain.SessionRecord{
		AccessToken:  fr.AccessToken,
		RefreshToken: fr.RefreshToken,
		User:         user,
	}, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}

var _ domain.SessionStore = (*FileStore)(nil)
