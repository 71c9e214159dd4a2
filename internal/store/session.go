package store

import (
	"context"
	"strings"
)

// Session holds the "is a user logged in" state. The persisted token is
// read once at load; the token's presence is the sole signal for logged-in.
// Expiry is discovered only when the server rejects a request.
type Session struct {
	kv    *KV
	token string
}

func LoadSession(ctx context.Context, kv *KV) (*Session, error) {
	tok, _, err := kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, err
	}
	return &Session{kv: kv, token: strings.TrimSpace(tok)}, nil
}

func (s *Session) Token() string  { return s.token }
func (s *Session) LoggedIn() bool { return s.token != "" }

// Store persists a new token (login).
func (s *Session) Store(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if err := s.kv.Set(ctx, TokenKey, token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear removes both the in-memory flag and the persisted value (logout,
// account deletion).
func (s *Session) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, TokenKey); err != nil {
		return err
	}
	s.token = ""
	return nil
}
