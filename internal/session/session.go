// Package session keeps the short conversational memory of each chat
// session together with its active mode.
package session

import (
	"context"
	"errors"

	"github.com/Rrens/shopchat/internal/domain"
)

const (
	// DefaultMode is the mode of a session that never set one
	DefaultMode = "vendedor"
	// DefaultMemoryLimit is the number of turns remembered per session
	DefaultMemoryLimit = 5
)

var ErrEmptySessionID = errors.New("session id is required")

// Turn is one role-tagged message of a conversation
type Turn struct {
	Role    domain.MessageRole `json:"role"`
	Content string             `json:"content"`
}

// Store is the session state. Sessions are created lazily by AppendTurn or
// SetMode. Implementations keep at most their memory limit of turns,
// dropping the oldest first.
type Store interface {
	AppendTurn(ctx context.Context, id string, role domain.MessageRole, content string) error
	SetMode(ctx context.Context, id, mode string) error
	Turns(ctx context.Context, id string) ([]Turn, error)
	Mode(ctx context.Context, id string) (string, error)
}
