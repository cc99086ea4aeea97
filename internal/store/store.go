// Package store persists per-chat sessions between webhook events.
package store

import (
	"context"

	"diagbot/internal/model"
)

// Store is the session persistence boundary. A missing session is returned
// as (nil, nil), not as an error: the caller creates a fresh one.
type Store interface {
	Get(ctx context.Context, chatID int64) (*model.Session, error)
	Put(ctx context.Context, chatID int64, s *model.Session) error
	Delete(ctx context.Context, chatID int64) error
}
