package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"diagbot/internal/model"
)

// ArchiveRepo stores completed questionnaire snapshots
type ArchiveRepo interface {
	Save(ctx context.Context, entry *model.ArchiveEntry) error
}

type archiveRepo struct {
	collection *mongo.Collection
}

// NewArchiveRepo creates a Mongo-backed archive repository.
func NewArchiveRepo(db *mongo.Database) ArchiveRepo {
	return &archiveRepo{collection: db.Collection("archives")}
}

// Save inserts one snapshot, assigning id and timestamp when missing.
func (r *archiveRepo) Save(ctx context.Context, entry *model.ArchiveEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert archive entry: %w", err)
	}
	return nil
}
