package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rrens/shopchat/internal/domain"
)

type conversationDoc struct {
	ID        string    `bson:"_id"`
	SessionID string    `bson:"session_id"`
	Role      string    `bson:"role"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`

	// Seq orders entries written in the same millisecond
	Seq primitive.ObjectID `bson:"seq"`
}

func toConversationDoc(e *domain.ConversationEntry) conversationDoc {
	return conversationDoc{
		ID:        e.ID.String(),
		SessionID: e.SessionID,
		Role:      string(e.Role),
		Content:   e.Content,
		CreatedAt: e.CreatedAt.UTC(),
		Seq:       primitive.NewObjectID(),
	}
}

func (d conversationDoc) entry() (domain.ConversationEntry, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.ConversationEntry{}, fmt.Errorf("invalid conversation id %q: %w", d.ID, err)
	}
	return domain.ConversationEntry{
		ID:        id,
		SessionID: d.SessionID,
		Role:      domain.MessageRole(d.Role),
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

// ConversationRepository implements domain.ConversationRepository
type ConversationRepository struct {
	coll *mongo.Collection
}

// NewConversationRepository creates a new conversation log repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{coll: db.db.Collection(conversationsCollection)}
}

// Append inserts a conversation turn
func (r *ConversationRepository) Append(ctx context.Context, entry *domain.ConversationEntry) error {
	if _, err := r.coll.InsertOne(ctx, toConversationDoc(entry)); err != nil {
		return fmt.Errorf("failed to append conversation entry: %w", err)
	}
	return nil
}

// ListBySession retrieves the latest turns of a session, oldest first
func (r *ConversationRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.ConversationEntry, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.D{{Key: "session_id", Value: sessionID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []conversationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}

	entries := make([]domain.ConversationEntry, len(docs))
	for i, doc := range docs {
		e, err := doc.entry()
		if err != nil {
			return nil, err
		}
		// newest first from the cursor; fill from the back for chronological order
		entries[len(docs)-1-i] = e
	}
	return entries, nil
}
