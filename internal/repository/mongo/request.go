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

type requestDoc struct {
	ID         string    `bson:"_id"`
	Nombre     *string   `bson:"nombre"`
	Email      *string   `bson:"email"`
	Tipo       string    `bson:"tipo"`
	Mensaje    string    `bson:"mensaje"`
	Cotizacion string    `bson:"cotizacion"`
	Respuesta  string    `bson:"respuesta_ia"`
	CreatedAt  time.Time `bson:"created_at"`

	// Seq orders records written in the same millisecond
	Seq primitive.ObjectID `bson:"seq"`
}

func toRequestDoc(r *domain.RequestRecord) requestDoc {
	return requestDoc{
		ID:         r.ID.String(),
		Nombre:     r.Nombre,
		Email:      r.Email,
		Tipo:       r.Tipo,
		Mensaje:    r.Mensaje,
		Cotizacion: r.Cotizacion,
		Respuesta:  r.Respuesta,
		CreatedAt:  r.CreatedAt.UTC(),
		Seq:        primitive.NewObjectID(),
	}
}

func (d requestDoc) record() (domain.RequestRecord, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.RequestRecord{}, fmt.Errorf("invalid request id %q: %w", d.ID, err)
	}
	return domain.RequestRecord{
		ID:         id,
		Nombre:     d.Nombre,
		Email:      d.Email,
		Tipo:       d.Tipo,
		Mensaje:    d.Mensaje,
		Cotizacion: d.Cotizacion,
		Respuesta:  d.Respuesta,
		CreatedAt:  d.CreatedAt.UTC(),
	}, nil
}

// RequestRepository implements domain.RequestRepository
type RequestRepository struct {
	coll *mongo.Collection
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *DB) *RequestRepository {
	return &RequestRepository{coll: db.db.Collection(requestsCollection)}
}

// Create inserts a new request record
func (r *RequestRepository) Create(ctx context.Context, record *domain.RequestRecord) error {
	if _, err := r.coll.InsertOne(ctx, toRequestDoc(record)); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// ListRecent retrieves the newest request records first
func (r *RequestRepository) ListRecent(ctx context.Context, limit int) ([]domain.RequestRecord, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []requestDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}

	records := make([]domain.RequestRecord, 0, len(docs))
	for _, doc := range docs {
		rec, err := doc.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
