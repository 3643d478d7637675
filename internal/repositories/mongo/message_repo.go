package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rakasatria/folio/internal/models"
	"github.com/rakasatria/folio/internal/utils"
)

type MessageRepository interface {
	Insert(ctx context.Context, m *models.ChatMessage) error
	GetByID(ctx context.Context, id string) (*models.ChatMessage, error)
	// LatestN returns up to n messages in arrival order (oldest first).
	LatestN(ctx context.Context, n int) ([]models.ChatMessage, error)
}

type messageRepo struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepository {
	return &messageRepo{col: db.Collection("chat_messages")}
}

func (r *messageRepo) Insert(ctx context.Context, m *models.ChatMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*models.ChatMessage, error) {
	var m models.ChatMessage
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &m, err
}

func (r *messageRepo) LatestN(ctx context.Context, n int) ([]models.ChatMessage, error) {
	if n <= 0 {
		n = 50
	}

	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(n)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ChatMessage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	// Mongo returns DESC; the widget wants arrival order
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
