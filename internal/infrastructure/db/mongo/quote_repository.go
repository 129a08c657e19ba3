package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luminett/booking-api/internal/core/domain"
)

const collectionQuotes = "quotes"

type QuoteRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{db: db, col: db.Collection(collectionQuotes)}
}

// Insert persists a new quote, assigning it the next sequential id.
func (r *QuoteRepository) Insert(ctx context.Context, q *domain.Quote) error {
	id, err := nextSequence(ctx, r.db, "quotes")
	if err != nil {
		return err
	}
	q.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id int64) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var q domain.Quote
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("find quote: %w", err)
	}
	return &q, nil
}

// List returns all quotes and invoices, newest first.
func (r *QuoteRepository) List(ctx context.Context) ([]*domain.Quote, error) {
	return r.find(ctx, bson.M{})
}

// ListByEmail returns the documents addressed to the given client email,
// newest first. Callers pass the email already normalized.
func (r *QuoteRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Quote, error) {
	return r.find(ctx, bson.M{"client_email": email})
}

func (r *QuoteRepository) find(ctx context.Context, filter bson.M) ([]*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer cur.Close(ctx)

	quotes := make([]*domain.Quote, 0)
	if err := cur.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return quotes, nil
}

// UpdateStatus sets the quote's status and, when signedAt is non-nil, the
// signature timestamp. Returns the updated document.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id int64, status domain.QuoteStatus, signedAt *time.Time) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status}
	if signedAt != nil {
		set["signed_at"] = *signedAt
	}

	var q domain.Quote
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	return &q, nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

// NextReference atomically advances the per-(type, year) reference sequence.
// Each document type restarts its numbering every calendar year.
func (r *QuoteRepository) NextReference(ctx context.Context, t domain.QuoteType, year int) (int64, error) {
	return nextSequence(ctx, r.db, fmt.Sprintf("ref:%s:%d", t, year))
}

// EnsureIndexes creates the indexes the list and lookup paths rely on.
func (r *QuoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_email", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
