package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userdir/user-service/internal/core/domain"
)

// AddressRepository implements ports.AddressRepository using MongoDB.
type AddressRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewAddressRepository(db *mongo.Database, timeout time.Duration) *AddressRepository {
	return &AddressRepository{col: db.Collection(collectionAddresses), timeout: timeout}
}

func (r *AddressRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Address, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"customer_id": customerID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	addresses := make([]*domain.Address, 0)
	if err := cur.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("decode addresses: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}
