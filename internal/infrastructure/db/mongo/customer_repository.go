package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userdir/user-service/internal/core/domain"
)

// CustomerRepository implements ports.CustomerRepository using MongoDB.
type CustomerRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewCustomerRepository(db *mongo.Database, timeout time.Duration) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers), timeout: timeout}
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	customers := make([]*domain.Customer, 0)
	if err := cur.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	return r.set(ctx, c.ID, bson.M{
		"customer_name": c.Name,
		"email":         c.Email,
		"phone_number":  c.PhoneNumber,
		"updated_at":    c.UpdatedAt,
	})
}

func (r *CustomerRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.set(ctx, id, bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var c domain.Customer
	if err := r.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
