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

// AdminRepository implements ports.AdminRepository using MongoDB.
type AdminRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewAdminRepository(db *mongo.Database, timeout time.Duration) *AdminRepository {
	return &AdminRepository{col: db.Collection(collectionAdmins), timeout: timeout}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AdminRepository) ListByRole(ctx context.Context, role string) ([]*domain.Admin, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"admin_role": role}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	admins := make([]*domain.Admin, 0)
	if err := cur.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("decode admins: %w", err)
	}
	return admins, nil
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Update(ctx context.Context, a *domain.Admin) error {
	return r.set(ctx, a.ID, bson.M{
		"admin_name": a.Name,
		"email":      a.Email,
		"updated_at": a.UpdatedAt,
	})
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.set(ctx, id, bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var a domain.Admin
	if err := r.col.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &a, nil
}

func (r *AdminRepository) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
