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

// OTPRepository implements ports.OTPRepository using MongoDB.
type OTPRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewOTPRepository(db *mongo.Database, timeout time.Duration) *OTPRepository {
	return &OTPRepository{col: db.Collection(collectionOTPs), timeout: timeout}
}

func (r *OTPRepository) Create(ctx context.Context, otp *domain.OneTimePasscode) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, otp); err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

// FindFirst prefers the most recently issued row when several share a code.
func (r *OTPRepository) FindFirst(ctx context.Context, code string, owner domain.OwnerRef) (*domain.OneTimePasscode, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	filter := bson.M{
		"otp_code":   code,
		"owner_kind": string(owner.Kind),
		"owner_id":   owner.ID,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var otp domain.OneTimePasscode
	if err := r.col.FindOne(ctx, filter, opts).Decode(&otp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	return &otp, nil
}

func (r *OTPRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OTPRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("delete expired otps: %w", err)
	}
	return res.DeletedCount, nil
}
