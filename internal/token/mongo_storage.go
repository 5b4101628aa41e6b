package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names backing the token ledgers.
const (
	RefreshCollection = "refresh_tokens"
	EmailCollection   = "email_tokens"
)

// RefreshMongoStorage implements RefreshStorage on a mongo collection.
type RefreshMongoStorage struct {
	col *mongo.Collection
}

// NewRefreshMongoStorage creates refresh token storage over the given database.
func NewRefreshMongoStorage(db *mongo.Database) *RefreshMongoStorage {
	return &RefreshMongoStorage{col: db.Collection(RefreshCollection)}
}

// EnsureIndexes creates the unique token index. Must run before writes.
func (s *RefreshMongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "account_id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create refresh token indexes: %w", err)
	}
	return nil
}

func (s *RefreshMongoStorage) Insert(ctx context.Context, token *RefreshToken) error {
	if _, err := s.col.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func (s *RefreshMongoStorage) FindByToken(ctx context.Context, value string) (*RefreshToken, error) {
	var token RefreshToken
	if err := s.col.FindOne(ctx, bson.M{"token": value}).Decode(&token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return &token, nil
}

// MarkRevoked stamps revoked_at on a not-yet-revoked token. The filter on
// the unset field makes the write conditional: of two concurrent revokes,
// exactly one matches and the other gets ErrTokenNotFound.
func (s *RefreshMongoStorage) MarkRevoked(ctx context.Context, value string, at time.Time) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"token": value, "revoked_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revoked_at": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// EmailTokenMongoStorage implements EmailTokenStorage on a mongo collection.
type EmailTokenMongoStorage struct {
	col *mongo.Collection
}

// NewEmailTokenMongoStorage creates email token storage over the given database.
func NewEmailTokenMongoStorage(db *mongo.Database) *EmailTokenMongoStorage {
	return &EmailTokenMongoStorage{col: db.Collection(EmailCollection)}
}

// EnsureIndexes creates the uniqueness indexes: one record per account, and
// globally unique slot values. Sparse indexes let records omit an unused
// slot without colliding on the missing value.
func (s *EmailTokenMongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "confirm_token.value", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "reset_token.value", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create email token indexes: %w", err)
	}
	return nil
}

func (s *EmailTokenMongoStorage) Insert(ctx context.Context, token *EmailToken) error {
	if _, err := s.col.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("failed to insert email token: %w", err)
	}
	return nil
}

func (s *EmailTokenMongoStorage) FindByAccount(ctx context.Context, accountID string) (*EmailToken, error) {
	return s.findOne(ctx, bson.M{"account_id": accountID})
}

func (s *EmailTokenMongoStorage) FindByConfirmValue(ctx context.Context, value string) (*EmailToken, error) {
	return s.findOne(ctx, bson.M{"confirm_token.value": value})
}

func (s *EmailTokenMongoStorage) FindByResetValue(ctx context.Context, value string) (*EmailToken, error) {
	return s.findOne(ctx, bson.M{"reset_token.value": value})
}

func (s *EmailTokenMongoStorage) findOne(ctx context.Context, filter bson.M) (*EmailToken, error) {
	var token EmailToken
	if err := s.col.FindOne(ctx, filter).Decode(&token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find email token: %w", err)
	}
	return &token, nil
}

// SetConfirmSlot overwrites only the confirm slot.
func (s *EmailTokenMongoStorage) SetConfirmSlot(ctx context.Context, accountID string, slot TokenSlot) error {
	return s.setSlot(ctx, accountID, "confirm_token", slot)
}

// SetResetSlot overwrites only the reset slot.
func (s *EmailTokenMongoStorage) SetResetSlot(ctx context.Context, accountID string, slot TokenSlot) error {
	return s.setSlot(ctx, accountID, "reset_token", slot)
}

func (s *EmailTokenMongoStorage) setSlot(ctx context.Context, accountID, field string, slot TokenSlot) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"account_id": accountID},
		bson.M{"$set": bson.M{
			field + ".value":      slot.Value,
			field + ".expires_at": slot.ExpiresAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update email token slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrTokenNotFound
	}
	return nil
}
