package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the mongo collection backing account storage.
const Collection = "accounts"

// MongoStorage implements Storage on a mongo collection. Uniqueness of
// account_id, email.value, and username is enforced by unique indexes, not
// application locking: concurrent writers race to the index and exactly one
// wins.
type MongoStorage struct {
	col *mongo.Collection
}

// NewMongoStorage creates account storage over the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{col: db.Collection(Collection)}
}

// EnsureIndexes creates the unique indexes the account invariants rely on.
// Must run before the storage serves writes.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email.value", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}

func (s *MongoStorage) Insert(ctx context.Context, acct *Account) error {
	if _, err := s.col.InsertOne(ctx, acct); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &ConflictError{Fields: duplicateKeyFields(err)}
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (s *MongoStorage) FindByIdentifier(ctx context.Context, emailOrUsername string) (*Account, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email.value": emailOrUsername},
		bson.M{"username": emailOrUsername},
	}}
	return s.findOne(ctx, filter)
}

func (s *MongoStorage) FindByID(ctx context.Context, accountID string) (*Account, error) {
	return s.findOne(ctx, bson.M{"account_id": accountID})
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var acct Account
	if err := s.col.FindOne(ctx, filter).Decode(&acct); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &acct, nil
}

func (s *MongoStorage) TakenFields(ctx context.Context, email, username, excludeID string) ([]string, error) {
	var taken []string

	for _, check := range []struct {
		field  string
		filter bson.M
	}{
		{"email", bson.M{"email.value": email}},
		{"username", bson.M{"username": username}},
	} {
		if excludeID != "" {
			check.filter["account_id"] = bson.M{"$ne": excludeID}
		}
		err := s.col.FindOne(ctx, check.filter).Err()
		switch {
		case err == nil:
			taken = append(taken, check.field)
		case errors.Is(err, mongo.ErrNoDocuments):
			// free
		default:
			return nil, fmt.Errorf("failed to check %s uniqueness: %w", check.field, err)
		}
	}

	return taken, nil
}

func (s *MongoStorage) UpdatePasswordHash(ctx context.Context, accountID, hash string) error {
	return s.updateOne(ctx, accountID, bson.M{"$set": bson.M{"password_hash": hash}})
}

func (s *MongoStorage) UpdateEmailAndUsername(ctx context.Context, accountID, email string, confirmed bool, username string) error {
	err := s.updateOne(ctx, accountID, bson.M{"$set": bson.M{
		"email.value":     email,
		"email.confirmed": confirmed,
		"username":        username,
	}})
	if mongo.IsDuplicateKeyError(err) {
		return &ConflictError{Fields: duplicateKeyFields(err)}
	}
	return err
}

func (s *MongoStorage) SetEmailConfirmed(ctx context.Context, accountID string, confirmed bool) error {
	return s.updateOne(ctx, accountID, bson.M{"$set": bson.M{"email.confirmed": confirmed}})
}

func (s *MongoStorage) updateOne(ctx context.Context, accountID string, update bson.M) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"account_id": accountID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// duplicateKeyFields maps a duplicate-key error to the colliding field
// names by inspecting the violated index name in the error message.
func duplicateKeyFields(err error) []string {
	var fields []string
	msg := err.Error()
	if strings.Contains(msg, "email") {
		fields = append(fields, "email")
	}
	if strings.Contains(msg, "username") {
		fields = append(fields, "username")
	}
	if len(fields) == 0 {
		fields = append(fields, "account")
	}
	return fields
}
