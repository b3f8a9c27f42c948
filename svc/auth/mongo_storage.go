package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/crypto/bcrypt"

	mongodb "github.com/citelab/bibcat/pkg/mongo"
	"github.com/citelab/bibcat/pkg/sanitizer"
	"github.com/citelab/bibcat/pkg/validator"
)

const usersCollection = "users"

// StorageOption configures MongoStorage.
type StorageOption func(*MongoStorage)

// WithStorageBcryptCost sets the bcrypt cost used when hashing passwords.
func WithStorageBcryptCost(cost int) StorageOption {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		panic(fmt.Sprintf("WithStorageBcryptCost: cost %d out of range", cost))
	}
	return func(s *MongoStorage) { s.bcryptCost = cost }
}

// MongoStorage persists users in a MongoDB collection with a unique index
// on email, so duplicate registrations fail atomically at the database.
type MongoStorage struct {
	col        *mongo.Collection
	bcryptCost int
}

// NewMongoStorage returns a MongoStorage bound to the users collection and
// ensures the unique email index exists.
func NewMongoStorage(ctx context.Context, db *mongo.Database, opts ...StorageOption) (*MongoStorage, error) {
	s := &MongoStorage{
		col:        db.Collection(usersCollection),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create unique email index: %w", err)
	}

	return s, nil
}

func normalizeAndValidateEmail(email string) (string, error) {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func (s *MongoStorage) Create(ctx context.Context, email, password string, confirmed bool) (*User, error) {
	email, err := normalizeAndValidateEmail(email)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		EmailConfirmed: confirmed,
		Roles:          []string{},
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := s.col.InsertOne(ctx, user); err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *MongoStorage) GetByEmail(ctx context.Context, email string) (*User, error) {
	email, err := normalizeAndValidateEmail(email)
	if err != nil {
		return nil, err
	}

	var user User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *MongoStorage) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (s *MongoStorage) SetEmailConfirmed(ctx context.Context, id uuid.UUID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"email_confirmed": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoStorage) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": string(hash)}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoStorage) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	email, err := normalizeAndValidateEmail(email)
	if err != nil {
		return err
	}

	// The new address is unverified, so the confirmed flag resets with it.
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"email": email, "email_confirmed": false}},
	)
	if err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update email: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

var _ Storage = (*MongoStorage)(nil)
