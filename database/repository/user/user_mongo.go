package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"schedulit/database"
	"schedulit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no user matches the query.
var ErrNotFound = errors.New("user not found")

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database("schedulit").Collection("users")
	repo := &MongoUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its internal ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	return r.getOne(bson.M{"id": id})
}

// GetByGoogleID retrieves a user by their Google account ID.
func (r *MongoUserRepo) GetByGoogleID(googleID string) (*models.User, error) {
	return r.getOne(bson.M{"googleId": googleID})
}

func (r *MongoUserRepo) getOne(filter bson.M) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SetRefreshToken stores the sealed calendar refresh token for a user.
func (r *MongoUserRepo) SetRefreshToken(id string, sealedToken string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"refreshToken": sealedToken,
		"updatedAt":    time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRefreshToken retrieves the sealed calendar refresh token for a user.
func (r *MongoUserRepo) GetRefreshToken(id string) (string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc struct {
		RefreshToken string `bson:"refreshToken"`
	}
	opts := options.FindOne().SetProjection(bson.M{"refreshToken": 1})
	err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch refresh token: %w", err)
	}
	if doc.RefreshToken == "" {
		return "", fmt.Errorf("no refresh token on file, please log in again")
	}
	return doc.RefreshToken, nil
}
