package mongo

import (
	"context"
	"errors"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The catalog collections (activities, specialists, spaces) are simple
// reference data: named documents sessions point at.

const (
	activityCollectionName   = "activities"
	specialistCollectionName = "specialists"
	spaceCollectionName      = "spaces"
)

type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new instance of mongoActivityRepository.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{collection: db.Collection(activityCollectionName)}
}

func (r *mongoActivityRepository) Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error) {
	if activity.Name == "" {
		return primitive.NilObjectID, errors.New("activity name is required")
	}
	activity.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return primitive.NilObjectID, err
	}
	return activity.ID, nil
}

func (r *mongoActivityRepository) GetAll(ctx context.Context) ([]domain.Activity, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	activities := []domain.Activity{}
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

type mongoSpecialistRepository struct {
	collection *mongo.Collection
}

// NewMongoSpecialistRepository creates a new instance of mongoSpecialistRepository.
func NewMongoSpecialistRepository(db *mongo.Database) repository.SpecialistRepository {
	return &mongoSpecialistRepository{collection: db.Collection(specialistCollectionName)}
}

func (r *mongoSpecialistRepository) Create(ctx context.Context, specialist *domain.Specialist) (primitive.ObjectID, error) {
	if specialist.Name == "" {
		return primitive.NilObjectID, errors.New("specialist name is required")
	}
	specialist.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	specialist.CreatedAt = now
	specialist.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, specialist); err != nil {
		return primitive.NilObjectID, err
	}
	return specialist.ID, nil
}

func (r *mongoSpecialistRepository) GetAll(ctx context.Context) ([]domain.Specialist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	specialists := []domain.Specialist{}
	if err = cursor.All(ctx, &specialists); err != nil {
		return nil, err
	}
	return specialists, nil
}

type mongoSpaceRepository struct {
	collection *mongo.Collection
}

// NewMongoSpaceRepository creates a new instance of mongoSpaceRepository.
func NewMongoSpaceRepository(db *mongo.Database) repository.SpaceRepository {
	return &mongoSpaceRepository{collection: db.Collection(spaceCollectionName)}
}

func (r *mongoSpaceRepository) Create(ctx context.Context, space *domain.Space) (primitive.ObjectID, error) {
	if space.Name == "" {
		return primitive.NilObjectID, errors.New("space name is required")
	}
	if space.Capacity < 0 {
		return primitive.NilObjectID, errors.New("space capacity cannot be negative")
	}
	space.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	space.CreatedAt = now
	space.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, space); err != nil {
		return primitive.NilObjectID, err
	}
	return space.ID, nil
}

func (r *mongoSpaceRepository) GetAll(ctx context.Context) ([]domain.Space, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	spaces := []domain.Space{}
	if err = cursor.All(ctx, &spaces); err != nil {
		return nil, err
	}
	return spaces, nil
}
