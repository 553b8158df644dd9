package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const personCollectionName = "people"

// mongoPersonRepository implements repository.PersonRepository using MongoDB.
type mongoPersonRepository struct {
	collection *mongo.Collection
}

// NewMongoPersonRepository creates a new instance of mongoPersonRepository.
func NewMongoPersonRepository(db *mongo.Database) repository.PersonRepository {
	return &mongoPersonRepository{
		collection: db.Collection(personCollectionName),
	}
}

// Create inserts a new person. A person with no explicit status starts active.
func (r *mongoPersonRepository) Create(ctx context.Context, person *domain.Person) (primitive.ObjectID, error) {
	if person.Name == "" {
		return primitive.NilObjectID, errors.New("person name is required")
	}
	if person.Status == "" {
		person.Status = domain.PersonActive
	}

	person.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	person.CreatedAt = now
	person.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, person)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a person by their MongoDB ObjectID.
func (r *mongoPersonRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Person, error) {
	var person domain.Person
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&person)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

// GetAll retrieves every person, active and inactive, sorted by name.
func (r *mongoPersonRepository) GetAll(ctx context.Context) ([]domain.Person, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	people := []domain.Person{}
	if err = cursor.All(ctx, &people); err != nil {
		return nil, err
	}
	return people, nil
}

// Update replaces a person's mutable fields.
func (r *mongoPersonRepository) Update(ctx context.Context, person *domain.Person) error {
	if person.ID == primitive.NilObjectID {
		return errors.New("person ID is required for update")
	}
	person.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": person.ID}
	update := bson.M{"$set": bson.M{
		"name":           person.Name,
		"phone":          person.Phone,
		"status":         person.Status,
		"paymentDueDate": person.PaymentDueDate,
		"vacations":      person.Vacations,
		"updatedAt":      person.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetPhotoObjectKey records the storage key of the person's profile photo.
func (r *mongoPersonRepository) SetPhotoObjectKey(ctx context.Context, personID primitive.ObjectID, objectKey string) error {
	filter := bson.M{"_id": personID}
	update := bson.M{"$set": bson.M{
		"photoObjectKey": objectKey,
		"updatedAt":      time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePersonIndexes creates necessary indexes for the people collection.
func EnsurePersonIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
