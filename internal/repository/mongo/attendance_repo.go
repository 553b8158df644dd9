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

const attendanceCollectionName = "attendance"

// mongoAttendanceRepository implements repository.AttendanceRepository using MongoDB.
type mongoAttendanceRepository struct {
	collection *mongo.Collection
}

// NewMongoAttendanceRepository creates a new instance of mongoAttendanceRepository.
func NewMongoAttendanceRepository(db *mongo.Database) repository.AttendanceRepository {
	return &mongoAttendanceRepository{
		collection: db.Collection(attendanceCollectionName),
	}
}

// Upsert writes the attendance record for one session occurrence,
// replacing any existing record for the same (session, date) pair. The
// unique compound index guarantees at most one record per occurrence
// even under concurrent writes.
func (r *mongoAttendanceRepository) Upsert(ctx context.Context, record *domain.AttendanceRecord) error {
	if record.SessionID == primitive.NilObjectID || record.Date == "" {
		return errors.New("attendance session ID and date are required")
	}

	now := time.Now().UTC()
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	filter := bson.M{"sessionId": record.SessionID, "date": record.Date}
	update := bson.M{
		"$set": bson.M{
			"presentIds":          record.PresentIDs,
			"oneTimeAttendees":    record.OneTimeAttendees,
			"justifiedAbsenceIds": record.JustifiedAbsenceIDs,
			"updatedAt":           record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"sessionId": record.SessionID,
			"date":      record.Date,
			"createdAt": record.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetBySessionAndDate retrieves the record for one session occurrence.
func (r *mongoAttendanceRepository) GetBySessionAndDate(ctx context.Context, sessionID primitive.ObjectID, date string) (*domain.AttendanceRecord, error) {
	var record domain.AttendanceRecord
	filter := bson.M{"sessionId": sessionID, "date": date}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetAll retrieves the full attendance history. The recovery-balance
// derivation consumes all of it, unbounded by date.
func (r *mongoAttendanceRepository) GetAll(ctx context.Context) ([]domain.AttendanceRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.AttendanceRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureAttendanceIndexes creates necessary indexes for the attendance collection.
func EnsureAttendanceIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One record per session occurrence.
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
