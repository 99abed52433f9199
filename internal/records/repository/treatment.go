package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	recordserrors "medreg/internal/records/errors"
	"medreg/pkg/config"
	"medreg/pkg/model"
)

const (
	TreatmentCollectionName = "Treatments"
)

type mongoTreatmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type TreatmentRepository interface {
	Create(ctx context.Context, treatment *model.Treatment) error
	FindByID(ctx context.Context, id string) (*model.Treatment, error)
	FindByPatient(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Treatment, error)
	CountByPatient(ctx context.Context, patientID string) (int64, error)
	Update(ctx context.Context, id string, treatment *model.Treatment) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

func NewMongoTreatmentRepository(cfg *config.Config) TreatmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTreatmentRepository{
		cfg:        cfg,
		collection: db.Collection(TreatmentCollectionName),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTreatmentRepository) Create(ctx context.Context, treatment *model.Treatment) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	treatment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, treatment)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		treatment.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTreatmentRepository) FindByID(ctx context.Context, id string) (*model.Treatment, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", recordserrors.ErrInvalidID, id)
	}

	var treatment model.Treatment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&treatment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, recordserrors.ErrTreatmentNotFound
		}
		return nil, fmt.Errorf("failed to find treatment: %w", err)
	}

	return &treatment, nil
}

func (r *mongoTreatmentRepository) FindByPatient(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Treatment, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find treatments: %w", err)
	}
	defer cursor.Close(ctx)

	var treatments []*model.Treatment
	if err = cursor.All(ctx, &treatments); err != nil {
		return nil, fmt.Errorf("failed to decode treatments: %w", err)
	}

	return treatments, nil
}

func (r *mongoTreatmentRepository) CountByPatient(ctx context.Context, patientID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return 0, fmt.Errorf("failed to count treatments: %w", err)
	}
	return count, nil
}

func (r *mongoTreatmentRepository) Update(ctx context.Context, id string, treatment *model.Treatment) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", recordserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"modality":   treatment.Modality,
			"started_at": treatment.StartedAt,
			"notes":      treatment.Notes,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update treatment: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, recordserrors.ErrTreatmentNotFound
	}

	return result, nil
}

func (r *mongoTreatmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", recordserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete treatment: %w", err)
	}

	if result.DeletedCount == 0 {
		return recordserrors.ErrTreatmentNotFound
	}

	return nil
}
