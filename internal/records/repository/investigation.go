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
	InvestigationCollectionName = "Investigations"
)

type mongoInvestigationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type InvestigationRepository interface {
	Create(ctx context.Context, investigation *model.Investigation) error
	FindByID(ctx context.Context, id string) (*model.Investigation, error)
	FindByPatient(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Investigation, error)
	CountByPatient(ctx context.Context, patientID string) (int64, error)
	Update(ctx context.Context, id string, investigation *model.Investigation) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

func NewMongoInvestigationRepository(cfg *config.Config) InvestigationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoInvestigationRepository{
		cfg:        cfg,
		collection: db.Collection(InvestigationCollectionName),
	}
}

func (r *mongoInvestigationRepository) Create(ctx context.Context, investigation *model.Investigation) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	investigation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, investigation)
	if err != nil {
		return fmt.Errorf("failed to create investigation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		investigation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoInvestigationRepository) FindByID(ctx context.Context, id string) (*model.Investigation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", recordserrors.ErrInvalidID, id)
	}

	var investigation model.Investigation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&investigation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, recordserrors.ErrInvestigationNotFound
		}
		return nil, fmt.Errorf("failed to find investigation: %w", err)
	}

	return &investigation, nil
}

func (r *mongoInvestigationRepository) FindByPatient(ctx context.Context, patientID string, limit int, offset int64) ([]*model.Investigation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "reported_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find investigations: %w", err)
	}
	defer cursor.Close(ctx)

	var investigations []*model.Investigation
	if err = cursor.All(ctx, &investigations); err != nil {
		return nil, fmt.Errorf("failed to decode investigations: %w", err)
	}

	return investigations, nil
}

func (r *mongoInvestigationRepository) CountByPatient(ctx context.Context, patientID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return 0, fmt.Errorf("failed to count investigations: %w", err)
	}
	return count, nil
}

func (r *mongoInvestigationRepository) Update(ctx context.Context, id string, investigation *model.Investigation) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", recordserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        investigation.Name,
			"result":      investigation.Result,
			"reported_at": investigation.ReportedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update investigation: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, recordserrors.ErrInvestigationNotFound
	}

	return result, nil
}

func (r *mongoInvestigationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", recordserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete investigation: %w", err)
	}

	if result.DeletedCount == 0 {
		return recordserrors.ErrInvestigationNotFound
	}

	return nil
}
