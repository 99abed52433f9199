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

	patientserrors "medreg/internal/patients/errors"
	"medreg/pkg/config"
	mongotx "medreg/pkg/db/mongo"
	"medreg/pkg/model"
)

const (
	CollectionName = "Patients"
)

type mongoPatientRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type PatientRepository interface {
	Insert(ctx context.Context, patient *model.Patient) error
	ExistsByMRN(ctx context.Context, mrn string) (bool, error)
	FindByID(ctx context.Context, id string) (*model.Patient, error)
	FindByMRN(ctx context.Context, mrn string) (*model.Patient, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Patient, error)
	Update(ctx context.Context, id string, patient *model.Patient) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	FindByPhone(ctx context.Context, phone string, limit int, offset int64) ([]*model.Patient, error)
	CountByPhone(ctx context.Context, phone string) (int64, error)
	FindByCity(ctx context.Context, city string, limit int, offset int64) ([]*model.Patient, error)
	CountByCity(ctx context.Context, city string) (int64, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoPatientRepository(cfg *config.Config) PatientRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPatientRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction, since a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoPatientRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoPatientRepository) Insert(ctx context.Context, patient *model.Patient) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	patient.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, patient)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", patientserrors.ErrDuplicateMRN, patient.MRN)
		}
		return fmt.Errorf("failed to insert patient: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		patient.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPatientRepository) ExistsByMRN(ctx context.Context, mrn string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Exact match on the stored MRN; no normalization of the key.
	count, err := r.collection.CountDocuments(ctx, bson.M{"mrn": mrn}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check MRN existence: %w", err)
	}
	return count > 0, nil
}

func (r *mongoPatientRepository) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", patientserrors.ErrInvalidID, id)
	}

	var patient model.Patient
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, patientserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}

	return &patient, nil
}

func (r *mongoPatientRepository) FindByMRN(ctx context.Context, mrn string) (*model.Patient, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var patient model.Patient
	err := r.collection.FindOne(ctx, bson.M{"mrn": mrn}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, patientserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find patient by MRN: %w", err)
	}

	return &patient, nil
}

func (r *mongoPatientRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Patient, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []*model.Patient
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}

	return patients, nil
}

func (r *mongoPatientRepository) Update(ctx context.Context, id string, patient *model.Patient) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", patientserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"first_name":        patient.FirstName,
			"last_name":         patient.LastName,
			"age":               patient.Age,
			"gender":            patient.Gender,
			"phone":             patient.Phone,
			"alt_phone_1":       patient.AltPhone1,
			"alt_phone_2":       patient.AltPhone2,
			"cancer_site":       patient.CancerSite,
			"stage":             patient.Stage,
			"diagnosis":         patient.Diagnosis,
			"registration_year": patient.RegistrationYear,
			"address":           patient.Address,
			"city":              patient.City,
			"state":             patient.State,
			"estimated_dob":     patient.EstimatedDOB,
			"logged_at":         patient.LoggedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, patientserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoPatientRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", patientserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	if result.DeletedCount == 0 {
		return patientserrors.ErrNotFound
	}

	return nil
}

func phoneFilter(phone string) bson.M {
	return bson.M{
		"$or": []bson.M{
			{"phone": phone},
			{"alt_phone_1": phone},
			{"alt_phone_2": phone},
		},
	}
}

func (r *mongoPatientRepository) FindByPhone(ctx context.Context, phone string, limit int, offset int64) ([]*model.Patient, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, phoneFilter(phone), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find patients by phone: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []*model.Patient
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}

	return patients, nil
}

func (r *mongoPatientRepository) CountByPhone(ctx context.Context, phone string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, phoneFilter(phone))
	if err != nil {
		return 0, fmt.Errorf("failed to count patients by phone: %w", err)
	}
	return count, nil
}

func (r *mongoPatientRepository) FindByCity(ctx context.Context, city string, limit int, offset int64) ([]*model.Patient, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"city": city}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find patients by city: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []*model.Patient
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}

	return patients, nil
}

func (r *mongoPatientRepository) CountByCity(ctx context.Context, city string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"city": city})
	if err != nil {
		return 0, fmt.Errorf("failed to count patients by city: %w", err)
	}
	return count, nil
}

func (r *mongoPatientRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}

	return count, nil
}

func (r *mongoPatientRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
