package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/combination-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrInvalidID is returned for identifiers that are not valid ObjectIDs.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
)

// DenominationSetDocument is the stored form of a denomination set.
type DenominationSetDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Denominations []int              `bson:"denominations"`
	Active        bool               `bson:"active"`
	Version       int                `bson:"version"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
	CreatedBy     string             `bson:"created_by,omitempty"`
	UpdatedBy     string             `bson:"updated_by,omitempty"`
}

func (d *DenominationSetDocument) toModel() *model.DenominationSet {
	return &model.DenominationSet{
		ID:            d.ID.Hex(),
		Denominations: d.Denominations,
		Active:        d.Active,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		CreatedBy:     d.CreatedBy,
		UpdatedBy:     d.UpdatedBy,
	}
}

// DenominationSetsRepository stores versioned denomination sets.
type DenominationSetsRepository struct {
	collection *mongo.Collection
}

// NewDenominationSetsRepository creates a new denomination sets repository.
func NewDenominationSetsRepository(db *MongoDB) *DenominationSetsRepository {
	return &DenominationSetsRepository{
		collection: db.DenominationSets,
	}
}

// GetActive returns the active set, or nil when none exists.
func (r *DenominationSetsRepository) GetActive(ctx context.Context) (*model.DenominationSet, error) {
	var doc DenominationSetDocument
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// Create deactivates every set and inserts a new active one.
// Its version is one more than the highest stored version.
func (r *DenominationSetsRepository) Create(ctx context.Context, denominations []int, createdBy string) (*model.DenominationSet, error) {
	version, err := r.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if _, err := r.collection.UpdateMany(ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	); err != nil {
		return nil, err
	}

	doc := DenominationSetDocument{
		ID:            primitive.NewObjectID(),
		Denominations: denominations,
		Active:        true,
		Version:       version + 1,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     createdBy,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// Update replaces the denominations of an existing set. The set takes the
// next version of the shared sequence, as a newly created set would.
func (r *DenominationSetsRepository) Update(ctx context.Context, id string, denominations []int, updatedBy string) (*model.DenominationSet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	version, err := r.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"denominations": denominations,
		"version":       version + 1,
		"updated_at":    time.Now().UTC(),
	}
	if updatedBy != "" {
		set["updated_by"] = updatedBy
	}

	var doc DenominationSetDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// List returns sets newest first. A non-positive limit returns all of them.
func (r *DenominationSetsRepository) List(ctx context.Context, limit int) ([]model.DenominationSet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []DenominationSetDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	sets := make([]model.DenominationSet, len(docs))
	for i := range docs {
		sets[i] = *docs[i].toModel()
	}
	return sets, nil
}

func (r *DenominationSetsRepository) latestVersion(ctx context.Context) (int, error) {
	var doc DenominationSetDocument
	err := r.collection.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}).SetProjection(bson.M{"version": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}
