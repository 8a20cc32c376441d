package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

type categoryDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	AllowsImages bool               `bson:"allowsImages"`
	AllowsVideos bool               `bson:"allowsVideos"`
	AllowsTexts  bool               `bson:"allowsTexts"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *categoryDocument) toDomain() *domain.Category {
	return &domain.Category{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		AllowsImages: d.AllowsImages,
		AllowsVideos: d.AllowsVideos,
		AllowsTexts:  d.AllowsTexts,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoCategoryRepository implements the CategoryRepository interface over the categories collection
type MongoCategoryRepository struct {
	coll *mongo.Collection
}

// NewMongoCategoryRepository creates a new MongoDB category repository
func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{coll: db.Collection(categoriesCollection)}
}

// Create implements CategoryRepository.Create
func (r *MongoCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	if category.UpdatedAt.IsZero() {
		category.UpdatedAt = now
	}

	doc := categoryDocument{
		ID:           primitive.NewObjectID(),
		Name:         category.Name,
		AllowsImages: category.AllowsImages,
		AllowsVideos: category.AllowsVideos,
		AllowsTexts:  category.AllowsTexts,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	category.ID = doc.ID.Hex()
	return nil
}

// Get implements CategoryRepository.Get
func (r *MongoCategoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetByName implements CategoryRepository.GetByName
func (r *MongoCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// List implements CategoryRepository.List
func (r *MongoCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []*domain.Category{}
	for cursor.Next(ctx) {
		var doc categoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		categories = append(categories, doc.toDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *MongoCategoryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Category, error) {
	var doc categoryDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}
