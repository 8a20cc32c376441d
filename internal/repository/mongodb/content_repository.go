package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

type contentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Type      string             `bson:"type"`
	URL       *string            `bson:"url"`
	Text      *string            `bson:"text"`
	ImageURL  *string            `bson:"imageUrl"`
	Category  primitive.ObjectID `bson:"category"`
	Creator   primitive.ObjectID `bson:"creator"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// contentRow is a content document after the category and creator lookups
type contentRow struct {
	contentDocument `bson:",inline"`
	CategoryRef     *struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	} `bson:"categoryRef,omitempty"`
	CreatorRef *struct {
		ID       primitive.ObjectID `bson:"_id"`
		Username string             `bson:"username"`
	} `bson:"creatorRef,omitempty"`
}

func (d *contentDocument) toDomain() (*domain.Content, error) {
	payload, err := domain.PayloadFromFields(domain.ContentType(d.Type), d.URL, d.Text, d.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", d.ID.Hex(), err)
	}
	return &domain.Content{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Payload:    payload,
		CategoryID: d.Category.Hex(),
		CreatorID:  d.Creator.Hex(),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

// MongoContentRepository implements the ContentRepository interface over the contents collection
type MongoContentRepository struct {
	coll *mongo.Collection
}

// NewMongoContentRepository creates a new MongoDB content repository
func NewMongoContentRepository(db *mongo.Database) *MongoContentRepository {
	return &MongoContentRepository{coll: db.Collection(contentsCollection)}
}

var sortKeys = map[string]string{
	domain.SortByTitle:     "title",
	domain.SortByType:      "type",
	domain.SortByCreatedAt: "createdAt",
	domain.SortByUpdatedAt: "updatedAt",
}

// Create implements ContentRepository.Create
func (r *MongoContentRepository) Create(ctx context.Context, content *domain.Content) error {
	doc, err := toDocument(content)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}

	content.ID = doc.ID.Hex()
	content.CreatedAt = doc.CreatedAt
	content.UpdatedAt = doc.UpdatedAt
	return nil
}

// Get implements ContentRepository.Get
func (r *MongoContentRepository) Get(ctx context.Context, id string) (*domain.Content, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc contentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// Update implements ContentRepository.Update. The creator is never rewritten.
func (r *MongoContentRepository) Update(ctx context.Context, content *domain.Content) error {
	oid, err := primitive.ObjectIDFromHex(content.ID)
	if err != nil {
		return repository.ErrNotFound
	}
	doc, err := toDocument(content)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":     doc.Title,
		"type":      doc.Type,
		"url":       doc.URL,
		"text":      doc.Text,
		"imageUrl":  doc.ImageURL,
		"category":  doc.Category,
		"updatedAt": doc.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete implements ContentRepository.Delete
func (r *MongoContentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count implements ContentRepository.Count
func (r *MongoContentRepository) Count(ctx context.Context, filter domain.ContentFilter) (int64, error) {
	match, ok := buildMatch(filter)
	if !ok {
		return 0, nil
	}
	return r.coll.CountDocuments(ctx, match)
}

// Find implements ContentRepository.Find with a single aggregation:
// match, sort, skip, limit, then resolve category name and creator username.
func (r *MongoContentRepository) Find(ctx context.Context, q repository.ContentQuery) ([]*domain.ContentView, error) {
	views := []*domain.ContentView{}

	match, ok := buildMatch(q.Filter)
	if !ok {
		return views, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: buildSort(q.Sort)}},
	}
	if q.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: int64(q.Skip)}})
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(q.Limit)}})
	}
	pipeline = append(pipeline,
		lookup(categoriesCollection, "category", "categoryRef"),
		unwind("$categoryRef"),
		lookup(usersCollection, "creator", "creatorRef"),
		unwind("$creatorRef"),
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row contentRow
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		content, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		view := &domain.ContentView{Content: *content}
		if row.CategoryRef != nil {
			view.Category = &domain.CategoryRef{ID: row.CategoryRef.ID.Hex(), Name: row.CategoryRef.Name}
		}
		if row.CreatorRef != nil {
			view.Creator = &domain.UserRef{ID: row.CreatorRef.ID.Hex(), Username: row.CreatorRef.Username}
		}
		views = append(views, view)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// CountByType implements ContentRepository.CountByType
func (r *MongoContentRepository) CountByType(ctx context.Context, filter domain.ContentFilter) (map[domain.ContentType]int64, error) {
	counts := make(map[domain.ContentType]int64)

	match, ok := buildMatch(filter)
	if !ok {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	for _, g := range groups {
		counts[domain.ContentType(g.Type)] = g.Count
	}
	return counts, nil
}

func toDocument(content *domain.Content) (*contentDocument, error) {
	category, err := primitive.ObjectIDFromHex(content.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", content.CategoryID, err)
	}
	creator, err := primitive.ObjectIDFromHex(content.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid creator id %q: %w", content.CreatorID, err)
	}

	url, text, imageURL := domain.PayloadFields(content.Payload)
	return &contentDocument{
		Title:     content.Title,
		Type:      string(content.Type()),
		URL:       url,
		Text:      text,
		ImageURL:  imageURL,
		Category:  category,
		Creator:   creator,
		CreatedAt: content.CreatedAt,
		UpdatedAt: content.UpdatedAt,
	}, nil
}

// buildMatch converts filter into a query document. ok is false when a
// malformed id makes the filter unsatisfiable.
func buildMatch(filter domain.ContentFilter) (match bson.M, ok bool) {
	match = bson.M{}
	if filter.CategoryID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.CategoryID)
		if err != nil {
			return nil, false
		}
		match["category"] = oid
	}
	if filter.CreatorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.CreatorID)
		if err != nil {
			return nil, false
		}
		match["creator"] = oid
	}
	if filter.Type != "" {
		match["type"] = filter.Type
	}
	return match, true
}

func buildSort(keys []domain.SortField) bson.D {
	sort := bson.D{}
	seen := map[string]bool{}
	for _, key := range keys {
		field, ok := sortKeys[key.Field]
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		dir := 1
		if key.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: field, Value: dir})
	}
	return append(sort, bson.E{Key: "_id", Value: 1})
}

func lookup(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func unwind(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}
