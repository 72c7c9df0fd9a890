package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

const collectionVideos = "videos"

// VideoRepository implements ports.VideoRepository using MongoDB.
type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{col: db.Collection(collectionVideos)}
}

type videoDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Category     string             `bson:"category"`
	Tags         []string           `bson:"tags"`
	Filename     string             `bson:"filename"`
	OriginalName string             `bson:"originalName"`
	Path         string             `bson:"path"`
	Size         int64              `bson:"size"`
	MIMEType     string             `bson:"mimetype"`
	UploadedBy   primitive.ObjectID `bson:"uploadedBy"`
	WebsiteURL   string             `bson:"websiteUrl"`
	WhatsappURL  string             `bson:"whatsappUrl"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d videoDocument) toDomain() *domain.Video {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Video{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		Tags:         tags,
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		Path:         d.Path,
		Size:         d.Size,
		MIMEType:     d.MIMEType,
		UploadedBy:   d.UploadedBy.Hex(),
		WebsiteURL:   d.WebsiteURL,
		WhatsappURL:  d.WhatsappURL,
		Status:       domain.VideoStatus(d.Status),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) error {
	owner, ok := parseID(v.UploadedBy)
	if !ok {
		return fmt.Errorf("insert video: invalid uploader id %q", v.UploadedBy)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := videoDocument{
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category,
		Tags:         v.Tags,
		Filename:     v.Filename,
		OriginalName: v.OriginalName,
		Path:         v.Path,
		Size:         v.Size,
		MIMEType:     v.MIMEType,
		UploadedBy:   owner,
		WebsiteURL:   v.WebsiteURL,
		WhatsappURL:  v.WhatsappURL,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	v.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc videoDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching videos newest first.
func (r *VideoRepository) List(ctx context.Context, filter ports.VideoFilter) ([]*domain.Video, error) {
	query, ok := videoQuery(filter.OwnerID)
	if !ok {
		return []*domain.Video{}, nil
	}
	if len(filter.Categories) > 0 {
		query["category"] = bson.M{"$in": filter.Categories}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find videos: %w", err)
	}
	var docs []videoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode videos: %w", err)
	}

	videos := make([]*domain.Video, 0, len(docs))
	for _, d := range docs {
		videos = append(videos, d.toDomain())
	}
	return videos, nil
}

// Save overwrites the mutable fields. Ownership, file metadata and creation
// time are never rewritten.
func (r *VideoRepository) Save(ctx context.Context, v *domain.Video) error {
	oid, ok := parseID(v.ID)
	if !ok {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       v.Title,
		"description": v.Description,
		"category":    v.Category,
		"tags":        v.Tags,
		"websiteUrl":  v.WebsiteURL,
		"whatsappUrl": v.WhatsappURL,
		"status":      string(v.Status),
		"updatedAt":   v.UpdatedAt,
	}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	oid, ok := parseID(ownerID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"uploadedBy": oid})
	if err != nil {
		return 0, fmt.Errorf("delete owner videos: %w", err)
	}
	return res.DeletedCount, nil
}

// CountByStatus groups the whole collection by status in one aggregation.
func (r *VideoRepository) CountByStatus(ctx context.Context) (map[domain.VideoStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate video status: %w", err)
	}

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode video status: %w", err)
	}

	counts := make(map[domain.VideoStatus]int64, len(rows))
	for _, row := range rows {
		counts[domain.VideoStatus(row.Status)] += row.Count
	}
	return counts, nil
}

func (r *VideoRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	query, ok := videoQuery(ownerID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, query)
}

func (r *VideoRepository) DistinctCategories(ctx context.Context, ownerID string) ([]string, error) {
	query, ok := videoQuery(ownerID)
	if !ok {
		return []string{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.col.Distinct(ctx, "category", query)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// EnsureIndexes creates the owner and listing indexes on the videos collection.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uploadedBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "uploadedBy", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// videoQuery builds the base filter for an optional owner. ok is false when
// the owner id cannot match any document.
func videoQuery(ownerID string) (bson.M, bool) {
	if ownerID == "" {
		return bson.M{}, true
	}
	oid, ok := parseID(ownerID)
	if !ok {
		return nil, false
	}
	return bson.M{"uploadedBy": oid}, true
}
