package mongo

import (
	"context"
	"time"

	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookmarkRepository interface {
	// Create returns utils.ErrDuplicate when the (job_seeker, job) pair exists.
	Create(ctx context.Context, b *models.Bookmark) error
	// Delete returns utils.ErrNotFound when no such bookmark exists.
	Delete(ctx context.Context, jobSeekerID, jobID primitive.ObjectID) error
	Exists(ctx context.Context, jobSeekerID, jobID primitive.ObjectID) (bool, error)
	ListForJobSeeker(ctx context.Context, jobSeekerID primitive.ObjectID) ([]models.BookmarkView, error)
	DeleteByJob(ctx context.Context, jobID primitive.ObjectID) (int64, error)
}

type bookmarkRepo struct {
	col *mongo.Collection
}

func NewBookmarkRepo(db *mongo.Database) BookmarkRepository {
	return &bookmarkRepo{col: db.Collection("bookmarks")}
}

func (r *bookmarkRepo) Create(ctx context.Context, b *models.Bookmark) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, b)
	return mapErr(err)
}

func (r *bookmarkRepo) Delete(ctx context.Context, jobSeekerID, jobID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"job_seeker": jobSeekerID, "job": jobID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *bookmarkRepo) Exists(ctx context.Context, jobSeekerID, jobID primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx,
		bson.M{"job_seeker": jobSeekerID, "job": jobID},
		options.Count().SetLimit(1),
	)
	return n > 0, err
}

func (r *bookmarkRepo) ListForJobSeeker(ctx context.Context, jobSeekerID primitive.ObjectID) ([]models.BookmarkView, error) {
	cur, err := r.col.Aggregate(ctx, pipeline(
		stage("$match", bson.M{"job_seeker": jobSeekerID}),
		stage("$sort", bson.D{{Key: "created_at", Value: -1}}),
		lookupOne("jobs", "job", "job_info"),
		stage("$match", bson.M{"job_info": bson.M{"$exists": true}}),
		lookupOne("employers", "job_info.employer", "company"),
	))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.BookmarkView{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bookmarkRepo) DeleteByJob(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"job": jobID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
