package mongo

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	GetDetail(ctx context.Context, id primitive.ObjectID) (*models.JobDetail, error)
	List(ctx context.Context, f models.JobFilter) ([]models.JobDetail, int64, error)
	ListByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.EmployerJob, error)
	ListActiveByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.Job, error)
	IDsByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]primitive.ObjectID, error)
	Update(ctx context.Context, j *models.Job) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type jobRepo struct {
	col *mongo.Collection
}

func NewJobRepo(db *mongo.Database) JobRepository {
	return &jobRepo{col: db.Collection("jobs")}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	now := time.Now().UTC()
	j.CreatedAt, j.UpdatedAt = now, now
	if j.PostedOn.IsZero() {
		j.PostedOn = now
	}
	if j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, j)
	return mapErr(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var j models.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return nil, mapErr(err)
	}
	return &j, nil
}

func (r *jobRepo) GetDetail(ctx context.Context, id primitive.ObjectID) (*models.JobDetail, error) {
	cur, err := r.col.Aggregate(ctx, pipeline(
		stage("$match", bson.M{"_id": id}),
		stage("$limit", 1),
		lookupOne("employers", "employer", "company"),
	))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.JobDetail
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, utils.ErrNotFound
	}
	return &out[0], nil
}

func listFilter(f models.JobFilter) bson.M {
	filter := bson.M{"is_active": true}
	if s := strings.TrimSpace(f.Search); s != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		filter["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(l), Options: "i"}
	}
	if f.JobType != "" {
		filter["job_type"] = f.JobType
	}
	if len(f.Skills) > 0 {
		filter["skills"] = bson.M{"$in": f.Skills}
	}
	return filter
}

func (r *jobRepo) List(ctx context.Context, f models.JobFilter) ([]models.JobDetail, int64, error) {
	filter := listFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((f.Page - 1) * f.Limit)
	if skip < 0 {
		skip = 0
	}
	cur, err := r.col.Aggregate(ctx, pipeline(
		stage("$match", filter),
		stage("$sort", bson.D{{Key: "posted_on", Value: -1}, {Key: "_id", Value: -1}}),
		stage("$skip", skip),
		stage("$limit", int64(f.Limit)),
		lookupOne("employers", "employer", "company"),
	))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.JobDetail{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *jobRepo) ListByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.EmployerJob, error) {
	cur, err := r.col.Aggregate(ctx, pipeline(
		stage("$match", bson.M{"employer": employerID}),
		stage("$sort", bson.D{{Key: "created_at", Value: -1}}),
		stage("$lookup", bson.D{
			{Key: "from", Value: "applicants"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "job"},
			{Key: "as", Value: "applications"},
		}),
		stage("$addFields", bson.M{"applicant_count": bson.M{"$size": "$applications"}}),
		stage("$project", bson.M{"applications": 0}),
	))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.EmployerJob{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jobRepo) ListActiveByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.Job, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"employer": employerID, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "posted_on", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Job{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jobRepo) IDsByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"employer": employerID},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *jobRepo) Update(ctx context.Context, j *models.Job) error {
	j.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": j.ID},
		bson.M{"$set": bson.M{
			"title":            j.Title,
			"description":      j.Description,
			"requirements":     j.Requirements,
			"responsibilities": j.Responsibilities,
			"skills":           j.Skills,
			"job_type":         j.JobType,
			"location":         j.Location,
			"salary":           j.Salary,
			"experience":       j.Experience,
			"is_active":        j.IsActive,
			"openings":         j.Openings,
			"updated_at":       j.UpdatedAt,
		}},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
