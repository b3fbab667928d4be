package mongo

import (
	"context"
	"time"

	"github.com/yoockh/jobportal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ApplicantRepository interface {
	// Create returns utils.ErrDuplicate when the (job, job_seeker) pair exists.
	Create(ctx context.Context, a *models.Applicant) error
	Exists(ctx context.Context, jobID, jobSeekerID primitive.ObjectID) (bool, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Applicant, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) (*models.Applicant, error)
	ListForJobSeeker(ctx context.Context, jobSeekerID primitive.ObjectID) ([]models.SeekerApplication, error)
	ListForJobs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.EmployerApplication, error)
}

type applicantRepo struct {
	col *mongo.Collection
}

func NewApplicantRepo(db *mongo.Database) ApplicantRepository {
	return &applicantRepo{col: db.Collection("applicants")}
}

func (r *applicantRepo) Create(ctx context.Context, a *models.Applicant) error {
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, a)
	return mapErr(err)
}

func (r *applicantRepo) Exists(ctx context.Context, jobID, jobSeekerID primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx,
		bson.M{"job": jobID, "job_seeker": jobSeekerID},
		options.Count().SetLimit(1),
	)
	return n > 0, err
}

func (r *applicantRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Applicant, error) {
	var a models.Applicant
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *applicantRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) (*models.Applicant, error) {
	var a models.Applicant
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *applicantRepo) ListForJobSeeker(ctx context.Context, jobSeekerID primitive.ObjectID) ([]models.SeekerApplication, error) {
	cur, err := r.col.Aggregate(ctx, pipeline(
		stage("$match", bson.M{"job_seeker": jobSeekerID}),
		stage("$sort", bson.D{{Key: "created_at", Value: -1}}),
		lookupOne("jobs", "job", "job_info"),
		// applications whose job was deleted drop out here
		stage("$match", bson.M{"job_info": bson.M{"$exists": true}}),
		lookupOne("employers", "job_info.employer", "company"),
	))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.SeekerApplication{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *applicantRepo) ListForJobs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.EmployerApplication, error) {
	out := []models.EmployerApplication{}
	if len(jobIDs) == 0 {
		return out, nil
	}

	cur, err := r.col.Aggregate(ctx, pipeline(
		stage("$match", bson.M{"job": bson.M{"$in": jobIDs}}),
		stage("$sort", bson.D{{Key: "created_at", Value: -1}}),
		lookupOne("jobs", "job", "job_info"),
		lookupOne("jobseekers", "job_seeker", "seeker"),
		lookupOne("users", "seeker.user", "seeker_user"),
		stage("$addFields", bson.M{"seeker_info": bson.M{
			"_id":           "$seeker._id",
			"name":          "$seeker_user.name",
			"email":         "$seeker_user.email",
			"skills":        "$seeker.skills",
			"profile_image": "$seeker.profile_image",
		}}),
		stage("$project", bson.M{"seeker": 0, "seeker_user": 0}),
	))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

