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

type JobSeekerRepository interface {
	Create(ctx context.Context, s *models.JobSeeker) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.JobSeeker, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.JobSeeker, error)
	UpdateProfile(ctx context.Context, s *models.JobSeeker) error

	// ConsumeAICredit resets the usage when dayKey is a new day and then
	// takes one credit of feature. Returns utils.ErrQuotaExhausted when the
	// counter is already zero and utils.ErrNotFound when no such profile
	// exists.
	ConsumeAICredit(ctx context.Context, id primitive.ObjectID, feature models.AIFeature, dayKey string) (*models.AIUsage, error)
}

type jobSeekerRepo struct {
	col *mongo.Collection
}

func NewJobSeekerRepo(db *mongo.Database) JobSeekerRepository {
	return &jobSeekerRepo{col: db.Collection("jobseekers")}
}

func (r *jobSeekerRepo) Create(ctx context.Context, s *models.JobSeeker) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.Skills == nil {
		s.Skills = []string{}
	}
	if s.Education == nil {
		s.Education = []models.Education{}
	}
	if s.Experience == nil {
		s.Experience = []models.Experience{}
	}
	_, err := r.col.InsertOne(ctx, s)
	return mapErr(err)
}

func (r *jobSeekerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.JobSeeker, error) {
	var s models.JobSeeker
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *jobSeekerRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.JobSeeker, error) {
	var s models.JobSeeker
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&s); err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *jobSeekerRepo) UpdateProfile(ctx context.Context, s *models.JobSeeker) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": s.ID},
		bson.M{"$set": bson.M{
			"bio":           s.Bio,
			"profile_image": s.ProfileImage,
			"resume":        s.Resume,
			"skills":        s.Skills,
			"education":     s.Education,
			"experience":    s.Experience,
			"updated_at":    s.UpdatedAt,
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

func (r *jobSeekerRepo) ConsumeAICredit(ctx context.Context, id primitive.ObjectID, feature models.AIFeature, dayKey string) (*models.AIUsage, error) {
	field := feature.CounterField()
	if field == "" {
		return nil, utils.ErrUnknownFeature
	}

	// 1) day rollover: matches a stale date and a missing ai_usage alike.
	// Only the first request of the day matches, so a reset never refills
	// a credit already taken today.
	if _, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "ai_usage.last_reset_date": bson.M{"$ne": dayKey}},
		bson.M{"$set": bson.M{"ai_usage": models.FreshAIUsage(dayKey)}},
	); err != nil {
		return nil, err
	}

	// 2) conditional decrement
	var out struct {
		AIUsage models.AIUsage `bson:"ai_usage"`
	}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, field: bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{field: -1}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"ai_usage": 1}),
	).Decode(&out)
	if err != nil {
		if mapErr(err) != utils.ErrNotFound {
			return nil, err
		}
		// no match: either the counter is zero or the profile is gone
		n, cerr := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if cerr != nil {
			return nil, cerr
		}
		if n == 0 {
			return nil, utils.ErrNotFound
		}
		return nil, utils.ErrQuotaExhausted
	}
	return &out.AIUsage, nil
}
