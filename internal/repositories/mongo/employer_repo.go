package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployerRepository interface {
	Create(ctx context.Context, e *models.Employer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Employer, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error)
	CompanyNameTaken(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error)
	Update(ctx context.Context, e *models.Employer) error
}

type employerRepo struct {
	col *mongo.Collection
}

func NewEmployerRepo(db *mongo.Database) EmployerRepository {
	return &employerRepo{col: db.Collection("employers")}
}

// same collation as the uniq_company_name index
var companyCollation = &options.Collation{Locale: "en", Strength: 2}

func (r *employerRepo) Create(ctx context.Context, e *models.Employer) error {
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	e.CompanyName = strings.TrimSpace(e.CompanyName)
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, e)
	return mapErr(err)
}

func (r *employerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Employer, error) {
	var e models.Employer
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (r *employerRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error) {
	var e models.Employer
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&e); err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (r *employerRepo) CompanyNameTaken(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"company_name": strings.TrimSpace(name)}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := r.col.CountDocuments(ctx, filter,
		options.Count().SetCollation(companyCollation).SetLimit(1))
	return n > 0, err
}

func (r *employerRepo) Update(ctx context.Context, e *models.Employer) error {
	e.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": e.ID},
		bson.M{"$set": bson.M{
			"company_name":        strings.TrimSpace(e.CompanyName),
			"company_logo":        e.CompanyLogo,
			"company_website":     e.CompanyWebsite,
			"company_description": e.CompanyDescription,
			"location":            e.Location,
			"industry":            e.Industry,
			"updated_at":          e.UpdatedAt,
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
