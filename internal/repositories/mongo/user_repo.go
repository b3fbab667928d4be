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
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateAccount(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	_, err := r.col.InsertOne(ctx, u)
	return mapErr(err)
}

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *userRepo) UpdateAccount(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{
			"name":          u.Name,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"updated_at":    u.UpdatedAt,
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

func (r *userRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
