package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the unique and query indexes the repositories
// rely on. The unique indexes are what enforce one application per
// (job, job_seeker) and one bookmark per (job_seeker, job).
func EnsureMongoIndexes(dbName string) error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoClient.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
		},
		"employers": {
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetName("uniq_user").SetUnique(true),
			},
			{
				// case-insensitive uniqueness on company name
				Keys: bson.D{{Key: "company_name", Value: 1}},
				Options: options.Index().
					SetName("uniq_company_name").
					SetUnique(true).
					SetCollation(&options.Collation{Locale: "en", Strength: 2}),
			},
		},
		"jobseekers": {
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetName("uniq_user").SetUnique(true),
			},
		},
		"jobs": {
			{
				Keys:    bson.D{{Key: "employer", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("by_employer_created"),
			},
			{
				Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "posted_on", Value: -1}},
				Options: options.Index().SetName("by_active_posted"),
			},
		},
		"applicants": {
			{
				Keys:    bson.D{{Key: "job", Value: 1}, {Key: "job_seeker", Value: 1}},
				Options: options.Index().SetName("uniq_job_job_seeker").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "job_seeker", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("by_job_seeker_created"),
			},
		},
		"bookmarks": {
			{
				Keys:    bson.D{{Key: "job_seeker", Value: 1}, {Key: "job", Value: 1}},
				Options: options.Index().SetName("uniq_job_seeker_job").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "job", Value: 1}},
				Options: options.Index().SetName("by_job"),
			},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
