package mongo

import (
	"errors"

	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mapErr converts driver errors into repository sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return utils.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return utils.ErrDuplicate
	default:
		return err
	}
}

// lookupOne joins a single document from coll into field, keeping the
// outer document when nothing matches.
func lookupOne(coll, localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: coll},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + as},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func pipeline(stages ...[]bson.D) mongo.Pipeline {
	out := mongo.Pipeline{}
	for _, s := range stages {
		out = append(out, s...)
	}
	return out
}

func stage(key string, value any) []bson.D {
	return []bson.D{{{Key: key, Value: value}}}
}
