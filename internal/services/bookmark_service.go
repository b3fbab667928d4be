package services

import (
	"context"
	"errors"

	"github.com/yoockh/jobportal/internal/models"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookmarkService interface {
	Add(ctx context.Context, userID, jobID primitive.ObjectID) (*models.Bookmark, error)
	Remove(ctx context.Context, userID, jobID primitive.ObjectID) error
	Check(ctx context.Context, userID, jobID primitive.ObjectID) (bool, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]models.BookmarkView, error)
}

type bookmarkService struct {
	bookmarks mongorepo.BookmarkRepository
	jobs      mongorepo.JobRepository
	seekers   mongorepo.JobSeekerRepository
}

func NewBookmarkService(bookmarks mongorepo.BookmarkRepository, jobs mongorepo.JobRepository, seekers mongorepo.JobSeekerRepository) BookmarkService {
	return &bookmarkService{bookmarks: bookmarks, jobs: jobs, seekers: seekers}
}

func (s *bookmarkService) Add(ctx context.Context, userID, jobID primitive.ObjectID) (*models.Bookmark, error) {
	const op = "BookmarkService.Add"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, lookupErr(op, "job", err)
	}

	b := &models.Bookmark{JobSeeker: seeker.ID, Job: jobID}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "job already bookmarked", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create bookmark", err)
	}
	return b, nil
}

func (s *bookmarkService) Remove(ctx context.Context, userID, jobID primitive.ObjectID) error {
	const op = "BookmarkService.Remove"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return err
	}
	if err := s.bookmarks.Delete(ctx, seeker.ID, jobID); err != nil {
		return lookupErr(op, "bookmark", err)
	}
	return nil
}

func (s *bookmarkService) Check(ctx context.Context, userID, jobID primitive.ObjectID) (bool, error) {
	const op = "BookmarkService.Check"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return false, err
	}
	ok, err := s.bookmarks.Exists(ctx, seeker.ID, jobID)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to check bookmark", err)
	}
	return ok, nil
}

func (s *bookmarkService) List(ctx context.Context, userID primitive.ObjectID) ([]models.BookmarkView, error) {
	const op = "BookmarkService.List"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	out, err := s.bookmarks.ListForJobSeeker(ctx, seeker.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list bookmarks", err)
	}
	if out == nil {
		out = []models.BookmarkView{}
	}
	return out, nil
}
