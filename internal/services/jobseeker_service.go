package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/models"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/storage"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobSeekerService interface {
	Me(ctx context.Context, userID primitive.ObjectID) (*models.JobSeeker, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, in UpdateJobSeekerInput) (*models.JobSeeker, error)
}

// UpdateJobSeekerInput holds the fields a jobseeker may change. Nil means
// "leave as is".
type UpdateJobSeekerInput struct {
	Bio          *string
	Skills       *[]string
	Education    *[]models.Education
	Experience   *[]models.Experience
	ProfileImage *Upload
	Resume       *Upload
}

type jobSeekerService struct {
	seekers mongorepo.JobSeekerRepository
	store   storage.ObjectStore
	log     *logrus.Logger
}

func NewJobSeekerService(seekers mongorepo.JobSeekerRepository, store storage.ObjectStore, log *logrus.Logger) JobSeekerService {
	if log == nil {
		log = nopLogger()
	}
	return &jobSeekerService{seekers: seekers, store: store, log: log}
}

func (s *jobSeekerService) Me(ctx context.Context, userID primitive.ObjectID) (*models.JobSeeker, error) {
	const op = "JobSeekerService.Me"
	return seekerByUser(ctx, s.seekers, op, userID)
}

func (s *jobSeekerService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in UpdateJobSeekerInput) (*models.JobSeeker, error) {
	const op = "JobSeekerService.UpdateProfile"

	p, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Skills != nil {
		p.Skills = NormalizeSkills(*in.Skills)
	}
	if in.Education != nil {
		p.Education = *in.Education
	}
	if in.Experience != nil {
		for _, e := range *in.Experience {
			if e.StartDate != nil && e.EndDate != nil && e.EndDate.Before(*e.StartDate) {
				return nil, utils.E(utils.CodeInvalidArgument, op, "experience end date is before start date", nil)
			}
		}
		p.Experience = *in.Experience
	}

	var replaced, added []*models.FileRef
	if !in.ProfileImage.Empty() {
		ref, err := putFile(ctx, s.store, op, "profile-images", p.ID.Hex(), in.ProfileImage)
		if err != nil {
			return nil, err
		}
		replaced, added = append(replaced, p.ProfileImage), append(added, ref)
		p.ProfileImage = ref
	}
	if !in.Resume.Empty() {
		ref, err := putFile(ctx, s.store, op, "resumes", p.ID.Hex(), in.Resume)
		if err != nil {
			for _, f := range added {
				dropFile(ctx, s.store, s.log, f)
			}
			return nil, err
		}
		replaced, added = append(replaced, p.Resume), append(added, ref)
		p.Resume = ref
	}

	if err := s.seekers.UpdateProfile(ctx, p); err != nil {
		for _, f := range added {
			dropFile(ctx, s.store, s.log, f)
		}
		return nil, lookupErr(op, "jobseeker profile", err)
	}

	for _, old := range replaced {
		dropFile(ctx, s.store, s.log, old)
	}
	return p, nil
}
