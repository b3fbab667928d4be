package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/cache"
	"github.com/yoockh/jobportal/internal/models"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/storage"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmployerService interface {
	Me(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error)
	Update(ctx context.Context, userID primitive.ObjectID, in UpdateEmployerInput) (*models.Employer, error)
	Public(ctx context.Context, employerID primitive.ObjectID) (*models.PublicCompany, error)
}

type UpdateEmployerInput struct {
	CompanyName        *string
	CompanyWebsite     *string
	CompanyDescription *string
	Location           *string
	Industry           *string
	Logo               *Upload
}

type employerService struct {
	employers mongorepo.EmployerRepository
	jobs      mongorepo.JobRepository
	store     storage.ObjectStore
	cache     cache.Cache
	ttl       time.Duration
	log       *logrus.Logger
}

func NewEmployerService(employers mongorepo.EmployerRepository, jobs mongorepo.JobRepository, store storage.ObjectStore,
	c cache.Cache, ttl time.Duration, log *logrus.Logger) EmployerService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = nopLogger()
	}
	return &employerService{employers: employers, jobs: jobs, store: store, cache: c, ttl: ttl, log: log}
}

func (s *employerService) Me(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error) {
	const op = "EmployerService.Me"
	return employerByUser(ctx, s.employers, op, userID)
}

func trimmed(p *string) string { return strings.TrimSpace(*p) }

func (s *employerService) Update(ctx context.Context, userID primitive.ObjectID, in UpdateEmployerInput) (*models.Employer, error) {
	const op = "EmployerService.Update"

	e, err := employerByUser(ctx, s.employers, op, userID)
	if err != nil {
		return nil, err
	}

	if in.CompanyName != nil {
		name := trimmed(in.CompanyName)
		if name == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "company name cannot be empty", nil)
		}
		if !strings.EqualFold(name, e.CompanyName) {
			taken, err := s.employers.CompanyNameTaken(ctx, name, e.ID)
			if err != nil {
				return nil, utils.E(utils.CodeInternal, op, "failed to check company name", err)
			}
			if taken {
				return nil, utils.E(utils.CodeConflict, op, "company name is already registered", nil)
			}
		}
		e.CompanyName = name
	}
	if in.CompanyWebsite != nil {
		e.CompanyWebsite = trimmed(in.CompanyWebsite)
	}
	if in.CompanyDescription != nil {
		e.CompanyDescription = trimmed(in.CompanyDescription)
	}
	if in.Location != nil {
		e.Location = trimmed(in.Location)
	}
	if in.Industry != nil {
		e.Industry = trimmed(in.Industry)
	}

	var oldLogo *models.FileRef
	if !in.Logo.Empty() {
		ref, err := putFile(ctx, s.store, op, "company-logos", e.ID.Hex(), in.Logo)
		if err != nil {
			return nil, err
		}
		oldLogo, e.CompanyLogo = e.CompanyLogo, ref
	}

	if err := s.employers.Update(ctx, e); err != nil {
		if !in.Logo.Empty() {
			dropFile(ctx, s.store, s.log, e.CompanyLogo)
		}
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "company name is already registered", err)
		}
		return nil, lookupErr(op, "employer profile", err)
	}

	dropFile(ctx, s.store, s.log, oldLogo)
	if err := s.cache.Del(ctx, cache.CompanyKey(e.ID.Hex())); err != nil {
		s.log.WithError(err).WithField("employer_id", e.ID.Hex()).Warn("failed to invalidate company cache")
	}
	return e, nil
}

func (s *employerService) Public(ctx context.Context, employerID primitive.ObjectID) (*models.PublicCompany, error) {
	const op = "EmployerService.Public"

	key := cache.CompanyKey(employerID.Hex())
	var cached models.PublicCompany
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("company cache read failed")
	} else if hit {
		return &cached, nil
	}

	e, err := s.employers.GetByID(ctx, employerID)
	if err != nil {
		return nil, lookupErr(op, "company", err)
	}
	jobs, err := s.jobs.ListActiveByEmployer(ctx, employerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list company jobs", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	out := &models.PublicCompany{Employer: e, Jobs: jobs}
	if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("company cache write failed")
	}
	return out, nil
}
