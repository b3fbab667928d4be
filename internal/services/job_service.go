package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/cache"
	"github.com/yoockh/jobportal/internal/models"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

type JobService interface {
	List(ctx context.Context, f models.JobFilter) (*models.JobPage, error)
	Get(ctx context.Context, jobID primitive.ObjectID) (*models.JobDetail, error)
	Create(ctx context.Context, userID primitive.ObjectID, in JobInput) (*models.Job, error)
	Update(ctx context.Context, userID, jobID primitive.ObjectID, in JobInput) (*models.Job, error)
	Delete(ctx context.Context, userID, jobID primitive.ObjectID) error
	Toggle(ctx context.Context, userID, jobID primitive.ObjectID) (*models.Job, error)
	MyJobs(ctx context.Context, userID primitive.ObjectID) ([]models.EmployerJob, error)
}

// JobInput carries job fields. On update nil fields are left untouched.
type JobInput struct {
	Title            *string
	Description      *string
	Requirements     *[]string
	Responsibilities *[]string
	Skills           *[]string
	JobType          *models.JobType
	Location         *string
	Salary           *string
	Experience       *string
	Openings         *int
	IsActive         *bool
}

type jobService struct {
	jobs      mongorepo.JobRepository
	employers mongorepo.EmployerRepository
	bookmarks mongorepo.BookmarkRepository
	cache     cache.Cache
	ttl       time.Duration
	log       *logrus.Logger
}

func NewJobService(jobs mongorepo.JobRepository, employers mongorepo.EmployerRepository, bookmarks mongorepo.BookmarkRepository,
	c cache.Cache, ttl time.Duration, log *logrus.Logger) JobService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = nopLogger()
	}
	return &jobService{jobs: jobs, employers: employers, bookmarks: bookmarks, cache: c, ttl: ttl, log: log}
}

// NormalizePage clamps paging to 1-based pages of at most maxPageLimit rows.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func (s *jobService) List(ctx context.Context, f models.JobFilter) (*models.JobPage, error) {
	const op = "JobService.List"

	if f.JobType != "" && !f.JobType.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid job type", nil)
	}
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)
	f.Skills = NormalizeSkills(f.Skills)

	jobs, total, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return &models.JobPage{Jobs: jobs, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *jobService) Get(ctx context.Context, jobID primitive.ObjectID) (*models.JobDetail, error) {
	const op = "JobService.Get"

	key := cache.JobKey(jobID.Hex())
	var cached models.JobDetail
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("job cache read failed")
	} else if hit {
		return &cached, nil
	}

	d, err := s.jobs.GetDetail(ctx, jobID)
	if err != nil {
		return nil, lookupErr(op, "job", err)
	}
	if err := s.cache.SetJSON(ctx, key, d, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("job cache write failed")
	}
	return d, nil
}

// apply copies the set fields of in onto j.
func (in JobInput) apply(j *models.Job) {
	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		j.Description = strings.TrimSpace(*in.Description)
	}
	if in.Requirements != nil {
		j.Requirements = CleanList(*in.Requirements)
	}
	if in.Responsibilities != nil {
		j.Responsibilities = CleanList(*in.Responsibilities)
	}
	if in.Skills != nil {
		j.Skills = NormalizeSkills(*in.Skills)
	}
	if in.JobType != nil {
		j.JobType = *in.JobType
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.Salary != nil {
		j.Salary = strings.TrimSpace(*in.Salary)
	}
	if in.Experience != nil {
		j.Experience = strings.TrimSpace(*in.Experience)
	}
	if in.Openings != nil {
		j.Openings = *in.Openings
	}
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}
}

func validateJob(op string, j *models.Job) error {
	switch {
	case j.Title == "":
		return utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	case j.Description == "":
		return utils.E(utils.CodeInvalidArgument, op, "description is required", nil)
	case j.Location == "":
		return utils.E(utils.CodeInvalidArgument, op, "location is required", nil)
	case !j.JobType.Valid():
		return utils.E(utils.CodeInvalidArgument, op, "jobType must be one of Full-Time, Part-Time, Internship, Contract", nil)
	case j.Openings < 1:
		return utils.E(utils.CodeInvalidArgument, op, "openings must be at least 1", nil)
	}
	return nil
}

func (s *jobService) Create(ctx context.Context, userID primitive.ObjectID, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	e, err := employerByUser(ctx, s.employers, op, userID)
	if err != nil {
		return nil, err
	}

	j := &models.Job{
		Employer:         e.ID,
		IsActive:         true,
		Openings:         1,
		Requirements:     []string{},
		Responsibilities: []string{},
		Skills:           []string{},
	}
	in.apply(j)
	if err := validateJob(op, j); err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	s.invalidate(ctx, j)
	s.log.WithFields(logrus.Fields{"job_id": j.ID.Hex(), "employer_id": e.ID.Hex()}).Info("job created")
	return j, nil
}

// owned loads a job and checks that it belongs to the caller's company.
func (s *jobService) owned(ctx context.Context, op string, userID, jobID primitive.ObjectID) (*models.Job, error) {
	e, err := employerByUser(ctx, s.employers, op, userID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, lookupErr(op, "job", err)
	}
	if j.Employer != e.ID {
		return nil, utils.E(utils.CodeForbidden, op, "job belongs to another employer", nil)
	}
	return j, nil
}

func (s *jobService) invalidate(ctx context.Context, j *models.Job) {
	keys := []string{cache.JobKey(j.ID.Hex()), cache.CompanyKey(j.Employer.Hex())}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.log.WithError(err).WithField("job_id", j.ID.Hex()).Warn("failed to invalidate job cache")
	}
}

func (s *jobService) Update(ctx context.Context, userID, jobID primitive.ObjectID, in JobInput) (*models.Job, error) {
	const op = "JobService.Update"

	j, err := s.owned(ctx, op, userID, jobID)
	if err != nil {
		return nil, err
	}
	in.apply(j)
	if err := validateJob(op, j); err != nil {
		return nil, err
	}

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, lookupErr(op, "job", err)
	}
	s.invalidate(ctx, j)
	return j, nil
}

// Delete removes the job and its bookmarks. Applications are kept so
// jobseekers still see their history.
func (s *jobService) Delete(ctx context.Context, userID, jobID primitive.ObjectID) error {
	const op = "JobService.Delete"

	j, err := s.owned(ctx, op, userID, jobID)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, j.ID); err != nil {
		return lookupErr(op, "job", err)
	}

	n, err := s.bookmarks.DeleteByJob(ctx, j.ID)
	if err != nil {
		s.log.WithError(err).WithField("job_id", j.ID.Hex()).Error("failed to delete bookmarks of deleted job")
	}
	s.invalidate(ctx, j)
	s.log.WithFields(logrus.Fields{"job_id": j.ID.Hex(), "bookmarks_deleted": n}).Info("job deleted")
	return nil
}

func (s *jobService) Toggle(ctx context.Context, userID, jobID primitive.ObjectID) (*models.Job, error) {
	const op = "JobService.Toggle"

	j, err := s.owned(ctx, op, userID, jobID)
	if err != nil {
		return nil, err
	}
	j.IsActive = !j.IsActive
	if err := s.jobs.SetActive(ctx, j.ID, j.IsActive); err != nil {
		return nil, lookupErr(op, "job", err)
	}
	s.invalidate(ctx, j)
	return j, nil
}

func (s *jobService) MyJobs(ctx context.Context, userID primitive.ObjectID) ([]models.EmployerJob, error) {
	const op = "JobService.MyJobs"

	e, err := employerByUser(ctx, s.employers, op, userID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByEmployer(ctx, e.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	if jobs == nil {
		jobs = []models.EmployerJob{}
	}
	return jobs, nil
}
