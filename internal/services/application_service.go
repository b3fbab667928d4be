package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/notify"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/storage"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationService interface {
	Apply(ctx context.Context, userID, jobID primitive.ObjectID, coverLetter string, resume *Upload) (*models.Applicant, error)
	MyApplications(ctx context.Context, userID primitive.ObjectID) ([]models.SeekerApplication, error)
	// EmployerApplicants lists applications to the caller's jobs, or to one
	// of them when jobID is non-zero.
	EmployerApplicants(ctx context.Context, userID, jobID primitive.ObjectID) ([]models.EmployerApplication, error)
	UpdateStatus(ctx context.Context, userID, applicationID primitive.ObjectID, status models.ApplicationStatus) (*models.Applicant, error)
}

type applicationService struct {
	applicants mongorepo.ApplicantRepository
	jobs       mongorepo.JobRepository
	seekers    mongorepo.JobSeekerRepository
	employers  mongorepo.EmployerRepository
	store      storage.ObjectStore
	notifier   notify.Publisher
	log        *logrus.Logger
}

func NewApplicationService(applicants mongorepo.ApplicantRepository, jobs mongorepo.JobRepository,
	seekers mongorepo.JobSeekerRepository, employers mongorepo.EmployerRepository,
	store storage.ObjectStore, notifier notify.Publisher, log *logrus.Logger) ApplicationService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if log == nil {
		log = nopLogger()
	}
	return &applicationService{
		applicants: applicants,
		jobs:       jobs,
		seekers:    seekers,
		employers:  employers,
		store:      store,
		notifier:   notifier,
		log:        log,
	}
}

func alreadyApplied(op string, err error) error {
	return utils.E(utils.CodeConflict, op, "already applied to this job", err)
}

func (s *applicationService) Apply(ctx context.Context, userID, jobID primitive.ObjectID, coverLetter string, resume *Upload) (*models.Applicant, error) {
	const op = "ApplicationService.Apply"

	if resume.Empty() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume file is required", nil)
	}

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, lookupErr(op, "job", err)
	}
	if !job.IsActive {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job is not accepting applications", nil)
	}

	exists, err := s.applicants.Exists(ctx, job.ID, seeker.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing application", err)
	}
	if exists {
		return nil, alreadyApplied(op, nil)
	}

	ref, err := putFile(ctx, s.store, op, "applications", job.ID.Hex(), resume)
	if err != nil {
		return nil, err
	}

	a := &models.Applicant{
		Job:         job.ID,
		JobSeeker:   seeker.ID,
		Status:      models.StatusApplied,
		CoverLetter: strings.TrimSpace(coverLetter),
		Resume:      *ref,
	}
	if err := s.applicants.Create(ctx, a); err != nil {
		dropFile(ctx, s.store, s.log, ref)
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, alreadyApplied(op, err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}

	s.log.WithFields(logrus.Fields{
		"application_id": a.ID.Hex(),
		"job_id":         job.ID.Hex(),
		"job_seeker_id":  seeker.ID.Hex(),
	}).Info("application submitted")
	return a, nil
}

func (s *applicationService) MyApplications(ctx context.Context, userID primitive.ObjectID) ([]models.SeekerApplication, error) {
	const op = "ApplicationService.MyApplications"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	out, err := s.applicants.ListForJobSeeker(ctx, seeker.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	if out == nil {
		out = []models.SeekerApplication{}
	}
	return out, nil
}

func (s *applicationService) EmployerApplicants(ctx context.Context, userID, jobID primitive.ObjectID) ([]models.EmployerApplication, error) {
	const op = "ApplicationService.EmployerApplicants"

	e, err := employerByUser(ctx, s.employers, op, userID)
	if err != nil {
		return nil, err
	}

	var jobIDs []primitive.ObjectID
	if !jobID.IsZero() {
		job, err := s.jobs.GetByID(ctx, jobID)
		if err != nil {
			return nil, lookupErr(op, "job", err)
		}
		if job.Employer != e.ID {
			return nil, utils.E(utils.CodeForbidden, op, "job belongs to another employer", nil)
		}
		jobIDs = []primitive.ObjectID{job.ID}
	} else {
		if jobIDs, err = s.jobs.IDsByEmployer(ctx, e.ID); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to list employer jobs", err)
		}
	}

	if len(jobIDs) == 0 {
		return []models.EmployerApplication{}, nil
	}
	out, err := s.applicants.ListForJobs(ctx, jobIDs)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applicants", err)
	}
	if out == nil {
		out = []models.EmployerApplication{}
	}
	return out, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userID, applicationID primitive.ObjectID, status models.ApplicationStatus) (*models.Applicant, error) {
	const op = "ApplicationService.UpdateStatus"

	a, err := s.applicants.GetByID(ctx, applicationID)
	if err != nil {
		return nil, lookupErr(op, "application", err)
	}
	e, err := employerByUser(ctx, s.employers, op, userID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, a.Job)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	// a deleted job has no owner left to act on its applications
	if job == nil || job.Employer != e.ID {
		return nil, utils.E(utils.CodeForbidden, op, "application belongs to another employer's job", nil)
	}
	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be one of Applied, Shortlisted, Rejected, Hired", nil)
	}

	updated, err := s.applicants.UpdateStatus(ctx, a.ID, status)
	if err != nil {
		return nil, lookupErr(op, "application", err)
	}

	ev := notify.Event{
		Type:          notify.TypeApplicationStatus,
		ApplicationID: updated.ID.Hex(),
		JobID:         updated.Job.Hex(),
		Status:        string(updated.Status),
	}
	if err := s.notifier.Publish(ctx, updated.JobSeeker.Hex(), ev); err != nil {
		s.log.WithError(err).WithField("application_id", updated.ID.Hex()).Warn("failed to publish status notification")
	}
	return updated, nil
}
