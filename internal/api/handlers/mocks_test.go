package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) RegisterJobSeeker(ctx context.Context, in services.RegisterJobSeekerInput) (*services.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *mockAuth) RegisterEmployer(ctx context.Context, in services.RegisterEmployerInput) (*services.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*services.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *mockAuth) Me(ctx context.Context, userID primitive.ObjectID) (*services.Account, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*services.Account)
	return a, args.Error(1)
}

func (m *mockAuth) UpdateAccount(ctx context.Context, userID primitive.ObjectID, in services.UpdateAccountInput) (*models.User, error) {
	args := m.Called(ctx, userID, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockSeekers struct{ mock.Mock }

func (m *mockSeekers) Me(ctx context.Context, userID primitive.ObjectID) (*models.JobSeeker, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*models.JobSeeker)
	return s, args.Error(1)
}

func (m *mockSeekers) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in services.UpdateJobSeekerInput) (*models.JobSeeker, error) {
	args := m.Called(ctx, userID, in)
	s, _ := args.Get(0).(*models.JobSeeker)
	return s, args.Error(1)
}

type mockJobs struct{ mock.Mock }

func (m *mockJobs) List(ctx context.Context, f models.JobFilter) (*models.JobPage, error) {
	args := m.Called(ctx, f)
	p, _ := args.Get(0).(*models.JobPage)
	return p, args.Error(1)
}

func (m *mockJobs) Get(ctx context.Context, jobID primitive.ObjectID) (*models.JobDetail, error) {
	args := m.Called(ctx, jobID)
	d, _ := args.Get(0).(*models.JobDetail)
	return d, args.Error(1)
}

func (m *mockJobs) Create(ctx context.Context, userID primitive.ObjectID, in services.JobInput) (*models.Job, error) {
	args := m.Called(ctx, userID, in)
	j, _ := args.Get(0).(*models.Job)
	return j, args.Error(1)
}

func (m *mockJobs) Update(ctx context.Context, userID, jobID primitive.ObjectID, in services.JobInput) (*models.Job, error) {
	args := m.Called(ctx, userID, jobID, in)
	j, _ := args.Get(0).(*models.Job)
	return j, args.Error(1)
}

func (m *mockJobs) Delete(ctx context.Context, userID, jobID primitive.ObjectID) error {
	return m.Called(ctx, userID, jobID).Error(0)
}

func (m *mockJobs) Toggle(ctx context.Context, userID, jobID primitive.ObjectID) (*models.Job, error) {
	args := m.Called(ctx, userID, jobID)
	j, _ := args.Get(0).(*models.Job)
	return j, args.Error(1)
}

func (m *mockJobs) MyJobs(ctx context.Context, userID primitive.ObjectID) ([]models.EmployerJob, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.EmployerJob)
	return rows, args.Error(1)
}

type mockApplications struct{ mock.Mock }

func (m *mockApplications) Apply(ctx context.Context, userID, jobID primitive.ObjectID, coverLetter string, resume *services.Upload) (*models.Applicant, error) {
	args := m.Called(ctx, userID, jobID, coverLetter, resume)
	a, _ := args.Get(0).(*models.Applicant)
	return a, args.Error(1)
}

func (m *mockApplications) MyApplications(ctx context.Context, userID primitive.ObjectID) ([]models.SeekerApplication, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.SeekerApplication)
	return rows, args.Error(1)
}

func (m *mockApplications) EmployerApplicants(ctx context.Context, userID, jobID primitive.ObjectID) ([]models.EmployerApplication, error) {
	args := m.Called(ctx, userID, jobID)
	rows, _ := args.Get(0).([]models.EmployerApplication)
	return rows, args.Error(1)
}

func (m *mockApplications) UpdateStatus(ctx context.Context, userID, applicationID primitive.ObjectID, status models.ApplicationStatus) (*models.Applicant, error) {
	args := m.Called(ctx, userID, applicationID, status)
	a, _ := args.Get(0).(*models.Applicant)
	return a, args.Error(1)
}

type mockBookmarks struct{ mock.Mock }

func (m *mockBookmarks) Add(ctx context.Context, userID, jobID primitive.ObjectID) (*models.Bookmark, error) {
	args := m.Called(ctx, userID, jobID)
	b, _ := args.Get(0).(*models.Bookmark)
	return b, args.Error(1)
}

func (m *mockBookmarks) Remove(ctx context.Context, userID, jobID primitive.ObjectID) error {
	return m.Called(ctx, userID, jobID).Error(0)
}

func (m *mockBookmarks) Check(ctx context.Context, userID, jobID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookmarks) List(ctx context.Context, userID primitive.ObjectID) ([]models.BookmarkView, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.BookmarkView)
	return rows, args.Error(1)
}

type mockAI struct{ mock.Mock }

func (m *mockAI) AnalyzeResume(ctx context.Context, userID primitive.ObjectID) (*services.ResumeAnalysisResult, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*services.ResumeAnalysisResult)
	return r, args.Error(1)
}

func (m *mockAI) MatchJob(ctx context.Context, userID, jobID primitive.ObjectID) (*services.JobMatchResult, error) {
	args := m.Called(ctx, userID, jobID)
	r, _ := args.Get(0).(*services.JobMatchResult)
	return r, args.Error(1)
}

func (m *mockAI) GenerateJobDescription(ctx context.Context, in services.JobDescriptionInput) (*models.JobDescriptionDraft, error) {
	args := m.Called(ctx, in)
	d, _ := args.Get(0).(*models.JobDescriptionDraft)
	return d, args.Error(1)
}

func (m *mockAI) Usage(ctx context.Context, userID primitive.ObjectID) (*models.CreditStatus, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*models.CreditStatus)
	return s, args.Error(1)
}

func (m *mockAI) History(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.AnalysisLog, error) {
	args := m.Called(ctx, userID, limit)
	rows, _ := args.Get(0).([]models.AnalysisLog)
	return rows, args.Error(1)
}
