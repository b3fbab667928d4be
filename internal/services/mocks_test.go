package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/notify"
	"github.com/yoockh/jobportal/internal/providers/llm"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateAccount(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSeekerRepo struct{ mock.Mock }

func (m *mockSeekerRepo) Create(ctx context.Context, s *models.JobSeeker) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSeekerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.JobSeeker, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.JobSeeker)
	return s, args.Error(1)
}

func (m *mockSeekerRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.JobSeeker, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*models.JobSeeker)
	return s, args.Error(1)
}

func (m *mockSeekerRepo) UpdateProfile(ctx context.Context, s *models.JobSeeker) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSeekerRepo) ConsumeAICredit(ctx context.Context, id primitive.ObjectID, feature models.AIFeature, dayKey string) (*models.AIUsage, error) {
	args := m.Called(ctx, id, feature, dayKey)
	u, _ := args.Get(0).(*models.AIUsage)
	return u, args.Error(1)
}

type mockEmployerRepo struct{ mock.Mock }

func (m *mockEmployerRepo) Create(ctx context.Context, e *models.Employer) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEmployerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Employer, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*models.Employer)
	return e, args.Error(1)
}

func (m *mockEmployerRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).(*models.Employer)
	return e, args.Error(1)
}

func (m *mockEmployerRepo) CompanyNameTaken(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, name, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *mockEmployerRepo) Update(ctx context.Context, e *models.Employer) error {
	return m.Called(ctx, e).Error(0)
}

type mockJobRepo struct{ mock.Mock }

func (m *mockJobRepo) Create(ctx context.Context, j *models.Job) error {
	args := m.Called(ctx, j)
	if args.Error(0) == nil && j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockJobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*models.Job)
	if j != nil {
		cp := *j
		return &cp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobRepo) GetDetail(ctx context.Context, id primitive.ObjectID) (*models.JobDetail, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*models.JobDetail)
	return d, args.Error(1)
}

func (m *mockJobRepo) List(ctx context.Context, f models.JobFilter) ([]models.JobDetail, int64, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]models.JobDetail)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *mockJobRepo) ListByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.EmployerJob, error) {
	args := m.Called(ctx, employerID)
	rows, _ := args.Get(0).([]models.EmployerJob)
	return rows, args.Error(1)
}

func (m *mockJobRepo) ListActiveByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.Job, error) {
	args := m.Called(ctx, employerID)
	rows, _ := args.Get(0).([]models.Job)
	return rows, args.Error(1)
}

func (m *mockJobRepo) IDsByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, employerID)
	ids, _ := args.Get(0).([]primitive.ObjectID)
	return ids, args.Error(1)
}

func (m *mockJobRepo) Update(ctx context.Context, j *models.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *mockJobRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockJobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type mockApplicantRepo struct{ mock.Mock }

func (m *mockApplicantRepo) Create(ctx context.Context, a *models.Applicant) error {
	args := m.Called(ctx, a)
	if args.Error(0) == nil && a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockApplicantRepo) Exists(ctx context.Context, jobID, jobSeekerID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, jobID, jobSeekerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockApplicantRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Applicant, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Applicant)
	return a, args.Error(1)
}

func (m *mockApplicantRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) (*models.Applicant, error) {
	args := m.Called(ctx, id, status)
	a, _ := args.Get(0).(*models.Applicant)
	return a, args.Error(1)
}

func (m *mockApplicantRepo) ListForJobSeeker(ctx context.Context, jobSeekerID primitive.ObjectID) ([]models.SeekerApplication, error) {
	args := m.Called(ctx, jobSeekerID)
	rows, _ := args.Get(0).([]models.SeekerApplication)
	return rows, args.Error(1)
}

func (m *mockApplicantRepo) ListForJobs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.EmployerApplication, error) {
	args := m.Called(ctx, jobIDs)
	rows, _ := args.Get(0).([]models.EmployerApplication)
	return rows, args.Error(1)
}

type mockBookmarkRepo struct{ mock.Mock }

func (m *mockBookmarkRepo) Create(ctx context.Context, b *models.Bookmark) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookmarkRepo) Delete(ctx context.Context, jobSeekerID, jobID primitive.ObjectID) error {
	return m.Called(ctx, jobSeekerID, jobID).Error(0)
}

func (m *mockBookmarkRepo) Exists(ctx context.Context, jobSeekerID, jobID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, jobSeekerID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookmarkRepo) ListForJobSeeker(ctx context.Context, jobSeekerID primitive.ObjectID) ([]models.BookmarkView, error) {
	args := m.Called(ctx, jobSeekerID)
	rows, _ := args.Get(0).([]models.BookmarkView)
	return rows, args.Error(1)
}

func (m *mockBookmarkRepo) DeleteByJob(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

type mockAnalysisRepo struct{ mock.Mock }

func (m *mockAnalysisRepo) Insert(ctx context.Context, l *models.AnalysisLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockAnalysisRepo) ListByJobSeeker(ctx context.Context, jobSeekerID string, limit int) ([]models.AnalysisLog, error) {
	args := m.Called(ctx, jobSeekerID, limit)
	rows, _ := args.Get(0).([]models.AnalysisLog)
	return rows, args.Error(1)
}

type mockLLM struct{ mock.Mock }

func (m *mockLLM) Complete(ctx context.Context, prompt string, files ...llm.File) (string, error) {
	args := m.Called(ctx, prompt, files)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Close() error { return nil }

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, jobSeekerID string, ev notify.Event) error {
	return m.Called(ctx, jobSeekerID, ev).Error(0)
}

// memStore is an in-memory object store.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failPut bool
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (s *memStore) Put(_ context.Context, key, _ string, r io.Reader) (models.FileRef, error) {
	if s.failPut {
		return models.FileRef{}, io.ErrUnexpectedEOF
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return models.FileRef{}, err
	}
	s.mu.Lock()
	s.objects[key] = b
	s.mu.Unlock()
	return models.FileRef{Key: key, URL: "https://storage.test/" + key}, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memStore) URI(key string) string { return "gs://test-bucket/" + key }

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// memApplicants enforces the (job, job_seeker) uniqueness the way the
// unique index does.
type memApplicants struct {
	mockApplicantRepo
	mu   sync.Mutex
	rows map[[2]primitive.ObjectID]*models.Applicant
}

func newMemApplicants() *memApplicants {
	return &memApplicants{rows: map[[2]primitive.ObjectID]*models.Applicant{}}
}

func (m *memApplicants) Create(_ context.Context, a *models.Applicant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]primitive.ObjectID{a.Job, a.JobSeeker}
	if _, ok := m.rows[k]; ok {
		return utils.ErrDuplicate
	}
	a.ID = primitive.NewObjectID()
	m.rows[k] = a
	return nil
}

func (m *memApplicants) Exists(_ context.Context, jobID, jobSeekerID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[[2]primitive.ObjectID{jobID, jobSeekerID}]
	return ok, nil
}

func (m *memApplicants) GetByID(_ context.Context, id primitive.ObjectID) (*models.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (m *memApplicants) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ApplicationStatus) (*models.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.ID == id {
			a.Status = status
			cp := *a
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (m *memApplicants) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func upload(name, contentType, body string) *Upload {
	return &Upload{Filename: name, ContentType: contentType, Size: int64(len(body)), Body: strings.NewReader(body)}
}

// memSeekers mirrors the conditional reset and decrement of the Mongo
// repository.
type memSeekers struct {
	mockSeekerRepo
	mu     sync.Mutex
	byUser map[primitive.ObjectID]*models.JobSeeker
}

func newMemSeekers(seekers ...*models.JobSeeker) *memSeekers {
	m := &memSeekers{byUser: map[primitive.ObjectID]*models.JobSeeker{}}
	for _, s := range seekers {
		cp := *s
		if s.AIUsage != nil {
			u := *s.AIUsage
			cp.AIUsage = &u
		}
		m.byUser[s.User] = &cp
	}
	return m
}

func (m *memSeekers) GetByUserID(_ context.Context, userID primitive.ObjectID) (*models.JobSeeker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *s
	if s.AIUsage != nil {
		u := *s.AIUsage
		cp.AIUsage = &u
	}
	return &cp, nil
}

func (m *memSeekers) ConsumeAICredit(_ context.Context, id primitive.ObjectID, feature models.AIFeature, dayKey string) (*models.AIUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byUser {
		if s.ID != id {
			continue
		}
		if s.AIUsage == nil || s.AIUsage.LastResetDate != dayKey {
			fresh := models.FreshAIUsage(dayKey)
			s.AIUsage = &fresh
		}
		switch {
		case s.AIUsage.Remaining(feature) <= 0:
			return nil, utils.ErrQuotaExhausted
		case feature == models.FeatureResume:
			s.AIUsage.ResumeAnalysisCount--
		default:
			s.AIUsage.JobMatchCount--
		}
		out := *s.AIUsage
		return &out, nil
	}
	return nil, utils.ErrNotFound
}

func (m *memSeekers) usage(userID primitive.ObjectID) *models.AIUsage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.byUser[userID].AIUsage; u != nil {
		cp := *u
		return &cp
	}
	return nil
}
