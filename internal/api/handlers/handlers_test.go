package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/services"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var cookie = SessionCookie{TTL: time.Hour}

func TestLoginSetsCookie(t *testing.T) {
	svc := new(mockAuth)
	user := &models.User{ID: primitive.NewObjectID(), Email: "a@b.co", Role: models.RoleJobSeeker}
	svc.On("Login", mock.Anything, "a@b.co", "secret1").Return(&services.Session{User: user, Token: "tok"}, nil)
	svc.On("Login", mock.Anything, "a@b.co", "wrong").
		Return(nil, utils.E(utils.CodeUnauthorized, "AuthService.Login", "invalid email or password", nil))

	h := NewAuthHandler(svc, cookie)
	r := newRouter(primitive.NilObjectID)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	w := doJSON(r, http.MethodPost, "/login", map[string]string{"email": "a@b.co", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	set := w.Header().Get("Set-Cookie")
	assert.Contains(t, set, "token=tok")
	assert.Contains(t, set, "HttpOnly")
	assert.Contains(t, set, "SameSite=Lax")
	assert.NotContains(t, w.Body.String(), "tok\"")

	w = doJSON(r, http.MethodPost, "/login", map[string]string{"email": "a@b.co", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))

	w = doJSON(r, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	svc.AssertExpectations(t)
}

func TestSecureCookieIsCrossSite(t *testing.T) {
	svc := new(mockAuth)
	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(&services.Session{User: &models.User{}, Token: "tok"}, nil)

	h := NewAuthHandler(svc, SessionCookie{TTL: time.Hour, Secure: true})
	r := newRouter(primitive.NilObjectID)
	r.POST("/login", h.Login)

	w := doJSON(r, http.MethodPost, "/login", map[string]string{"email": "a@b.co", "password": "secret1"})
	set := w.Header().Get("Set-Cookie")
	assert.Contains(t, set, "Secure")
	assert.Contains(t, set, "SameSite=None")
}

func TestRegisterValidation(t *testing.T) {
	svc := new(mockAuth)
	r := newRouter(primitive.NilObjectID)
	r.POST("/login", NewAuthHandler(svc, cookie).Login)
	r.POST("/jobseeker/register", NewJobSeekerHandler(svc, nil, cookie).Register)
	r.POST("/employer/register", NewEmployerHandler(svc, nil, cookie).Register)

	tests := []struct {
		name string
		path string
		body string
		msg  string
	}{
		{"login bad email", "/login", `{"email":"not-an-email","password":"secret1"}`, "email must be a valid email address"},
		{"login missing password", "/login", `{"email":"a@b.co"}`, "password is required"},
		{"jobseeker missing name", "/jobseeker/register", `{"email":"a@b.co","password":"secret1"}`, "name is required"},
		{"jobseeker short password", "/jobseeker/register", `{"name":"A","email":"a@b.co","password":"123"}`, "password must be at least 6 characters"},
		{"employer missing company", "/employer/register", `{"name":"A","email":"a@b.co","password":"secret1"}`, "companyName is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode(t, w)
			assert.Equal(t, "INVALID_ARGUMENT", body["code"])
			assert.Equal(t, tt.msg, body["message"])
		})
	}

	t.Run("employer multipart missing company", func(t *testing.T) {
		w := doMultipart(t, r, http.MethodPost, "/employer/register",
			map[string]string{"name": "Boss", "email": "b@acme.io", "password": "secret1"},
			formFile{"companyLogo", "logo.png", pngBytes})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "companyName is required", decode(t, w)["message"])
	})
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "RegisterJobSeeker", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "RegisterEmployer", mock.Anything, mock.Anything)
}

func TestUpdateAccountValidation(t *testing.T) {
	svc := new(mockAuth)
	r := newRouter(primitive.NewObjectID())
	r.PUT("/me", NewAuthHandler(svc, cookie).Update)

	w := doJSON(r, http.MethodPut, "/me", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodPut, "/me", `{"password":"123","currentPassword":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterJobSeekerCommaSkills(t *testing.T) {
	svc := new(mockAuth)
	svc.On("RegisterJobSeeker", mock.Anything, mock.MatchedBy(func(in services.RegisterJobSeekerInput) bool {
		return in.Email == "s@x.io" && len(in.Skills) == 2 && in.Skills[1] == "Mongo"
	})).Return(&services.Session{User: &models.User{}, Token: "tok"}, nil)

	h := NewJobSeekerHandler(svc, nil, cookie)
	r := newRouter(primitive.NilObjectID)
	r.POST("/register", h.Register)

	w := doJSON(r, http.MethodPost, "/register", `{"name":"S","email":"s@x.io","password":"secret1","skills":"Go, Mongo"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestRegisterEmployerMultipart(t *testing.T) {
	svc := new(mockAuth)
	svc.On("RegisterEmployer", mock.Anything, mock.MatchedBy(func(in services.RegisterEmployerInput) bool {
		return in.CompanyName == "Acme" && in.Name == "Boss" && in.Logo != nil && in.Logo.ContentType == "image/png"
	})).Return(&services.Session{User: &models.User{}, Token: "tok"}, nil)

	h := NewEmployerHandler(svc, nil, cookie)
	r := newRouter(primitive.NilObjectID)
	r.POST("/register", h.Register)

	w := doMultipart(t, r, http.MethodPost, "/register",
		map[string]string{"name": "Boss", "email": "b@acme.io", "password": "secret1", "companyName": "Acme"},
		formFile{"companyLogo", "logo.png", pngBytes})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	svc.AssertExpectations(t)
}

func TestUpdateJobSeekerMultipart(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := new(mockSeekers)
	svc.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(in services.UpdateJobSeekerInput) bool {
		return in.Bio == nil &&
			in.Skills != nil && len(*in.Skills) == 2 &&
			in.Experience != nil && len(*in.Experience) == 1 && (*in.Experience)[0].StartDate != nil &&
			in.Education == nil &&
			in.ProfileImage == nil &&
			in.Resume != nil && in.Resume.Filename == "cv.pdf"
	})).Return(&models.JobSeeker{ID: primitive.NewObjectID()}, nil)

	h := NewJobSeekerHandler(nil, svc, cookie)
	r := newRouter(userID)
	r.PUT("/me", h.Update)

	w := doMultipart(t, r, http.MethodPut, "/me",
		map[string]string{
			"skills":     "go,redis",
			"experience": `[{"company":"Acme","position":"Dev","startDate":"2021-05"}]`,
		},
		formFile{"resume", "cv.pdf", pdfBytes})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)
}

func TestUpdateJobSeekerBadEducationJSON(t *testing.T) {
	svc := new(mockSeekers)
	h := NewJobSeekerHandler(nil, svc, cookie)
	r := newRouter(primitive.NewObjectID())
	r.PUT("/me", h.Update)

	w := doMultipart(t, r, http.MethodPut, "/me", map[string]string{"education": "MIT"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["message"], "education")
	svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobListQuery(t *testing.T) {
	svc := new(mockJobs)
	svc.On("List", mock.Anything, models.JobFilter{
		Search:   "golang",
		Location: "Pune",
		JobType:  models.JobType("full-time"),
		Skills:   []string{"go", "redis"},
		Page:     2,
		Limit:    5,
	}).Return(&models.JobPage{Jobs: []models.JobDetail{}, Total: 0, Page: 2, Limit: 5}, nil)

	h := NewJobHandler(svc)
	r := newRouter(primitive.NilObjectID)
	r.GET("/jobs", h.List)

	w := doJSON(r, http.MethodGet, "/jobs?search=golang&location=Pune&jobType=full-time&skills=go,redis&page=2&limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestJobGetInvalidID(t *testing.T) {
	svc := new(mockJobs)
	r := newRouter(primitive.NilObjectID)
	r.GET("/jobs/:jobId", NewJobHandler(svc).Get)

	w := doJSON(r, http.MethodGet, "/jobs/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestJobCreatePartialFields(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := new(mockJobs)
	svc.On("Create", mock.Anything, userID, mock.MatchedBy(func(in services.JobInput) bool {
		return *in.Title == "Dev" && in.Salary == nil && in.Skills != nil && len(*in.Skills) == 1 && *in.Openings == 3
	})).Return(&models.Job{ID: primitive.NewObjectID(), Title: "Dev"}, nil)

	r := newRouter(userID)
	r.POST("/jobs", NewJobHandler(svc).Create)

	w := doJSON(r, http.MethodPost, "/jobs", `{"title":"Dev","skills":["go"],"openings":3}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestJobToggleForbidden(t *testing.T) {
	userID, jobID := primitive.NewObjectID(), primitive.NewObjectID()
	svc := new(mockJobs)
	svc.On("Toggle", mock.Anything, userID, jobID).
		Return(nil, utils.E(utils.CodeForbidden, "JobService.Toggle", "you do not own this job", nil))

	r := newRouter(userID)
	r.PATCH("/jobs/:jobId/toggle", NewJobHandler(svc).Toggle)

	w := doJSON(r, http.MethodPatch, "/jobs/"+jobID.Hex()+"/toggle", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApply(t *testing.T) {
	userID, jobID := primitive.NewObjectID(), primitive.NewObjectID()
	svc := new(mockApplications)
	svc.On("Apply", mock.Anything, userID, jobID, "hire me", mock.MatchedBy(func(u *services.Upload) bool {
		return u != nil && u.ContentType == "application/pdf"
	})).Return(&models.Applicant{ID: primitive.NewObjectID(), Status: models.StatusApplied}, nil).Once()
	svc.On("Apply", mock.Anything, userID, jobID, "hire me", mock.Anything).
		Return(nil, utils.E(utils.CodeConflict, "ApplicationService.Apply", "already applied to this job", nil))

	r := newRouter(userID)
	r.POST("/applications/:jobId", NewApplicationHandler(svc).Apply)
	path := "/applications/" + jobID.Hex()

	w := doMultipart(t, r, http.MethodPost, path, map[string]string{"coverLetter": "hire me"}, formFile{"resume", "cv.pdf", pdfBytes})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doMultipart(t, r, http.MethodPost, path, map[string]string{"coverLetter": "hire me"}, formFile{"resume", "cv.pdf", pdfBytes})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already applied to this job", decode(t, w)["message"])
	svc.AssertExpectations(t)
}

func TestApplyRejectsNonPDF(t *testing.T) {
	userID, jobID := primitive.NewObjectID(), primitive.NewObjectID()
	svc := new(mockApplications)

	r := newRouter(userID)
	r.POST("/applications/:jobId", NewApplicationHandler(svc).Apply)

	w := doMultipart(t, r, http.MethodPost, "/applications/"+jobID.Hex(), nil, formFile{"resume", "cv.pdf", pngBytes})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEmployerApplicantsFilter(t *testing.T) {
	userID, jobID := primitive.NewObjectID(), primitive.NewObjectID()
	svc := new(mockApplications)
	svc.On("EmployerApplicants", mock.Anything, userID, jobID).Return([]models.EmployerApplication{{}}, nil)
	svc.On("EmployerApplicants", mock.Anything, userID, primitive.NilObjectID).Return([]models.EmployerApplication{}, nil)

	r := newRouter(userID)
	r.GET("/applicants", NewApplicationHandler(svc).EmployerApplicants)

	w := doJSON(r, http.MethodGet, "/applicants?jobId="+jobID.Hex(), nil)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = doJSON(r, http.MethodGet, "/applicants", nil)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	w = doJSON(r, http.MethodGet, "/applicants?jobId=zzz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestUpdateStatusHandler(t *testing.T) {
	userID, appID := primitive.NewObjectID(), primitive.NewObjectID()
	svc := new(mockApplications)
	svc.On("UpdateStatus", mock.Anything, userID, appID, models.StatusShortlisted).
		Return(&models.Applicant{ID: appID, Status: models.StatusShortlisted}, nil)

	r := newRouter(userID)
	r.PUT("/applications/:applicationId/status", NewApplicationHandler(svc).UpdateStatus)
	path := "/applications/" + appID.Hex() + "/status"

	w := doJSON(r, http.MethodPut, path, map[string]string{"status": "Shortlisted"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, path, map[string]string{"status": "Archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status must be one of: Applied, Shortlisted, Rejected, Hired", decode(t, w)["message"])
	svc.AssertExpectations(t)
	svc.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestBookmarkHandlers(t *testing.T) {
	userID, jobID := primitive.NewObjectID(), primitive.NewObjectID()
	svc := new(mockBookmarks)
	svc.On("Check", mock.Anything, userID, jobID).Return(true, nil)
	svc.On("Add", mock.Anything, userID, jobID).
		Return(nil, utils.E(utils.CodeConflict, "BookmarkService.Add", "job already bookmarked", nil))
	svc.On("List", mock.Anything, userID).Return([]models.BookmarkView{}, nil)

	h := NewBookmarkHandler(svc)
	r := newRouter(userID)
	r.GET("/bookmarks", h.List)
	r.POST("/bookmarks/:jobId", h.Add)
	r.GET("/bookmarks/check/:jobId", h.Check)

	w := doJSON(r, http.MethodGet, "/bookmarks/check/"+jobID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["isBookmarked"])

	w = doJSON(r, http.MethodPost, "/bookmarks/"+jobID.Hex(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodGet, "/bookmarks", nil)
	assert.JSONEq(t, `{"bookmarks":[],"count":0}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestAIResumeAnalysisQuota(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := new(mockAI)
	svc.On("AnalyzeResume", mock.Anything, userID).
		Return(nil, utils.Quota("AIService.AnalyzeResume", string(models.FeatureResume)))

	r := newRouter(userID)
	r.POST("/ai/resume-analysis", NewAIHandler(svc).ResumeAnalysis)

	w := doJSON(r, http.MethodPost, "/ai/resume-analysis", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decode(t, w)
	assert.Equal(t, "QUOTA_EXCEEDED", body["code"])
	assert.Equal(t, string(models.FeatureResume), body["feature"])
	assert.Equal(t, "daily", body["window"])
}

func TestAIJobMatchRequiresJobID(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := new(mockAI)

	r := newRouter(userID)
	r.POST("/ai/job-match", NewAIHandler(svc).JobMatch)

	w := doJSON(r, http.MethodPost, "/ai/job-match", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "jobId is required", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/ai/job-match", `{"jobId":"zzz"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid jobId", decode(t, w)["message"])
	svc.AssertNotCalled(t, "MatchJob", mock.Anything, mock.Anything, mock.Anything)
}

func TestAIJobDescription(t *testing.T) {
	svc := new(mockAI)
	svc.On("GenerateJobDescription", mock.Anything, mock.MatchedBy(func(in services.JobDescriptionInput) bool {
		return in.Title == "Backend Dev" && strings.Join(in.Skills, "|") == "go|grpc"
	})).Return(&models.JobDescriptionDraft{Description: "d", Requirements: []string{}, Responsibilities: []string{}}, nil)

	r := newRouter(primitive.NewObjectID())
	r.POST("/ai/job-description", NewAIHandler(svc).JobDescription)

	w := doJSON(r, http.MethodPost, "/ai/job-description", `{"title":"Backend Dev","skills":"go, grpc"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "d", decode(t, w)["description"])
	svc.AssertExpectations(t)
}

func TestAIHistoryLimit(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := new(mockAI)
	svc.On("History", mock.Anything, userID, 3).Return([]models.AnalysisLog{}, nil)

	r := newRouter(userID)
	r.GET("/ai/history", NewAIHandler(svc).History)

	w := doJSON(r, http.MethodGet, "/ai/history?limit=3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestUnauthenticatedHandler(t *testing.T) {
	r := newRouter(primitive.NilObjectID)
	r.GET("/bookmarks", NewBookmarkHandler(new(mockBookmarks)).List)

	w := doJSON(r, http.MethodGet, "/bookmarks", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
