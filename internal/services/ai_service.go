package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/clock"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/providers/llm"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	pgrepo "github.com/yoockh/jobportal/internal/repositories/postgres"
	"github.com/yoockh/jobportal/internal/storage"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"
)

type AIService interface {
	AnalyzeResume(ctx context.Context, userID primitive.ObjectID) (*ResumeAnalysisResult, error)
	MatchJob(ctx context.Context, userID, jobID primitive.ObjectID) (*JobMatchResult, error)
	GenerateJobDescription(ctx context.Context, in JobDescriptionInput) (*models.JobDescriptionDraft, error)
	Usage(ctx context.Context, userID primitive.ObjectID) (*models.CreditStatus, error)
	History(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.AnalysisLog, error)
}

type ResumeAnalysisResult struct {
	Analysis *models.ResumeAnalysis `json:"analysis"`
	Credits  *models.CreditStatus   `json:"credits"`
}

type JobMatchResult struct {
	Match   *models.JobMatch     `json:"match"`
	Credits *models.CreditStatus `json:"credits"`
}

type JobDescriptionInput struct {
	Title      string
	Skills     []string
	Experience string
	JobType    models.JobType
	Location   string
}

type aiService struct {
	seekers  mongorepo.JobSeekerRepository
	jobs     mongorepo.JobRepository
	credits  CreditService
	llm      llm.Provider
	store    storage.ObjectStore
	analyses pgrepo.AnalysisRepository // optional
	clock    clock.Clock
	log      *logrus.Logger
}

func NewAIService(seekers mongorepo.JobSeekerRepository, jobs mongorepo.JobRepository, credits CreditService,
	provider llm.Provider, store storage.ObjectStore, analyses pgrepo.AnalysisRepository,
	c clock.Clock, log *logrus.Logger) AIService {
	if c == nil {
		c = clock.Real()
	}
	if log == nil {
		log = nopLogger()
	}
	return &aiService{
		seekers:  seekers,
		jobs:     jobs,
		credits:  credits,
		llm:      provider,
		store:    store,
		analyses: analyses,
		clock:    c,
		log:      log,
	}
}

// ask sends prompt to the model and decodes its JSON answer into dst.
func (s *aiService) ask(ctx context.Context, op, prompt string, dst any, files ...llm.File) error {
	raw, err := s.llm.Complete(ctx, prompt, files...)
	if err != nil {
		return utils.E(utils.CodeUpstream, op, "AI service request failed", err)
	}
	if err := llm.DecodeJSON(raw, dst); err != nil {
		return utils.E(utils.CodeUpstream, op, "AI service returned invalid data", err)
	}
	return nil
}

func clampScore(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	}
	return n
}

// The credit is taken after the cheap preconditions and before the model
// call. It is not given back if the call fails.
func (s *aiService) AnalyzeResume(ctx context.Context, userID primitive.ObjectID) (*ResumeAnalysisResult, error) {
	const op = "AIService.AnalyzeResume"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	if seeker.Resume.Empty() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "upload a resume to your profile first", nil)
	}

	credits, err := s.credits.Consume(ctx, seeker, models.FeatureResume)
	if err != nil {
		return nil, err
	}

	var out models.ResumeAnalysis
	prompt := fmt.Sprintf(resumeAnalysisPrompt, seekerContext(seeker))
	resume := llm.File{MIMEType: "application/pdf", URI: s.store.URI(seeker.Resume.Key)}
	if err := s.ask(ctx, op, prompt, &out, resume); err != nil {
		return nil, err
	}
	out.Score = clampScore(out.Score)

	s.journal(ctx, seeker, models.FeatureResume, primitive.NilObjectID, out.Score, seeker.Skills, out)
	return &ResumeAnalysisResult{Analysis: &out, Credits: credits}, nil
}

func (s *aiService) MatchJob(ctx context.Context, userID, jobID primitive.ObjectID) (*JobMatchResult, error) {
	const op = "AIService.MatchJob"

	if jobID.IsZero() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jobId is required", nil)
	}
	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, lookupErr(op, "job", err)
	}

	credits, err := s.credits.Consume(ctx, seeker, models.FeatureJobMatch)
	if err != nil {
		return nil, err
	}

	var out models.JobMatch
	prompt := fmt.Sprintf(jobMatchPrompt, seekerContext(seeker), jobContext(job))
	if err := s.ask(ctx, op, prompt, &out); err != nil {
		return nil, err
	}
	out.MatchScore = clampScore(out.MatchScore)
	if out.MatchedSkills == nil {
		out.MatchedSkills = []string{}
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}

	s.journal(ctx, seeker, models.FeatureJobMatch, job.ID, out.MatchScore, out.MatchedSkills, out)
	return &JobMatchResult{Match: &out, Credits: credits}, nil
}

func (s *aiService) GenerateJobDescription(ctx context.Context, in JobDescriptionInput) (*models.JobDescriptionDraft, error) {
	const op = "AIService.GenerateJobDescription"

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}
	if in.JobType != "" && !in.JobType.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid job type", nil)
	}

	prompt := fmt.Sprintf(jobDescriptionPrompt,
		title,
		orNone(string(in.JobType)),
		orNone(strings.TrimSpace(in.Location)),
		orNone(strings.TrimSpace(in.Experience)),
		orNone(strings.Join(NormalizeSkills(in.Skills), ", ")),
	)

	var out models.JobDescriptionDraft
	if err := s.ask(ctx, op, prompt, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Description) == "" {
		return nil, utils.E(utils.CodeUpstream, op, "AI service returned invalid data", llm.ErrInvalidResponse)
	}
	out.Requirements = CleanList(out.Requirements)
	out.Responsibilities = CleanList(out.Responsibilities)
	return &out, nil
}

func (s *aiService) Usage(ctx context.Context, userID primitive.ObjectID) (*models.CreditStatus, error) {
	const op = "AIService.Usage"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	return s.credits.Status(ctx, seeker), nil
}

func (s *aiService) History(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.AnalysisLog, error) {
	const op = "AIService.History"

	seeker, err := seekerByUser(ctx, s.seekers, op, userID)
	if err != nil {
		return nil, err
	}
	if s.analyses == nil {
		return []models.AnalysisLog{}, nil
	}
	rows, err := s.analyses.ListByJobSeeker(ctx, seeker.ID.Hex(), limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load analysis history", err)
	}
	return rows, nil
}

// journal records a successful analysis. Failures are logged only.
func (s *aiService) journal(ctx context.Context, seeker *models.JobSeeker, feature models.AIFeature, jobID primitive.ObjectID, score int, skills []string, result any) {
	if s.analyses == nil {
		return
	}
	log := s.log.WithFields(logrus.Fields{"job_seeker_id": seeker.ID.Hex(), "feature": feature})

	body, err := json.Marshal(result)
	if err != nil {
		log.WithError(err).Warn("failed to encode analysis result")
		return
	}
	entry := &models.AnalysisLog{
		ID:          uuid.NewString(),
		JobSeekerID: seeker.ID.Hex(),
		Feature:     string(feature),
		Score:       score,
		Skills:      append([]string{}, skills...),
		Result:      datatypes.JSON(body),
		CreatedAt:   s.clock.Now().UTC(),
	}
	if !jobID.IsZero() {
		entry.JobID = jobID.Hex()
	}
	if err := s.analyses.Insert(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Warn("failed to journal analysis")
	}
}
