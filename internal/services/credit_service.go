package services

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/jobportal/internal/clock"
	"github.com/yoockh/jobportal/internal/models"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/utils"
)

// CreditService meters the daily AI allotment of a jobseeker.
type CreditService interface {
	// Consume takes one credit of feature for today, resetting both
	// counters first when the stored day is not today.
	Consume(ctx context.Context, seeker *models.JobSeeker, feature models.AIFeature) (*models.CreditStatus, error)
	// Status reports today's remaining credits without mutating anything.
	Status(ctx context.Context, seeker *models.JobSeeker) *models.CreditStatus
}

type creditService struct {
	seekers mongorepo.JobSeekerRepository
	clock   clock.Clock
}

func NewCreditService(seekers mongorepo.JobSeekerRepository, c clock.Clock) CreditService {
	if c == nil {
		c = clock.Real()
	}
	return &creditService{seekers: seekers, clock: c}
}

// NextReset is the IST midnight following t.
func NextReset(t time.Time) time.Time {
	ist := t.In(clock.IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day()+1, 0, 0, 0, 0, clock.IST)
}

func (s *creditService) Consume(ctx context.Context, seeker *models.JobSeeker, feature models.AIFeature) (*models.CreditStatus, error) {
	const op = "CreditService.Consume"

	if !feature.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown AI feature", nil)
	}

	now := s.clock.Now()
	usage, err := s.seekers.ConsumeAICredit(ctx, seeker.ID, feature, clock.DayKey(now))
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrQuotaExhausted):
			return nil, utils.Quota(op, string(feature))
		case errors.Is(err, utils.ErrUnknownFeature):
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown AI feature", err)
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "jobseeker profile not found", err)
		default:
			return nil, utils.E(utils.CodeInternal, op, "failed to consume AI credit", err)
		}
	}

	seeker.AIUsage = usage
	return &models.CreditStatus{
		Feature:   feature,
		Remaining: usage.Remaining(feature),
		Usage:     *usage,
		ResetsAt:  NextReset(now),
	}, nil
}

func (s *creditService) Status(_ context.Context, seeker *models.JobSeeker) *models.CreditStatus {
	now := s.clock.Now()
	u := models.EffectiveAIUsage(seeker.AIUsage, clock.DayKey(now))
	return &models.CreditStatus{
		Remaining: u.ResumeAnalysisCount + u.JobMatchCount,
		Usage:     u,
		ResetsAt:  NextReset(now),
	}
}
