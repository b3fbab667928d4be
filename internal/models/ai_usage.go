package models

// DailyAICredits is the per-feature allotment restored at each IST day boundary.
const DailyAICredits = 1

type AIFeature string

const (
	FeatureResume   AIFeature = "resume"
	FeatureJobMatch AIFeature = "jobmatch"
)

func (f AIFeature) Valid() bool {
	return f == FeatureResume || f == FeatureJobMatch
}

// CounterField is the BSON path of the feature's counter inside a jobseeker.
func (f AIFeature) CounterField() string {
	switch f {
	case FeatureResume:
		return "ai_usage.resume_analysis_count"
	case FeatureJobMatch:
		return "ai_usage.job_match_count"
	default:
		return ""
	}
}

type AIUsage struct {
	ResumeAnalysisCount int    `bson:"resume_analysis_count" json:"resume_analysis_count"`
	JobMatchCount       int    `bson:"job_match_count" json:"job_match_count"`
	LastResetDate       string `bson:"last_reset_date" json:"last_reset_date"` // YYYY-MM-DD, IST
}

// FreshAIUsage is the usage granted at the start of an IST day.
func FreshAIUsage(dayKey string) AIUsage {
	return AIUsage{
		ResumeAnalysisCount: DailyAICredits,
		JobMatchCount:       DailyAICredits,
		LastResetDate:       dayKey,
	}
}

// Remaining reports the credits left for feature.
func (u AIUsage) Remaining(f AIFeature) int {
	switch f {
	case FeatureResume:
		return u.ResumeAnalysisCount
	case FeatureJobMatch:
		return u.JobMatchCount
	default:
		return 0
	}
}

// EffectiveAIUsage returns the usage as it stands on dayKey: a stale or missing
// record reads as a fresh allotment.
func EffectiveAIUsage(u *AIUsage, dayKey string) AIUsage {
	if u == nil || u.LastResetDate != dayKey {
		return FreshAIUsage(dayKey)
	}
	return *u
}
