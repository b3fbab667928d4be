package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/models"
)

// StringList accepts either a JSON array of strings or one comma-separated
// string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = ParseList(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return errors.New("expected an array of strings or a comma-separated string")
	}
	*l = arr
	return nil
}

func (l *StringList) Slice() *[]string {
	if l == nil {
		return nil
	}
	s := []string(*l)
	return &s
}

// ParseList splits a form or query value. A value that looks like a JSON
// array is decoded as one.
func ParseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return arr
		}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Date accepts "2006-01-02" as well as RFC 3339 timestamps.
type Date struct{ time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return errors.New("invalid date " + s)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

type experienceRequest struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   *Date  `json:"startDate"`
	EndDate     *Date  `json:"endDate"`
	Description string `json:"description"`
	IsCurrent   bool   `json:"isCurrent"`
}

type educationRequest struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear"`
	EndYear      int    `json:"endYear"`
	IsCurrent    bool   `json:"isCurrent"`
}

func toExperience(in []experienceRequest) []models.Experience {
	out := make([]models.Experience, 0, len(in))
	for _, e := range in {
		out = append(out, models.Experience{
			Company:     strings.TrimSpace(e.Company),
			Position:    strings.TrimSpace(e.Position),
			StartDate:   e.StartDate.ptr(),
			EndDate:     e.EndDate.ptr(),
			Description: strings.TrimSpace(e.Description),
			IsCurrent:   e.IsCurrent,
		})
	}
	return out
}

func toEducation(in []educationRequest) []models.Education {
	out := make([]models.Education, 0, len(in))
	for _, e := range in {
		out = append(out, models.Education{
			Institution:  strings.TrimSpace(e.Institution),
			Degree:       strings.TrimSpace(e.Degree),
			FieldOfStudy: strings.TrimSpace(e.FieldOfStudy),
			StartYear:    e.StartYear,
			EndYear:      e.EndYear,
			IsCurrent:    e.IsCurrent,
		})
	}
	return out
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formString returns the form value of key, or nil when the key was not sent.
func formString(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

func formList(c *gin.Context, key string) *[]string {
	v := formString(c, key)
	if v == nil {
		return nil
	}
	l := ParseList(*v)
	return &l
}

// formJSON decodes a JSON-encoded form field into dst. found is false when
// the field is absent.
func formJSON(c *gin.Context, key string, dst any) (found bool, err error) {
	v := formString(c, key)
	if v == nil || strings.TrimSpace(*v) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(*v), dst); err != nil {
		return true, errors.New(key + " must be a JSON array")
	}
	return true, nil
}
