package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/models"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/storage"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Upload is a validated file coming from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Empty reports whether no file was sent.
func (u *Upload) Empty() bool { return u == nil || u.Body == nil || u.Size <= 0 }

// lookupErr maps a repository read error to NotFound or Internal.
func lookupErr(op, what string, err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, what+" not found", err)
	}
	return utils.E(utils.CodeInternal, op, "failed to load "+what, err)
}

func seekerByUser(ctx context.Context, repo mongorepo.JobSeekerRepository, op string, userID primitive.ObjectID) (*models.JobSeeker, error) {
	s, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, lookupErr(op, "jobseeker profile", err)
	}
	return s, nil
}

func employerByUser(ctx context.Context, repo mongorepo.EmployerRepository, op string, userID primitive.ObjectID) (*models.Employer, error) {
	e, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, lookupErr(op, "employer profile", err)
	}
	return e, nil
}

// putFile stores u under prefix/owner/<uuid><ext>.
func putFile(ctx context.Context, store storage.ObjectStore, op, prefix, owner string, u *Upload) (*models.FileRef, error) {
	if store == nil {
		return nil, utils.E(utils.CodeInternal, op, "object store is not configured", nil)
	}
	key := prefix + "/" + owner + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(u.Filename))
	ref, err := store.Put(ctx, key, u.ContentType, u.Body)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to upload file", err)
	}
	return &ref, nil
}

// dropFile deletes a replaced or unreferenced object. Failures only leave an
// orphan behind.
func dropFile(ctx context.Context, store storage.ObjectStore, log *logrus.Logger, old *models.FileRef) {
	if old.Empty() || store == nil {
		return
	}
	if err := store.Delete(ctx, old.Key); err != nil && log != nil {
		log.WithError(err).WithField("key", old.Key).Warn("failed to delete replaced object")
	}
}

// foldSkill lowercases s and strips diacritics so "Résumé" and "resume"
// compare equal.
func foldSkill(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

// NormalizeSkills folds, lowercases and de-duplicates skills, keeping order.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = foldSkill(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// CleanList trims entries and drops empty ones.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
