package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/auth"
	"github.com/yoockh/jobportal/internal/models"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	"github.com/yoockh/jobportal/internal/storage"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService interface {
	RegisterJobSeeker(ctx context.Context, in RegisterJobSeekerInput) (*Session, error)
	RegisterEmployer(ctx context.Context, in RegisterEmployerInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Me(ctx context.Context, userID primitive.ObjectID) (*Account, error)
	UpdateAccount(ctx context.Context, userID primitive.ObjectID, in UpdateAccountInput) (*models.User, error)
}

type Credentials struct {
	Name     string
	Email    string
	Password string
}

type RegisterJobSeekerInput struct {
	Credentials
	Bio    string
	Skills []string
}

type RegisterEmployerInput struct {
	Credentials
	CompanyName        string
	CompanyWebsite     string
	CompanyDescription string
	Location           string
	Industry           string
	Logo               *Upload
}

type UpdateAccountInput struct {
	Name            *string
	Email           *string
	Password        *string
	CurrentPassword string
}

// Session is a logged-in user and the token to put in the cookie.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"-"`
}

type Account struct {
	User      *models.User      `json:"user"`
	JobSeeker *models.JobSeeker `json:"jobseeker,omitempty"`
	Employer  *models.Employer  `json:"employer,omitempty"`
}

type authService struct {
	users     mongorepo.UserRepository
	seekers   mongorepo.JobSeekerRepository
	employers mongorepo.EmployerRepository
	store     storage.ObjectStore
	tokens    *auth.TokenManager
	log       *logrus.Logger
}

func NewAuthService(users mongorepo.UserRepository, seekers mongorepo.JobSeekerRepository, employers mongorepo.EmployerRepository,
	store storage.ObjectStore, tokens *auth.TokenManager, log *logrus.Logger) AuthService {
	if log == nil {
		log = nopLogger()
	}
	return &authService{users: users, seekers: seekers, employers: employers, store: store, tokens: tokens, log: log}
}

func validateCredentials(op string, c *Credentials) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Name == "" || c.Email == "" || c.Password == "" {
		return utils.E(utils.CodeInvalidArgument, op, "name, email and password are required", nil)
	}
	return nil
}

// createUser inserts the account row. Email uniqueness comes from the
// uniq_email index.
func (s *authService) createUser(ctx context.Context, op string, c Credentials, role models.UserRole) (*models.User, error) {
	hash, err := utils.HashPassword(c.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	u := &models.User{Name: c.Name, Email: c.Email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "email is already registered", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

// rollbackUser removes a user whose profile could not be created, so the
// email can be registered again.
func (s *authService) rollbackUser(ctx context.Context, u *models.User) {
	if err := s.users.Delete(ctx, u.ID); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID.Hex()).Error("failed to roll back user after profile error")
	}
}

func (s *authService) session(op string, u *models.User) (*Session, error) {
	tok, err := s.tokens.Issue(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &Session{User: u, Token: tok}, nil
}

func (s *authService) RegisterJobSeeker(ctx context.Context, in RegisterJobSeekerInput) (*Session, error) {
	const op = "AuthService.RegisterJobSeeker"

	if err := validateCredentials(op, &in.Credentials); err != nil {
		return nil, err
	}

	u, err := s.createUser(ctx, op, in.Credentials, models.RoleJobSeeker)
	if err != nil {
		return nil, err
	}

	profile := &models.JobSeeker{
		User:   u.ID,
		Bio:    strings.TrimSpace(in.Bio),
		Skills: NormalizeSkills(in.Skills),
	}
	if err := s.seekers.Create(ctx, profile); err != nil {
		s.rollbackUser(ctx, u)
		return nil, utils.E(utils.CodeInternal, op, "failed to create jobseeker profile", err)
	}

	s.log.WithField("user_id", u.ID.Hex()).Info("jobseeker registered")
	return s.session(op, u)
}

func (s *authService) RegisterEmployer(ctx context.Context, in RegisterEmployerInput) (*Session, error) {
	const op = "AuthService.RegisterEmployer"

	if err := validateCredentials(op, &in.Credentials); err != nil {
		return nil, err
	}
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.CompanyName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "company name is required", nil)
	}

	taken, err := s.employers.CompanyNameTaken(ctx, in.CompanyName, primitive.NilObjectID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check company name", err)
	}
	if taken {
		return nil, utils.E(utils.CodeConflict, op, "company name is already registered", nil)
	}

	u, err := s.createUser(ctx, op, in.Credentials, models.RoleEmployer)
	if err != nil {
		return nil, err
	}

	e := &models.Employer{
		ID:                 primitive.NewObjectID(),
		User:               u.ID,
		CompanyName:        in.CompanyName,
		CompanyWebsite:     strings.TrimSpace(in.CompanyWebsite),
		CompanyDescription: strings.TrimSpace(in.CompanyDescription),
		Location:           strings.TrimSpace(in.Location),
		Industry:           strings.TrimSpace(in.Industry),
	}
	if !in.Logo.Empty() {
		logo, err := putFile(ctx, s.store, op, "company-logos", e.ID.Hex(), in.Logo)
		if err != nil {
			s.rollbackUser(ctx, u)
			return nil, err
		}
		e.CompanyLogo = logo
	}

	if err := s.employers.Create(ctx, e); err != nil {
		s.rollbackUser(ctx, u)
		dropFile(ctx, s.store, s.log, e.CompanyLogo)
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "company name is already registered", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create employer profile", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": u.ID.Hex(), "employer_id": e.ID.Hex()}).Info("employer registered")
	return s.session(op, u)
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	const op = "AuthService.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}
	return s.session(op, u)
}

func (s *authService) Me(ctx context.Context, userID primitive.ObjectID) (*Account, error) {
	const op = "AuthService.Me"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(op, "user", err)
	}

	acc := &Account{User: u}
	switch u.Role {
	case models.RoleJobSeeker:
		if acc.JobSeeker, err = seekerByUser(ctx, s.seekers, op, u.ID); err != nil {
			return nil, err
		}
	case models.RoleEmployer:
		if acc.Employer, err = employerByUser(ctx, s.employers, op, u.ID); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (s *authService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, in UpdateAccountInput) (*models.User, error) {
	const op = "AuthService.UpdateAccount"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(op, "user", err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "name cannot be empty", nil)
		}
		u.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "email cannot be empty", nil)
		}
		u.Email = email
	}
	if in.Password != nil {
		if in.CurrentPassword == "" || utils.CheckPassword(u.PasswordHash, in.CurrentPassword) != nil {
			return nil, utils.E(utils.CodeUnauthorized, op, "current password is incorrect", nil)
		}
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.UpdateAccount(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "email is already registered", err)
		}
		return nil, lookupErr(op, "user", err)
	}
	return u, nil
}
