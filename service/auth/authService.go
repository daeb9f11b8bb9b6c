package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"webbooks/model"
	"webbooks/util/apperr"
	"webbooks/util/database"
	"webbooks/util/hash"
	jwtutil "webbooks/util/jwt"
)

var (
	ErrEmailTaken    = apperr.New(apperr.ErrConflict, "email already registered")
	ErrUsernameTaken = apperr.New(apperr.ErrConflict, "username already taken")
	ErrBadInput      = apperr.New(apperr.ErrInvalid, "bad input")
	ErrInvalidCreds  = apperr.New(apperr.ErrInvalidCreds, "invalid credentials")
	ErrWrongPassword = apperr.New(apperr.ErrInvalid, "old password is incorrect")
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type Options struct {
	Secret   string
	TokenTTL time.Duration
	// AdminUsername registers as admin instead of reader.
	AdminUsername string
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	// ChangePassword replaces userID's password after checking the old one.
	ChangePassword(ctx context.Context, userID int64, req model.PasswordChangeReq) error
	Users(ctx context.Context) ([]model.User, error)
}

type service struct {
	ur   Repo
	opts Options
}

func New(ur Repo, opts Options) Service {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &service{ur: ur, opts: opts}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 8 {
		return nil, "", ErrBadInput
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, "", ErrBadInput
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		Username:     req.Username,
		Role:         model.RoleReader,
		PasswordHash: hashed,
	}
	if s.opts.AdminUsername != "" && strings.EqualFold(u.Username, s.opts.AdminUsername) {
		u.Role = model.RoleAdmin
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.opts.Secret, u.ID, u.Username, u.Role, s.opts.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func mapDuplicateErr(err error) error {
	cn, ok := database.UniqueViolation(err)
	if !ok {
		return nil
	}
	cn = strings.ToLower(cn)
	switch {
	case strings.Contains(cn, "email"):
		return ErrEmailTaken
	case strings.Contains(cn, "username"):
		return ErrUsernameTaken
	}
	return apperr.Wrap(apperr.ErrConflict, "user already exists", err)
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, "", ErrBadInput
	}
	u, err := s.ur.ByUsername(ctx, username)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.opts.Secret, u.ID, u.Username, u.Role, s.opts.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) ChangePassword(ctx context.Context, userID int64, req model.PasswordChangeReq) error {
	if len(req.NewPassword) < 8 {
		return ErrBadInput
	}
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		return apperr.FromDB(err, "user")
	}
	if !hash.Check(u.PasswordHash, req.OldPassword) {
		return ErrWrongPassword
	}
	hashed, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.ur.UpdatePassword(ctx, userID, hashed); err != nil {
		return apperr.FromDB(err, "user")
	}
	return nil
}

func (s *service) Users(ctx context.Context) ([]model.User, error) { return s.ur.List(ctx) }
