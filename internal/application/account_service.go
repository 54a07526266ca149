package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sosmed-api/internal/domain/entity"
	repo "sosmed-api/internal/domain/repository"
	"sosmed-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrStorageUnavailable = errors.New("object storage not configured")
)

// FieldErrors carries per-field validation messages that surface after
// shape validation, e.g. the password-change rules on profile update.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string { return "validation failed" }

// Service orchestrates account and follow operations. All state lives in
// the database; the service itself is safe for concurrent use.
type Service struct {
	Users     repo.UserRepository
	Follows   repo.FollowRepository
	JWT       *helpers.JWTManager
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewService(users repo.UserRepository, follows repo.FollowRepository, jwt *helpers.JWTManager, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *Service {
	return &Service{
		Users:     users,
		Follows:   follows,
		JWT:       jwt,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Logger:    logger,
	}
}

type RegisterInput struct {
	Fullname string
	Username string
	Email    string
	Password string
}

// Register creates an account and logs it in. The proactive duplicate check
// gives a precise field error; the unique constraints behind Create close
// the race it cannot.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	existing, err := s.Users.GetByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		if existing.Email == in.Email {
			return nil, "", &repo.DuplicateError{Field: "email"}
		}
		return nil, "", &repo.DuplicateError{Field: "username"}
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	u := &entity.User{
		Fullname: in.Fullname,
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, "", err
	}
	return u, token, nil
}

// Login validates credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Search does a case-insensitive substring match on username.
func (s *Service) Search(ctx context.Context, username string) ([]entity.User, error) {
	users, err := s.Users.SearchByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users, nil
}

// UpdateProfileInput uses pointers for the optional fields so "not sent"
// and "sent empty" stay distinguishable; a nil field never touches the
// stored value.
type UpdateProfileInput struct {
	Fullname        string
	Username        string
	Bio             *string
	CurrentPassword *string
	NewPassword     *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	// Changing the password always requires proof of the current one.
	if in.NewPassword != nil && in.CurrentPassword == nil {
		return nil, FieldErrors{"currentPassword": {"Current password is required to set a new password"}}
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if in.Username != u.Username {
		taken, err := s.Users.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.ID != userID {
			return nil, &repo.DuplicateError{Field: "username"}
		}
	}

	if in.NewPassword != nil && in.CurrentPassword != nil {
		if !helpers.CompareHashAndPassword(u.Password, *in.CurrentPassword) {
			return nil, FieldErrors{"currentPassword": {"Current password is incorrect"}}
		}
		hash, err := helpers.HashPassword(*in.NewPassword)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	u.Fullname = in.Fullname
	u.Username = in.Username
	if in.Bio != nil {
		u.Bio = *in.Bio
	}

	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdatePhoto streams a profile photo to GCS and stores its public URL.
func (s *Service) UpdatePhoto(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrStorageUnavailable
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	u.Image = url
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return url, nil
}

// Follow creates the directed edge follower -> username's account.
func (s *Service) Follow(ctx context.Context, followerID, username string) error {
	target, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.ID == followerID {
		return ErrSelfFollow
	}

	exists, err := s.Follows.Exists(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowing
	}

	edge := &entity.Follow{FollowerID: followerID, FollowingID: target.ID}
	if err := s.Follows.Create(ctx, edge); err != nil {
		if errors.Is(err, repo.ErrDuplicateFollow) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}
