package service

import (
	"context"
	"strings"

	"gymref/config"
	"gymref/internal/auth"
	"gymref/internal/domain"
	"gymref/internal/models"
	"gymref/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupInput struct {
	Name     string `json:"name" binding:"required,min=2,max=128"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	GymName  string `json:"gymName" binding:"required,min=2,max=128"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

type AuthService struct {
	cfg        *config.JWTConfig
	repos      *repository.Repositories
	log        logrus.FieldLogger
	bcryptCost int
}

func NewAuthService(cfg *config.JWTConfig, repos *repository.Repositories, log logrus.FieldLogger) *AuthService {
	return &AuthService{cfg: cfg, repos: repos, log: log, bcryptCost: bcrypt.DefaultCost}
}

// Signup creates an owner account together with its gym.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.Owner, *models.Gym, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.GymName = strings.TrimSpace(in.GymName)
	if err := domain.Validate(in); err != nil {
		return nil, nil, err
	}

	exists, err := s.repos.Owners.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}
	owner := &models.Owner{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
	}
	gym := &models.Gym{Name: in.GymName}

	err = s.repos.Tx.InTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repos.Owners.WithTx(tx).Create(ctx, owner); err != nil {
			if repository.IsDuplicate(err) {
				return domain.ErrEmailExists
			}
			return err
		}
		gym.OwnerID = owner.ID
		return s.repos.Gyms.WithTx(tx).Create(ctx, gym)
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{"owner_id": owner.ID, "gym_id": gym.ID}).Info("owner signed up")
	return owner, gym, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.Owner, string, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := domain.Validate(in); err != nil {
		return nil, "", "", err
	}
	o, err := s.repos.Owners.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", "", domain.ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}
	access, refresh, err := s.issueTokens(o)
	if err != nil {
		return nil, "", "", err
	}
	return o, access, refresh, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error) {
	ownerID, err := auth.ParseRefreshToken(s.cfg, refreshToken)
	if err != nil {
		return "", "", domain.ErrUnauthorized
	}
	o, err := s.repos.Owners.GetByID(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", "", domain.ErrUnauthorized
		}
		return "", "", err
	}
	return s.issueTokens(o)
}

// Me returns the owner and the gym they manage.
func (s *AuthService) Me(ctx context.Context, ownerID string) (*models.Owner, *models.Gym, error) {
	if ownerID == "" {
		return nil, nil, domain.ErrUnauthorized
	}
	o, err := s.repos.Owners.GetByID(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, domain.ErrOwnerNotFound
		}
		return nil, nil, err
	}
	gym, err := ownerGym(ctx, s.repos, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return o, gym, nil
}

func (s *AuthService) GymForOwner(ctx context.Context, ownerID string) (*models.Gym, error) {
	return ownerGym(ctx, s.repos, ownerID)
}

// ChangePassword updates the owner's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, ownerID string, in ChangePasswordInput) error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	o, err := s.repos.Owners.GetByID(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.ErrUnauthorized
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	return s.repos.Owners.UpdatePassword(ctx, o.ID, string(hash))
}

func (s *AuthService) issueTokens(o *models.Owner) (string, string, error) {
	access, err := auth.GenerateAccessToken(s.cfg, o.ID, o.Email, o.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(s.cfg, o.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
