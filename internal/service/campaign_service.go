package service

import (
	"context"
	"strings"

	"gymref/internal/domain"
	"gymref/internal/models"
	"gymref/internal/repository"

	"github.com/sirupsen/logrus"
)

type CreateCampaignInput struct {
	Title       string `json:"title" binding:"required,min=2,max=128"`
	RewardName  string `json:"rewardName" binding:"required,min=2,max=128"`
	TargetJoins int    `json:"targetJoins" binding:"required,min=1"`
}

type CampaignService struct {
	repos *repository.Repositories
	log   logrus.FieldLogger
}

func NewCampaignService(repos *repository.Repositories, log logrus.FieldLogger) *CampaignService {
	return &CampaignService{repos: repos, log: log}
}

// Create adds an active campaign to the owner's gym.
func (s *CampaignService) Create(ctx context.Context, ownerID string, in CreateCampaignInput) (*models.Campaign, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.RewardName = strings.TrimSpace(in.RewardName)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	gym, err := ownerGym(ctx, s.repos, ownerID)
	if err != nil {
		return nil, err
	}
	c := &models.Campaign{
		GymID:       gym.ID,
		Title:       in.Title,
		RewardName:  in.RewardName,
		TargetJoins: in.TargetJoins,
		IsActive:    true,
	}
	if err := s.repos.Campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"gym_id": gym.ID, "campaign_id": c.ID, "target_joins": c.TargetJoins}).
		Info("campaign created")
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, ownerID string) ([]models.Campaign, error) {
	gym, err := ownerGym(ctx, s.repos, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repos.Campaigns.ListByGym(ctx, gym.ID)
}

// Get returns a campaign of the owner's gym.
func (s *CampaignService) Get(ctx context.Context, ownerID, campaignID string) (*models.Campaign, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	c, err := s.repos.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, err
	}
	if _, err := authorizeGym(ctx, s.repos, ownerID, c.GymID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) SetActive(ctx context.Context, ownerID, campaignID string, active bool) (*models.Campaign, error) {
	c, err := s.Get(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}
	if c.IsActive == active {
		return c, nil
	}
	if err := s.repos.Campaigns.SetActive(ctx, c.ID, active); err != nil {
		return nil, err
	}
	c.IsActive = active
	s.log.WithFields(logrus.Fields{"campaign_id": c.ID, "active": active}).Info("campaign toggled")
	return c, nil
}

// ActiveForGym returns the campaign new referral codes are issued for.
func (s *CampaignService) ActiveForGym(ctx context.Context, gymID string) (*models.Campaign, error) {
	return activeCampaign(ctx, s.repos, gymID)
}

func activeCampaign(ctx context.Context, repos *repository.Repositories, gymID string) (*models.Campaign, error) {
	c, err := repos.Campaigns.LatestActive(ctx, gymID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrNoActiveCampaign
		}
		return nil, err
	}
	return c, nil
}
