package service

import (
	"context"
	"errors"

	"gymref/internal/domain"
	"gymref/internal/models"
	"gymref/internal/repository"
)

// ScanInfo is what the public scan page shows before a member enters details.
type ScanInfo struct {
	GymID    string           `json:"gymId"`
	GymName  string           `json:"gymName"`
	Campaign *CampaignSummary `json:"campaign"`
}

type CampaignSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	RewardName  string `json:"rewardName"`
	TargetJoins int    `json:"targetJoins"`
}

type GymService struct {
	repos *repository.Repositories
}

func NewGymService(repos *repository.Repositories) *GymService {
	return &GymService{repos: repos}
}

// ScanInfo returns the gym and its active campaign, if any.
func (s *GymService) ScanInfo(ctx context.Context, gymID string) (*ScanInfo, error) {
	gym, err := s.repos.Gyms.GetByID(ctx, gymID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrGymNotFound
		}
		return nil, err
	}
	info := &ScanInfo{GymID: gym.ID, GymName: gym.Name}
	c, err := activeCampaign(ctx, s.repos, gym.ID)
	switch {
	case err == nil:
		info.Campaign = &CampaignSummary{ID: c.ID, Title: c.Title, RewardName: c.RewardName, TargetJoins: c.TargetJoins}
	case !errors.Is(err, domain.ErrNoActiveCampaign):
		return nil, err
	}
	return info, nil
}

// ListMembers returns the owner's members with their referral codes.
func (s *GymService) ListMembers(ctx context.Context, ownerID string) ([]models.Member, error) {
	gym, err := ownerGym(ctx, s.repos, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repos.Members.ListByGym(ctx, gym.ID)
}
