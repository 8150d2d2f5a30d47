package service

import (
	"context"

	"gymref/internal/domain"
	"gymref/internal/models"
	"gymref/internal/repository"
)

// ownerGym resolves the gym an owner acts on.
func ownerGym(ctx context.Context, repos *repository.Repositories, ownerID string) (*models.Gym, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	gym, err := repos.Gyms.FirstByOwner(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrGymNotFound
		}
		return nil, err
	}
	return gym, nil
}

// authorizeGym checks that gymID belongs to ownerID.
func authorizeGym(ctx context.Context, repos *repository.Repositories, ownerID, gymID string) (*models.Gym, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	gym, err := repos.Gyms.GetByID(ctx, gymID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrGymNotFound
		}
		return nil, err
	}
	if gym.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return gym, nil
}
