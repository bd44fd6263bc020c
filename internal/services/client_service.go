package services

import (
	"context"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
)

type ClientService struct {
	profileRepo    *repository.ProfileRepository
	engagementRepo *repository.EngagementRepository
}

func NewClientService(
	profileRepo *repository.ProfileRepository,
	engagementRepo *repository.EngagementRepository,
) *ClientService {
	return &ClientService{
		profileRepo:    profileRepo,
		engagementRepo: engagementRepo,
	}
}

// ListClients returns every non-coach profile with its engagement row joined
// in memory. Clients who never logged in have no engagement.
func (s *ClientService) ListClients(ctx context.Context) ([]models.ClientOverview, error) {
	profiles, err := s.profileRepo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	engagements, err := s.engagementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byUserID := make(map[int64]models.Engagement, len(engagements))
	for _, engagement := range engagements {
		byUserID[engagement.UserID] = engagement
	}

	overviews := make([]models.ClientOverview, 0, len(profiles))
	for _, profile := range profiles {
		overview := models.ClientOverview{Profile: profile}
		if engagement, ok := byUserID[profile.UserID]; ok {
			e := engagement
			overview.Engagement = &e
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}
