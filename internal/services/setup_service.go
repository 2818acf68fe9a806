package services

import (
	"context"

	"tailorbook/internal/models"
	"tailorbook/internal/repository"
)

// SetupState is the onboarding state persisted in the settings singleton.
type SetupState struct {
	Configured          bool                 `json:"configured"`
	DefaultMeasurements []models.Measurement `json:"default_measurements"`
}

type SetupService interface {
	State(ctx context.Context) (SetupState, error)
	IsConfigured(ctx context.Context) (bool, error)
	// Complete marks setup as done. A nil template keeps the current one; an
	// empty non-nil template clears it.
	Complete(ctx context.Context, template []models.Measurement) (SetupState, error)
	// UpdateTemplate replaces the template. Nil leaves it untouched.
	UpdateTemplate(ctx context.Context, template []models.Measurement) (SetupState, error)
	Settings(ctx context.Context) (*models.Settings, error)
	SetTheme(ctx context.Context, theme models.Theme) (*models.Settings, error)
}

type setupService struct {
	settingsRepo repository.SettingsRepository
}

func NewSetupService(settingsRepo repository.SettingsRepository) SetupService {
	return &setupService{settingsRepo: settingsRepo}
}

func (s *setupService) State(ctx context.Context) (SetupState, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return SetupState{}, err
	}
	return stateOf(settings), nil
}

func (s *setupService) IsConfigured(ctx context.Context) (bool, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.SetupComplete, nil
}

func (s *setupService) Complete(ctx context.Context, template []models.Measurement) (SetupState, error) {
	done := true
	settings, err := s.settingsRepo.Update(ctx, models.SettingsPatch{
		DefaultMeasurements: template,
		SetupComplete:       &done,
	})
	if err != nil {
		return SetupState{}, err
	}
	return stateOf(settings), nil
}

func (s *setupService) UpdateTemplate(ctx context.Context, template []models.Measurement) (SetupState, error) {
	settings, err := s.settingsRepo.Update(ctx, models.SettingsPatch{DefaultMeasurements: template})
	if err != nil {
		return SetupState{}, err
	}
	return stateOf(settings), nil
}

func (s *setupService) Settings(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *setupService) SetTheme(ctx context.Context, theme models.Theme) (*models.Settings, error) {
	theme = models.ParseTheme(string(theme))
	return s.settingsRepo.Update(ctx, models.SettingsPatch{Theme: &theme})
}

func stateOf(settings *models.Settings) SetupState {
	return SetupState{
		Configured:          settings.SetupComplete,
		DefaultMeasurements: models.CloneMeasurements(settings.DefaultMeasurements),
	}
}
