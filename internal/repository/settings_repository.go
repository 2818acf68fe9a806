package repository

import (
	"context"
	"errors"
	"sync"

	"tailorbook/internal/models"
	"tailorbook/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository owns the singleton settings record. It is never deleted.
type SettingsRepository interface {
	// Get returns the settings, creating and storing the defaults on first access.
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)
}

type settingsRepository struct {
	mu       sync.Mutex
	backend  storage.Backend
	key      string
	notifier *Notifier
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	r.mu.Lock()
	settings, created, err := r.ensureLocked(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if created {
		r.notifier.Publish(CollectionSettings)
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	r.mu.Lock()
	settings, _, err := r.ensureLocked(ctx)
	if err == nil {
		patch.Apply(&settings)
		err = storage.Save(ctx, r.backend, r.key, settings)
	}
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	r.notifier.Publish(CollectionSettings)
	return &settings, nil
}

func (r *settingsRepository) ensureLocked(ctx context.Context) (models.Settings, bool, error) {
	settings, ok, err := storage.Lookup[models.Settings](ctx, r.backend, r.key)
	if err != nil {
		return models.Settings{}, false, err
	}
	if ok {
		settings.ID = models.SettingsID
		if settings.Theme == "" {
			settings.Theme = models.ThemeLight
		}
		return settings, false, nil
	}
	settings = models.NewSettings()
	if err := storage.Save(ctx, r.backend, r.key, settings); err != nil {
		return models.Settings{}, false, err
	}
	return settings, true, nil
}

// gormSettingsRepository keeps the singleton as row models.SettingsID.
type gormSettingsRepository struct {
	db       *gorm.DB
	notifier *Notifier
}

func (r *gormSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var (
		settings models.Settings
		created  bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		settings, created, err = ensureSettingsRow(tx)
		return err
	})
	if err != nil {
		return nil, &storage.Error{Op: "load", Key: CollectionSettings, Err: err}
	}
	if created {
		r.notifier.Publish(CollectionSettings)
	}
	return &settings, nil
}

func (r *gormSettingsRepository) Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := ensureSettingsRow(tx); err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&settings, models.SettingsID).Error; err != nil {
			return err
		}
		patch.Apply(&settings)
		return tx.Save(&settings).Error
	})
	if err != nil {
		return nil, &storage.Error{Op: "save", Key: CollectionSettings, Err: err}
	}
	r.notifier.Publish(CollectionSettings)
	return &settings, nil
}

// ensureSettingsRow inserts the defaults unless the row exists. Concurrent
// first accesses race on the primary key; the loser keeps the winner's row.
func ensureSettingsRow(tx *gorm.DB) (models.Settings, bool, error) {
	var settings models.Settings
	err := tx.First(&settings, models.SettingsID).Error
	if err == nil {
		return settings, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Settings{}, false, err
	}
	settings = models.NewSettings()
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings)
	if res.Error != nil {
		return models.Settings{}, false, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.First(&settings, models.SettingsID).Error; err != nil {
			return models.Settings{}, false, err
		}
		return settings, false, nil
	}
	return settings, true, nil
}
