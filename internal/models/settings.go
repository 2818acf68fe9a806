package models

import "gorm.io/gorm"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps anything other than "dark" to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// SettingsID is the primary key of the single settings row.
const SettingsID uint = 1

// Settings is the per-installation singleton.
type Settings struct {
	ID                  uint          `json:"-" gorm:"primaryKey;autoIncrement:false"`
	Theme               Theme         `json:"theme" gorm:"size:16"`
	DefaultMeasurements []Measurement `json:"default_measurements" gorm:"type:text;serializer:json"`
	SetupComplete       bool          `json:"setup_complete" gorm:"not null;default:false"`
}

// AfterFind defaults a missing theme to light.
func (s *Settings) AfterFind(tx *gorm.DB) error {
	if s.Theme == "" {
		s.Theme = ThemeLight
	}
	return nil
}

func NewSettings() Settings {
	return Settings{
		ID:                  SettingsID,
		Theme:               ThemeLight,
		DefaultMeasurements: CloneMeasurements(DefaultMeasurements),
		SetupComplete:       false,
	}
}

type SettingsPatch struct {
	Theme               *Theme        `json:"theme"`
	DefaultMeasurements []Measurement `json:"default_measurements"`
	SetupComplete       *bool         `json:"setup_complete"`
}

func (p SettingsPatch) Apply(s *Settings) {
	if p.Theme != nil {
		s.Theme = ParseTheme(string(*p.Theme))
	}
	if p.DefaultMeasurements != nil {
		s.DefaultMeasurements = CloneMeasurements(p.DefaultMeasurements)
	}
	if p.SetupComplete != nil {
		s.SetupComplete = *p.SetupComplete
	}
}
