package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID           string        `json:"id" gorm:"primaryKey;size:64"`
	Name         string        `json:"name" gorm:"not null"`
	Phone        string        `json:"phone" gorm:"size:32"`
	Photo        string        `json:"photo,omitempty" gorm:"type:text"`
	Measurements []Measurement `json:"measurements" gorm:"type:text;serializer:json"`
	Description  string        `json:"description,omitempty" gorm:"type:text"`
	CreatedAt    time.Time     `json:"created_at" gorm:"index"`
}

// AfterFind brings timestamps read from the database back to UTC.
func (c *Customer) AfterFind(tx *gorm.DB) error {
	c.CreatedAt = c.CreatedAt.UTC()
	return nil
}

// CustomerInput carries every caller-owned field of a new customer.
type CustomerInput struct {
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Photo        string        `json:"photo"`
	Measurements []Measurement `json:"measurements"`
	Description  string        `json:"description"`
}

// CustomerPatch is a partial update. Nil fields are left untouched; an empty
// non-nil Measurements slice clears the list.
type CustomerPatch struct {
	Name         *string       `json:"name"`
	Phone        *string       `json:"phone"`
	Photo        *string       `json:"photo"`
	Measurements []Measurement `json:"measurements"`
	Description  *string       `json:"description"`
}

func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Photo != nil {
		c.Photo = *p.Photo
	}
	if p.Measurements != nil {
		c.Measurements = CloneMeasurements(p.Measurements)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}
