package models

import (
	"time"

	"gorm.io/gorm"
)

type GalleryAlbum struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (a *GalleryAlbum) AfterFind(tx *gorm.DB) error {
	a.CreatedAt = a.CreatedAt.UTC()
	return nil
}

type AlbumPatch struct {
	Name *string `json:"name"`
}

func (p AlbumPatch) Apply(a *GalleryAlbum) {
	if p.Name != nil {
		a.Name = *p.Name
	}
}

type GalleryItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	AlbumID   string    `json:"album_id" gorm:"size:64;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (i *GalleryItem) AfterFind(tx *gorm.DB) error {
	i.CreatedAt = i.CreatedAt.UTC()
	return nil
}

type GalleryItemPatch struct {
	URL     *string `json:"url"`
	AlbumID *string `json:"album_id"`
}

func (p GalleryItemPatch) Apply(i *GalleryItem) {
	if p.URL != nil {
		i.URL = *p.URL
	}
	if p.AlbumID != nil {
		i.AlbumID = *p.AlbumID
	}
}

// DefaultAlbumNames are seeded, in this order, when a store has no albums.
var DefaultAlbumNames = []string{"Styles", "Inspirations", "Fabrics"}
