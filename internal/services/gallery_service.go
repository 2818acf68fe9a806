package services

import (
	"context"

	"tailorbook/internal/models"
	"tailorbook/internal/repository"
)

type GalleryService interface {
	GetAlbums(ctx context.Context) ([]AlbumSummary, error)
	CreateAlbum(ctx context.Context, name string) (*models.GalleryAlbum, error)
	RenameAlbum(ctx context.Context, id, name string) (*models.GalleryAlbum, error)
	DeleteAlbum(ctx context.Context, id string) error
	GetItems(ctx context.Context) ([]models.GalleryItem, error)
	GetItemsByAlbum(ctx context.Context, albumID string) ([]models.GalleryItem, error)
	AddToGallery(ctx context.Context, url, albumID string) (*models.GalleryItem, error)
	MoveItem(ctx context.Context, id, albumID string) (*models.GalleryItem, error)
	DeleteItem(ctx context.Context, id string) error
}

type AlbumSummary struct {
	models.GalleryAlbum
	ItemCount int    `json:"item_count"`
	CoverURL  string `json:"cover_url,omitempty"`
}

type galleryService struct {
	albumRepo repository.AlbumRepository
	itemRepo  repository.GalleryItemRepository
}

func NewGalleryService(albumRepo repository.AlbumRepository, itemRepo repository.GalleryItemRepository) GalleryService {
	return &galleryService{albumRepo: albumRepo, itemRepo: itemRepo}
}

// GetAlbums lists albums with their item counts; the cover is the newest item.
func (s *galleryService) GetAlbums(ctx context.Context) ([]AlbumSummary, error) {
	albums, err := s.albumRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AlbumSummary, 0, len(albums))
	for _, a := range albums {
		inAlbum := ItemsInAlbum(items, a.ID)
		summary := AlbumSummary{GalleryAlbum: a, ItemCount: len(inAlbum)}
		if len(inAlbum) > 0 {
			summary.CoverURL = inAlbum[0].URL
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *galleryService) CreateAlbum(ctx context.Context, name string) (*models.GalleryAlbum, error) {
	return s.albumRepo.Create(ctx, name)
}

func (s *galleryService) RenameAlbum(ctx context.Context, id, name string) (*models.GalleryAlbum, error) {
	return s.albumRepo.Update(ctx, id, models.AlbumPatch{Name: &name})
}

func (s *galleryService) DeleteAlbum(ctx context.Context, id string) error {
	return s.albumRepo.Delete(ctx, id)
}

func (s *galleryService) GetItems(ctx context.Context) ([]models.GalleryItem, error) {
	return s.itemRepo.List(ctx)
}

func (s *galleryService) GetItemsByAlbum(ctx context.Context, albumID string) ([]models.GalleryItem, error) {
	return s.itemRepo.GetByAlbumID(ctx, albumID)
}

func (s *galleryService) AddToGallery(ctx context.Context, url, albumID string) (*models.GalleryItem, error) {
	return s.itemRepo.Create(ctx, url, albumID)
}

func (s *galleryService) MoveItem(ctx context.Context, id, albumID string) (*models.GalleryItem, error) {
	return s.itemRepo.Update(ctx, id, models.GalleryItemPatch{AlbumID: &albumID})
}

func (s *galleryService) DeleteItem(ctx context.Context, id string) error {
	return s.itemRepo.Delete(ctx, id)
}
