package repository

import (
	"context"
	"fmt"
	"time"

	"tailorbook/internal/models"

	"gorm.io/gorm"
)

type AlbumRepository interface {
	List(ctx context.Context) ([]models.GalleryAlbum, error)
	GetByID(ctx context.Context, id string) (*models.GalleryAlbum, error)
	Create(ctx context.Context, name string) (*models.GalleryAlbum, error)
	Update(ctx context.Context, id string, patch models.AlbumPatch) (*models.GalleryAlbum, error)
	// Delete removes the album and every gallery item filed under it.
	Delete(ctx context.Context, id string) error
	// SeedDefaults stores the default albums when none exist and reports whether it did.
	SeedDefaults(ctx context.Context) (bool, error)
}

type GalleryItemRepository interface {
	List(ctx context.Context) ([]models.GalleryItem, error)
	GetByID(ctx context.Context, id string) (*models.GalleryItem, error)
	GetByAlbumID(ctx context.Context, albumID string) ([]models.GalleryItem, error)
	Create(ctx context.Context, url, albumID string) (*models.GalleryItem, error)
	Update(ctx context.Context, id string, patch models.GalleryItemPatch) (*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type albumRepository struct {
	albums *collection[models.GalleryAlbum]
	items  *collection[models.GalleryItem]
	ids    IDGenerator
	now    func() time.Time
}

func (r *albumRepository) List(ctx context.Context) ([]models.GalleryAlbum, error) {
	return r.albums.list(ctx)
}

func (r *albumRepository) GetByID(ctx context.Context, id string) (*models.GalleryAlbum, error) {
	album, ok, err := r.albums.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("album", id)
	}
	return &album, nil
}

func (r *albumRepository) Create(ctx context.Context, name string) (*models.GalleryAlbum, error) {
	album := models.GalleryAlbum{
		ID:        r.ids.NewID(),
		Name:      name,
		CreatedAt: r.now(),
	}
	if err := r.albums.prepend(ctx, album); err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) Update(ctx context.Context, id string, patch models.AlbumPatch) (*models.GalleryAlbum, error) {
	album, err := r.albums.update(ctx, "album", id, func(a *models.GalleryAlbum) { patch.Apply(a) })
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// Delete locks albums before items. The album write happens first; if the
// item write then fails the album is gone and the error is returned. Calling
// Delete again removes the leftover items, since the item filter does not
// depend on the album still existing.
func (r *albumRepository) Delete(ctx context.Context, id string) error {
	r.albums.mu.Lock()
	r.items.mu.Lock()
	albumsChanged, err := r.albums.mutateLocked(ctx, func(albums []models.GalleryAlbum) ([]models.GalleryAlbum, bool, error) {
		return filter(albums, func(a models.GalleryAlbum) bool { return a.ID != id })
	})
	var itemsChanged bool
	if err == nil {
		itemsChanged, err = r.items.mutateLocked(ctx, func(items []models.GalleryItem) ([]models.GalleryItem, bool, error) {
			return filter(items, func(i models.GalleryItem) bool { return i.AlbumID != id })
		})
		if err != nil {
			err = fmt.Errorf("album %q removed but its items were not: %w", id, err)
		}
	}
	r.items.mu.Unlock()
	r.albums.mu.Unlock()

	if albumsChanged {
		r.albums.notifier.Publish(r.albums.name)
	}
	if itemsChanged {
		r.items.notifier.Publish(r.items.name)
	}
	return err
}

func (r *albumRepository) SeedDefaults(ctx context.Context) (bool, error) {
	var seeded bool
	err := r.albums.mutate(ctx, func(albums []models.GalleryAlbum) ([]models.GalleryAlbum, bool, error) {
		if len(albums) > 0 {
			return albums, false, nil
		}
		seeded = true
		return defaultAlbums(r.now()), true, nil
	})
	return seeded, err
}

// defaultAlbums are album-1..album-N, one per default name, all created at once.
func defaultAlbums(created time.Time) []models.GalleryAlbum {
	albums := make([]models.GalleryAlbum, 0, len(models.DefaultAlbumNames))
	for i, name := range models.DefaultAlbumNames {
		albums = append(albums, models.GalleryAlbum{
			ID:        fmt.Sprintf("album-%d", i+1),
			Name:      name,
			CreatedAt: created,
		})
	}
	return albums
}

type galleryItemRepository struct {
	coll *collection[models.GalleryItem]
	ids  IDGenerator
	now  func() time.Time
}

func (r *galleryItemRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	return r.coll.list(ctx)
}

func (r *galleryItemRepository) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	item, ok, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("gallery item", id)
	}
	return &item, nil
}

func (r *galleryItemRepository) GetByAlbumID(ctx context.Context, albumID string) ([]models.GalleryItem, error) {
	items, err := r.coll.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.GalleryItem, 0, len(items))
	for _, item := range items {
		if item.AlbumID == albumID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *galleryItemRepository) Create(ctx context.Context, url, albumID string) (*models.GalleryItem, error) {
	item := models.GalleryItem{
		ID:        r.ids.NewID(),
		URL:       url,
		AlbumID:   albumID,
		CreatedAt: r.now(),
	}
	if err := r.coll.prepend(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryItemRepository) Update(ctx context.Context, id string, patch models.GalleryItemPatch) (*models.GalleryItem, error) {
	item, err := r.coll.update(ctx, "gallery item", id, func(i *models.GalleryItem) { patch.Apply(i) })
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryItemRepository) Delete(ctx context.Context, id string) error {
	return r.coll.remove(ctx, func(i models.GalleryItem) bool { return i.ID != id })
}

type gormAlbumRepository struct {
	db     *gorm.DB
	albums *table[models.GalleryAlbum]
	ids    IDGenerator
	now    func() time.Time
}

func (r *gormAlbumRepository) List(ctx context.Context) ([]models.GalleryAlbum, error) {
	return r.albums.list(ctx, "")
}

func (r *gormAlbumRepository) GetByID(ctx context.Context, id string) (*models.GalleryAlbum, error) {
	return r.albums.get(ctx, "album", id)
}

func (r *gormAlbumRepository) Create(ctx context.Context, name string) (*models.GalleryAlbum, error) {
	album := models.GalleryAlbum{ID: r.ids.NewID(), Name: name, CreatedAt: r.now()}
	if err := r.albums.create(ctx, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *gormAlbumRepository) Update(ctx context.Context, id string, patch models.AlbumPatch) (*models.GalleryAlbum, error) {
	return r.albums.update(ctx, "album", id, func(a *models.GalleryAlbum) { patch.Apply(a) })
}

// Delete removes the album and its items in one transaction.
func (r *gormAlbumRepository) Delete(ctx context.Context, id string) error {
	var albumsChanged, itemsChanged bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.GalleryAlbum{})
		if res.Error != nil {
			return res.Error
		}
		albumsChanged = res.RowsAffected > 0
		res = tx.Where("album_id = ?", id).Delete(&models.GalleryItem{})
		if res.Error != nil {
			return res.Error
		}
		itemsChanged = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return r.albums.fail("save", err)
	}
	if albumsChanged {
		r.albums.notifier.Publish(CollectionGalleryAlbums)
	}
	if itemsChanged {
		r.albums.notifier.Publish(CollectionGalleryItems)
	}
	return nil
}

func (r *gormAlbumRepository) SeedDefaults(ctx context.Context) (bool, error) {
	var seeded bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.GalleryAlbum{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		albums := defaultAlbums(r.now())
		if err := tx.Create(&albums).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, r.albums.fail("save", err)
	}
	if seeded {
		r.albums.notifier.Publish(CollectionGalleryAlbums)
	}
	return seeded, nil
}

type gormGalleryItemRepository struct {
	table *table[models.GalleryItem]
	ids   IDGenerator
	now   func() time.Time
}

func (r *gormGalleryItemRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	return r.table.list(ctx, "")
}

func (r *gormGalleryItemRepository) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	return r.table.get(ctx, "gallery item", id)
}

func (r *gormGalleryItemRepository) GetByAlbumID(ctx context.Context, albumID string) ([]models.GalleryItem, error) {
	return r.table.list(ctx, "album_id = ?", albumID)
}

func (r *gormGalleryItemRepository) Create(ctx context.Context, url, albumID string) (*models.GalleryItem, error) {
	item := models.GalleryItem{ID: r.ids.NewID(), URL: url, AlbumID: albumID, CreatedAt: r.now()}
	if err := r.table.create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormGalleryItemRepository) Update(ctx context.Context, id string, patch models.GalleryItemPatch) (*models.GalleryItem, error) {
	return r.table.update(ctx, "gallery item", id, func(i *models.GalleryItem) { patch.Apply(i) })
}

func (r *gormGalleryItemRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(ctx, "id = ?", id)
}
