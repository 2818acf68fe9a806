package repository

import (
	"time"

	"tailorbook/internal/models"
	"tailorbook/internal/storage"

	"gorm.io/gorm"
)

// DefaultKeyPrefix namespaces every stored collection key.
const DefaultKeyPrefix = "sewnaija_"

type Options struct {
	// KeyPrefix namespaces document keys. Relational tables take their prefix
	// from the gorm naming strategy instead.
	KeyPrefix string
	IDs       IDGenerator
	Now       func() time.Time
	Notifier  *Notifier
}

// Repositories bundles the per-entity repositories sharing one backend.
type Repositories struct {
	Customers    CustomerRepository
	Orders       OrderRepository
	Albums       AlbumRepository
	GalleryItems GalleryItemRepository
	Settings     SettingsRepository
	Notifier     *Notifier
}

func (o Options) withDefaults() Options {
	if o.KeyPrefix == "" {
		o.KeyPrefix = DefaultKeyPrefix
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.IDs == nil {
		o.IDs = NewMillisGenerator(o.Now)
	}
	if o.Notifier == nil {
		o.Notifier = NewNotifier()
	}
	return o
}

// clock returns UTC timestamps at millisecond resolution, which every backend
// stores without loss.
func (o Options) clock() func() time.Time {
	return func() time.Time { return o.Now().UTC().Truncate(time.Millisecond) }
}

// New builds repositories that keep each collection as one document in backend.
func New(backend storage.Backend, opts Options) *Repositories {
	opts = opts.withDefaults()
	now := opts.clock()

	customers := newCollection(backend, opts.Notifier, opts.KeyPrefix, CollectionCustomers,
		func(c models.Customer) string { return c.ID })
	orders := newCollection(backend, opts.Notifier, opts.KeyPrefix, CollectionOrders,
		func(o models.Order) string { return o.ID })
	albums := newCollection(backend, opts.Notifier, opts.KeyPrefix, CollectionGalleryAlbums,
		func(a models.GalleryAlbum) string { return a.ID })
	items := newCollection(backend, opts.Notifier, opts.KeyPrefix, CollectionGalleryItems,
		func(i models.GalleryItem) string { return i.ID })

	return &Repositories{
		Customers:    &customerRepository{coll: customers, ids: opts.IDs, now: now},
		Orders:       &orderRepository{coll: orders, ids: opts.IDs, now: now},
		Albums:       &albumRepository{albums: albums, items: items, ids: opts.IDs, now: now},
		GalleryItems: &galleryItemRepository{coll: items, ids: opts.IDs, now: now},
		Settings: &settingsRepository{
			backend:  backend,
			key:      opts.KeyPrefix + CollectionSettings,
			notifier: opts.Notifier,
		},
		Notifier: opts.Notifier,
	}
}

// NewGorm builds repositories over one table per entity. The tables must
// already exist (see migrations.AutoMigrate).
func NewGorm(db *gorm.DB, opts Options) *Repositories {
	opts = opts.withDefaults()
	now := opts.clock()

	return &Repositories{
		Customers: &gormCustomerRepository{
			table: newTable[models.Customer](db, opts.Notifier, CollectionCustomers), ids: opts.IDs, now: now,
		},
		Orders: &gormOrderRepository{
			table: newTable[models.Order](db, opts.Notifier, CollectionOrders), ids: opts.IDs, now: now,
		},
		Albums: &gormAlbumRepository{
			db:     db,
			albums: newTable[models.GalleryAlbum](db, opts.Notifier, CollectionGalleryAlbums),
			ids:    opts.IDs,
			now:    now,
		},
		GalleryItems: &gormGalleryItemRepository{
			table: newTable[models.GalleryItem](db, opts.Notifier, CollectionGalleryItems), ids: opts.IDs, now: now,
		},
		Settings: &gormSettingsRepository{db: db, notifier: opts.Notifier},
		Notifier: opts.Notifier,
	}
}
