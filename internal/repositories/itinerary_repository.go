package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simplifytour/internal/models/db_models"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *db_models.Place) error
	Save(ctx context.Context, place *db_models.Place) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Place, error)
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, search string, limit, offset int) ([]db_models.Place, int64, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *db_models.Place) error {
	return r.db.WithContext(ctx).Create(place).Error
}

func (r *placeRepository) Save(ctx context.Context, place *db_models.Place) error {
	return r.db.WithContext(ctx).Save(place).Error
}

// Delete removes the place for good so its name can be reused.
func (r *placeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.ItineraryItem{}).Where("starting_place_id = ?", id).
			Update("starting_place_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&db_models.ItineraryItem{}).Where("ending_place_id = ?", id).
			Update("ending_place_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&db_models.Place{}, "id = ?", id).Error
	})
}

func (r *placeRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Place, error) {
	return findOne[db_models.Place](ctx, r.db, "id = ?", id)
}

func (r *placeRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&db_models.Place{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *placeRepository) List(ctx context.Context, search string, limit, offset int) ([]db_models.Place, int64, error) {
	query := r.db.WithContext(ctx).Model(&db_models.Place{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var places []db_models.Place
	err := query.Scopes(paginate(limit, offset)).Order("name ASC").Find(&places).Error
	return places, total, err
}

type ItineraryRepository interface {
	CreateItem(ctx context.Context, item *db_models.ItineraryItem) error
	SaveItem(ctx context.Context, item *db_models.ItineraryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	FindItem(ctx context.Context, id uuid.UUID) (*db_models.ItineraryItem, error)
	ListItems(ctx context.Context, search string, limit, offset int) ([]db_models.ItineraryItem, int64, error)

	AddEntry(ctx context.Context, entry *db_models.PackageItinerary) error
	FindEntry(ctx context.Context, id uuid.UUID) (*db_models.PackageItinerary, error)
	EntryExists(ctx context.Context, packageID, itemID uuid.UUID) (bool, error)
	ListEntries(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageItinerary, error)
	CountEntries(ctx context.Context, packageID uuid.UUID) (int64, error)
	DeleteEntry(ctx context.Context, entry *db_models.PackageItinerary) error
	SetEntryOrder(ctx context.Context, entryID uuid.UUID, order int) error

	AddAddon(ctx context.Context, addon *db_models.PackageAddon) error
	AddonExists(ctx context.Context, packageID, itemID uuid.UUID) (bool, error)
	ListAddons(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageAddon, error)
	DeleteAddon(ctx context.Context, packageID, itemID uuid.UUID) (bool, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) CreateItem(ctx context.Context, item *db_models.ItineraryItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *itineraryRepository) SaveItem(ctx context.Context, item *db_models.ItineraryItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *itineraryRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("item_id = ?", id).Delete(&db_models.PackageItinerary{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("item_id = ?", id).Delete(&db_models.PackageAddon{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.ItineraryItem{}, "id = ?", id).Error
	})
}

func (r *itineraryRepository) FindItem(ctx context.Context, id uuid.UUID) (*db_models.ItineraryItem, error) {
	return findOne[db_models.ItineraryItem](ctx, r.db.Preload("StartingPlace").Preload("EndingPlace"), "id = ?", id)
}

func (r *itineraryRepository) ListItems(ctx context.Context, search string, limit, offset int) ([]db_models.ItineraryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&db_models.ItineraryItem{})
	if search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []db_models.ItineraryItem
	err := query.Preload("StartingPlace").Preload("EndingPlace").
		Scopes(paginate(limit, offset)).
		Order("title ASC").
		Find(&items).Error
	return items, total, err
}

func (r *itineraryRepository) AddEntry(ctx context.Context, entry *db_models.PackageItinerary) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

func (r *itineraryRepository) FindEntry(ctx context.Context, id uuid.UUID) (*db_models.PackageItinerary, error) {
	return findOne[db_models.PackageItinerary](ctx, r.db.Preload("Item"), "id = ?", id)
}

func (r *itineraryRepository) EntryExists(ctx context.Context, packageID, itemID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.PackageItinerary{}).
		Where("package_id = ? AND item_id = ?", packageID, itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *itineraryRepository) ListEntries(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageItinerary, error) {
	var entries []db_models.PackageItinerary
	err := r.db.WithContext(ctx).Preload("Item").
		Where("package_id = ?", packageID).
		Order("sort_order ASC").
		Find(&entries).Error
	return entries, err
}

func (r *itineraryRepository) CountEntries(ctx context.Context, packageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.PackageItinerary{}).
		Where("package_id = ?", packageID).
		Count(&count).Error
	return count, err
}

// DeleteEntry removes the entry and shifts the following entries up.
func (r *itineraryRepository) DeleteEntry(ctx context.Context, entry *db_models.PackageItinerary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&db_models.PackageItinerary{}, "id = ?", entry.ID).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.PackageItinerary{}).
			Where("package_id = ? AND sort_order > ?", entry.PackageID, entry.OrderValue()).
			UpdateColumn("sort_order", gorm.Expr("sort_order - 1")).Error
	})
}

func (r *itineraryRepository) SetEntryOrder(ctx context.Context, entryID uuid.UUID, order int) error {
	return r.db.WithContext(ctx).Model(&db_models.PackageItinerary{}).
		Where("id = ?", entryID).
		UpdateColumn("sort_order", order).Error
}

func (r *itineraryRepository) AddAddon(ctx context.Context, addon *db_models.PackageAddon) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(addon).Error
}

func (r *itineraryRepository) AddonExists(ctx context.Context, packageID, itemID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.PackageAddon{}).
		Where("package_id = ? AND item_id = ?", packageID, itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *itineraryRepository) ListAddons(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageAddon, error) {
	var addons []db_models.PackageAddon
	err := r.db.WithContext(ctx).Preload("Item").
		Where("package_id = ?", packageID).
		Order("created_at ASC").
		Find(&addons).Error
	return addons, err
}

func (r *itineraryRepository) DeleteAddon(ctx context.Context, packageID, itemID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("package_id = ? AND item_id = ?", packageID, itemID).
		Delete(&db_models.PackageAddon{})
	return res.RowsAffected > 0, res.Error
}
