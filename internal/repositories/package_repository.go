package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simplifytour/internal/models/db_models"
)

// PackageFilter narrows package listings. Zero values mean "any".
type PackageFilter struct {
	Kind                 string
	ParentID             *uuid.UUID
	RootOnly             bool
	Featured             *bool
	KeywordID            *uuid.UUID
	PublishedAt          *int64
	ExcludeLoginRequired bool
	IncludeArchived      bool
	Limit                int
	Offset               int
}

type KindStatusCount struct {
	ContentModel string
	Status       int
	Count        int64
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *db_models.Package) error
	Update(ctx context.Context, pkg *db_models.Package) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Package, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*db_models.Package, error)
	FindBySlugs(ctx context.Context, slugs []string, filter PackageFilter) ([]db_models.Package, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter PackageFilter) ([]db_models.Package, int64, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]db_models.Package, error)
	CountSiblings(ctx context.Context, parentID *uuid.UUID) (int64, error)
	ShiftSiblingOrder(ctx context.Context, parentID *uuid.UUID, after int) error
	CountByKindAndStatus(ctx context.Context) ([]KindStatusCount, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func replacePackageAssociations(tx *gorm.DB, pkg *db_models.Package) error {
	if pkg.Porters != nil {
		if err := tx.Model(pkg).Association("Porters").Replace(pkg.Porters); err != nil {
			return err
		}
	}
	if pkg.Guides != nil {
		if err := tx.Model(pkg).Association("Guides").Replace(pkg.Guides); err != nil {
			return err
		}
	}
	if pkg.Keywords != nil {
		if err := tx.Model(pkg).Association("Keywords").Replace(pkg.Keywords); err != nil {
			return err
		}
	}
	return nil
}

func (r *packageRepository) Create(ctx context.Context, pkg *db_models.Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(pkg).Error; err != nil {
			return err
		}
		return replacePackageAssociations(tx, pkg)
	})
}

// Update saves every column. Porters, Guides and Keywords are replaced when non-nil.
func (r *packageRepository) Update(ctx context.Context, pkg *db_models.Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(pkg).Error; err != nil {
			return err
		}
		return replacePackageAssociations(tx, pkg)
	})
}

func (r *packageRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&db_models.Package{}).Where("id = ?", id).Updates(fields).Error
}

func (r *packageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("package_id = ?", id).Delete(&db_models.PackageItinerary{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("package_id = ?", id).Delete(&db_models.PackageAddon{}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", id).Delete(&db_models.Price{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Package{}, "id = ?", id).Error
	})
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Package, error) {
	return findOne[db_models.Package](ctx, r.db, "id = ?", id)
}

func preloadDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Porters").
		Preload("Guides").
		Preload("Keywords").
		Preload("Itinerary", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Itinerary.Item").
		Preload("Itinerary.Item.StartingPlace").
		Preload("Itinerary.Item.EndingPlace").
		Preload("Addons.Item").
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("discounted_price DESC")
		})
}

// FindDetail loads a package with all of its related rows.
func (r *packageRepository) FindDetail(ctx context.Context, id uuid.UUID) (*db_models.Package, error) {
	return findOne[db_models.Package](ctx, preloadDetail(r.db), "id = ?", id)
}

func (r *packageRepository) applyFilter(db *gorm.DB, filter PackageFilter) *gorm.DB {
	if filter.Kind != "" {
		db = db.Where("content_model = ?", filter.Kind)
	}
	if filter.ParentID != nil {
		db = db.Where("parent_id = ?", *filter.ParentID)
	} else if filter.RootOnly {
		db = db.Where("parent_id IS NULL")
	}
	if filter.Featured != nil {
		db = db.Where("is_featured = ?", *filter.Featured)
	}
	if filter.KeywordID != nil {
		db = db.Where("id IN (?)", r.db.Table("package_keywords").
			Select("package_id").Where("keyword_id = ?", *filter.KeywordID))
	}
	if filter.PublishedAt != nil {
		db = db.Scopes(db_models.Published(*filter.PublishedAt))
	}
	if filter.ExcludeLoginRequired {
		db = db.Where("login_required = ?", false)
	}
	if !filter.IncludeArchived {
		db = db.Where("is_archived = ?", false)
	}
	return db
}

func (r *packageRepository) FindBySlugs(ctx context.Context, slugs []string, filter PackageFilter) ([]db_models.Package, error) {
	var packages []db_models.Package
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Where("slug IN ?", slugs).
		Order("slug DESC").
		Find(&packages).Error
	return packages, err
}

func (r *packageRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&db_models.Package{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *packageRepository) List(ctx context.Context, filter PackageFilter) ([]db_models.Package, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Package{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var packages []db_models.Package
	err := query.
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_archived = ?", false).Order("discounted_price DESC")
		}).
		Scopes(paginate(filter.Limit, filter.Offset)).
		Order("sort_order ASC, title ASC").
		Find(&packages).Error
	if err != nil {
		return nil, 0, err
	}
	return packages, total, nil
}

func (r *packageRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]db_models.Package, error) {
	var packages []db_models.Package
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC").
		Find(&packages).Error
	return packages, err
}

func siblingScope(parentID *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if parentID == nil {
			return db.Where("parent_id IS NULL")
		}
		return db.Where("parent_id = ?", *parentID)
	}
}

func (r *packageRepository) CountSiblings(ctx context.Context, parentID *uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Package{}).
		Scopes(siblingScope(parentID)).
		Count(&count).Error
	return count, err
}

// ShiftSiblingOrder closes the gap left by a removed sibling.
func (r *packageRepository) ShiftSiblingOrder(ctx context.Context, parentID *uuid.UUID, after int) error {
	return r.db.WithContext(ctx).Model(&db_models.Package{}).
		Scopes(siblingScope(parentID)).
		Where("sort_order > ?", after).
		UpdateColumn("sort_order", gorm.Expr("sort_order - 1")).Error
}

func (r *packageRepository) CountByKindAndStatus(ctx context.Context) ([]KindStatusCount, error) {
	var rows []KindStatusCount
	err := r.db.WithContext(ctx).Model(&db_models.Package{}).
		Select("content_model, status, COUNT(*) AS count").
		Group("content_model, status").
		Order("content_model, status").
		Scan(&rows).Error
	return rows, err
}
