package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	KindPackage            = "package"
	KindTrekPackage        = "trekpackage"
	KindAdventurousPackage = "adventurouspackage"
)

// PackageKinds maps each package kind to its display name.
var PackageKinds = map[string]string{
	KindPackage:            "Package",
	KindTrekPackage:        "Trekking Package",
	KindAdventurousPackage: "Adventurous Package",
}

// ContentModels lists the concrete package kinds in display order.
func ContentModels() []string {
	return []string{KindPackage, KindTrekPackage, KindAdventurousPackage}
}

func IsPackageKind(kind string) bool {
	_, ok := PackageKinds[kind]
	return ok
}

type Package struct {
	BaseModel
	Displayable
	Orderable
	ContentTyped
	RatingSummary

	ParentID      *uuid.UUID `gorm:"type:uuid;index"`
	Titles        string     `gorm:"size:1000"`
	LoginRequired bool
	Content       string    `gorm:"type:text"`
	Include       string    `gorm:"type:text"`
	Exclude       string    `gorm:"type:text"`
	FeaturedImage string    `gorm:"size:255"`
	ProvidedByID  uuid.UUID `gorm:"type:uuid;not null;index"`
	IsFeatured    bool
	IsArchived    bool

	PorterRequired bool
	PorterDays     int
	Porters        []Porter `gorm:"many2many:package_porters"`
	GuideRequired  bool
	GuideDays      int
	Guides         []Guide `gorm:"many2many:package_guides"`

	OtherInfo datatypes.JSON
	Keywords  []Keyword          `gorm:"many2many:package_keywords"`
	Itinerary []PackageItinerary `gorm:"foreignKey:PackageID"`
	Addons    []PackageAddon     `gorm:"foreignKey:PackageID"`
	Prices    []Price            `gorm:"foreignKey:PackageID"`

	Ascendants []Package `gorm:"-"`
}

func (p *Package) VerboseName() string {
	if name, ok := PackageKinds[p.ContentModel]; ok {
		return name
	}
	return PackageKinds[KindPackage]
}

// Days sums the days of the loaded itinerary.
func (p *Package) Days() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range p.Itinerary {
		if entry.Item != nil {
			total = total.Add(entry.Item.Days)
		}
	}
	return total
}

func (p *Package) DefaultPorter() *Porter {
	if len(p.Porters) == 0 {
		return nil
	}
	return &p.Porters[0]
}

func (p *Package) DefaultGuide() *Guide {
	if len(p.Guides) == 0 {
		return nil
	}
	return &p.Guides[0]
}

// CanAdd reports whether children may be created under p.
func (p *Package) CanAdd() bool    { return p.Slug != HomeSlug }
func (p *Package) CanChange() bool { return true }
func (p *Package) CanDelete() bool { return true }

// PackageItinerary orders itinerary items within a package.
type PackageItinerary struct {
	BaseModel
	Orderable
	PackageID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_package_itinerary_item"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_package_itinerary_item"`
	Item      *ItineraryItem `gorm:"foreignKey:ItemID"`
}

func (e *PackageItinerary) Title() string {
	if e.Item == nil {
		return ""
	}
	return e.Item.Title
}

type PackageAddon struct {
	BaseModel
	PackageID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_package_addon_item"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_package_addon_item"`
	Item      *ItineraryItem `gorm:"foreignKey:ItemID"`
}
