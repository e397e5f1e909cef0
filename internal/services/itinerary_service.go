package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/utils"
)

type ItineraryService interface {
	CreatePlace(ctx context.Context, req request_models.PlaceRequest) (*db_models.Place, error)
	UpdatePlace(ctx context.Context, id uuid.UUID, req request_models.PlaceRequest) (*db_models.Place, error)
	DeletePlace(ctx context.Context, id uuid.UUID) error
	GetPlace(ctx context.Context, id uuid.UUID) (*db_models.Place, error)
	ListPlaces(ctx context.Context, search string, page utils.Page) ([]db_models.Place, int64, error)

	CreateItem(ctx context.Context, req request_models.ItineraryItemRequest, providerID uuid.UUID) (*db_models.ItineraryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req request_models.ItineraryItemRequest) (*db_models.ItineraryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	GetItem(ctx context.Context, id uuid.UUID) (*db_models.ItineraryItem, error)
	ListItems(ctx context.Context, search string, page utils.Page) ([]db_models.ItineraryItem, int64, error)

	AddEntry(ctx context.Context, packageID uuid.UUID, req request_models.ItineraryEntryRequest) (*db_models.PackageItinerary, error)
	UpdateEntry(ctx context.Context, entryID uuid.UUID, req request_models.ItineraryEntryUpdateRequest) (*db_models.PackageItinerary, error)
	RemoveEntry(ctx context.Context, entryID uuid.UUID) error
	ListEntries(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageItinerary, error)

	AddAddon(ctx context.Context, packageID, itemID uuid.UUID) (*db_models.PackageAddon, error)
	RemoveAddon(ctx context.Context, packageID, itemID uuid.UUID) error
	ListAddons(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageAddon, error)
}

type itineraryService struct {
	placeRepo     repositories.PlaceRepository
	itineraryRepo repositories.ItineraryRepository
	packageRepo   repositories.PackageRepository
}

func NewItineraryService(
	placeRepo repositories.PlaceRepository,
	itineraryRepo repositories.ItineraryRepository,
	packageRepo repositories.PackageRepository,
) ItineraryService {
	return &itineraryService{
		placeRepo:     placeRepo,
		itineraryRepo: itineraryRepo,
		packageRepo:   packageRepo,
	}
}

func (s *itineraryService) CreatePlace(ctx context.Context, req request_models.PlaceRequest) (*db_models.Place, error) {
	name := strings.TrimSpace(req.Name)
	exists, err := s.placeRepo.NameExists(ctx, name, uuid.Nil)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exists {
		return nil, utils.ErrPlaceExists
	}
	place := &db_models.Place{Name: name}
	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return place, nil
}

func (s *itineraryService) UpdatePlace(ctx context.Context, id uuid.UUID, req request_models.PlaceRequest) (*db_models.Place, error) {
	place, err := s.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	exists, err := s.placeRepo.NameExists(ctx, name, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exists {
		return nil, utils.ErrPlaceExists
	}
	place.Name = name
	if err := s.placeRepo.Save(ctx, place); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return place, nil
}

// DeletePlace detaches the place from itinerary items before removing it.
func (s *itineraryService) DeletePlace(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPlace(ctx, id); err != nil {
		return err
	}
	if err := s.placeRepo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *itineraryService) GetPlace(ctx context.Context, id uuid.UUID) (*db_models.Place, error) {
	place, err := s.placeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}
	return place, nil
}

func (s *itineraryService) ListPlaces(ctx context.Context, search string, page utils.Page) ([]db_models.Place, int64, error) {
	places, total, err := s.placeRepo.List(ctx, search, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return places, total, nil
}

func (s *itineraryService) applyItem(ctx context.Context, item *db_models.ItineraryItem, req request_models.ItineraryItemRequest) error {
	for _, placeID := range []*uuid.UUID{req.StartingPlaceID, req.EndingPlaceID} {
		if placeID == nil {
			continue
		}
		if _, err := s.GetPlace(ctx, *placeID); err != nil {
			return err
		}
	}

	item.Title = strings.TrimSpace(req.Title)
	item.Description = req.Description
	item.StartingPlaceID = req.StartingPlaceID
	item.EndingPlaceID = req.EndingPlaceID
	item.Price = req.Price
	item.Days = decimal.NewFromInt(1)
	if req.Days != nil {
		item.Days = *req.Days
	}
	item.Duration = decimal.Zero
	if req.Duration != nil {
		item.Duration = *req.Duration
	}
	if item.Days.IsNegative() || item.Duration.IsNegative() {
		return utils.ErrInvalidInput
	}

	var err error
	if item.StartingTime, err = parseOptionalClock(req.StartingTime); err != nil {
		return err
	}
	if item.EndTime, err = parseOptionalClock(req.EndTime); err != nil {
		return err
	}
	return nil
}

func parseOptionalClock(s *string) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	clock, err := utils.ParseClock(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &clock, nil
}

func (s *itineraryService) CreateItem(ctx context.Context, req request_models.ItineraryItemRequest, providerID uuid.UUID) (*db_models.ItineraryItem, error) {
	item := &db_models.ItineraryItem{ProvidedByID: providerID}
	if err := s.applyItem(ctx, item, req); err != nil {
		return nil, err
	}
	if err := s.itineraryRepo.CreateItem(ctx, item); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.GetItem(ctx, item.ID)
}

func (s *itineraryService) UpdateItem(ctx context.Context, id uuid.UUID, req request_models.ItineraryItemRequest) (*db_models.ItineraryItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyItem(ctx, item, req); err != nil {
		return nil, err
	}
	if err := s.itineraryRepo.SaveItem(ctx, item); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.GetItem(ctx, id)
}

func (s *itineraryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.itineraryRepo.DeleteItem(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *itineraryService) GetItem(ctx context.Context, id uuid.UUID) (*db_models.ItineraryItem, error) {
	item, err := s.itineraryRepo.FindItem(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}
	return item, nil
}

func (s *itineraryService) ListItems(ctx context.Context, search string, page utils.Page) ([]db_models.ItineraryItem, int64, error) {
	items, total, err := s.itineraryRepo.ListItems(ctx, search, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return items, total, nil
}

func (s *itineraryService) requirePackage(ctx context.Context, id uuid.UUID) error {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if pkg == nil {
		return utils.ErrPackageNotFound
	}
	return nil
}

func (s *itineraryService) AddEntry(ctx context.Context, packageID uuid.UUID, req request_models.ItineraryEntryRequest) (*db_models.PackageItinerary, error) {
	if err := s.requirePackage(ctx, packageID); err != nil {
		return nil, err
	}
	if _, err := s.GetItem(ctx, req.ItemID); err != nil {
		return nil, err
	}
	exists, err := s.itineraryRepo.EntryExists(ctx, packageID, req.ItemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exists {
		return nil, utils.ErrDuplicateEntry
	}

	entry := &db_models.PackageItinerary{PackageID: packageID, ItemID: req.ItemID}
	if req.Order != nil {
		entry.Order = req.Order
	} else {
		count, err := s.itineraryRepo.CountEntries(ctx, packageID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		order := int(count)
		entry.Order = &order
	}
	if err := s.itineraryRepo.AddEntry(ctx, entry); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.findEntry(ctx, entry.ID)
}

func (s *itineraryService) findEntry(ctx context.Context, id uuid.UUID) (*db_models.PackageItinerary, error) {
	entry, err := s.itineraryRepo.FindEntry(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if entry == nil {
		return nil, utils.ErrEntryNotFound
	}
	return entry, nil
}

// UpdateEntry writes title and description through to the linked item.
func (s *itineraryService) UpdateEntry(ctx context.Context, entryID uuid.UUID, req request_models.ItineraryEntryUpdateRequest) (*db_models.PackageItinerary, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Item == nil {
		return nil, utils.ErrItemNotFound
	}

	changed := false
	if title := strings.TrimSpace(req.Title); title != "" && title != entry.Item.Title {
		entry.Item.Title = title
		changed = true
	}
	if req.Description != "" && req.Description != entry.Item.Description {
		entry.Item.Description = req.Description
		changed = true
	}
	if changed {
		if err := s.itineraryRepo.SaveItem(ctx, entry.Item); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	if req.Order != nil {
		if err := s.itineraryRepo.SetEntryOrder(ctx, entry.ID, *req.Order); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	return s.findEntry(ctx, entryID)
}

func (s *itineraryService) RemoveEntry(ctx context.Context, entryID uuid.UUID) error {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if err := s.itineraryRepo.DeleteEntry(ctx, entry); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *itineraryService) ListEntries(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageItinerary, error) {
	if err := s.requirePackage(ctx, packageID); err != nil {
		return nil, err
	}
	entries, err := s.itineraryRepo.ListEntries(ctx, packageID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return entries, nil
}

func (s *itineraryService) AddAddon(ctx context.Context, packageID, itemID uuid.UUID) (*db_models.PackageAddon, error) {
	if err := s.requirePackage(ctx, packageID); err != nil {
		return nil, err
	}
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	exists, err := s.itineraryRepo.AddonExists(ctx, packageID, itemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exists {
		return nil, utils.ErrDuplicateEntry
	}
	addon := &db_models.PackageAddon{PackageID: packageID, ItemID: itemID}
	if err := s.itineraryRepo.AddAddon(ctx, addon); err != nil {
		return nil, utils.ErrDatabaseError
	}
	addon.Item = item
	return addon, nil
}

func (s *itineraryService) RemoveAddon(ctx context.Context, packageID, itemID uuid.UUID) error {
	removed, err := s.itineraryRepo.DeleteAddon(ctx, packageID, itemID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !removed {
		return utils.ErrEntryNotFound
	}
	return nil
}

func (s *itineraryService) ListAddons(ctx context.Context, packageID uuid.UUID) ([]db_models.PackageAddon, error) {
	if err := s.requirePackage(ctx, packageID); err != nil {
		return nil, err
	}
	addons, err := s.itineraryRepo.ListAddons(ctx, packageID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return addons, nil
}
