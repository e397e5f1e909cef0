package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/richtext"
	"simplifytour/pkg/utils"
)

type PriceService interface {
	Create(ctx context.Context, packageID uuid.UUID, req request_models.PriceRequest) (*db_models.Price, error)
	Update(ctx context.Context, id uuid.UUID, req request_models.PriceRequest) (*db_models.Price, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*db_models.Price, error)
	ListByPackage(ctx context.Context, packageID uuid.UUID, includeArchived bool) ([]db_models.Price, error)
	AddStartingDate(ctx context.Context, id uuid.UUID, date string) (*db_models.Price, error)
	RemoveStartingDate(ctx context.Context, id uuid.UUID, date string) (*db_models.Price, error)
}

type priceService struct {
	priceRepo   repositories.PriceRepository
	packageRepo repositories.PackageRepository
	settings    SettingService
}

func NewPriceService(priceRepo repositories.PriceRepository, packageRepo repositories.PackageRepository, settings SettingService) PriceService {
	return &priceService{priceRepo: priceRepo, packageRepo: packageRepo, settings: settings}
}

// normalizeDates validates, de-duplicates and sorts YYYY-MM-DD dates.
func normalizeDates(dates []string) ([]string, error) {
	seen := make(map[string]bool, len(dates))
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		parsed, err := utils.ParseDate(d)
		if err != nil {
			return nil, err
		}
		if seen[parsed] {
			continue
		}
		seen[parsed] = true
		result = append(result, parsed)
	}
	sort.Strings(result)
	return result, nil
}

func (s *priceService) apply(ctx context.Context, price *db_models.Price, req request_models.PriceRequest) error {
	price.Standard = req.Standard
	if price.Standard == 0 {
		price.Standard = db_models.StandardBudget
	}
	price.MarkedPrice = req.MarkedPrice
	price.DiscountedPrice = req.DiscountedPrice
	price.PriceNotes = req.PriceNotes
	price.MinGroupSize = req.MinGroupSize
	if price.MinGroupSize == 0 {
		price.MinGroupSize = 1
	}
	price.ReducedBy = req.ReducedBy
	price.BookingAmount = req.BookingAmount
	price.MaxGroupSize = req.MaxGroupSize
	price.IsArchived = req.IsArchived
	if req.MinGroupSize > req.MaxGroupSize {
		return utils.ErrInvalidInput
	}
	if req.ExtraContent != nil {
		extra := richtext.Escape(*req.ExtraContent, s.settings.GetInt(ctx, SettingRichTextFilterLevel))
		price.ExtraContent = &extra
	} else {
		price.ExtraContent = nil
	}

	dates := append([]string{}, req.StartingDates...)
	if req.Date != "" {
		dates = append(dates, req.Date)
	}
	normalized, err := normalizeDates(dates)
	if err != nil {
		return err
	}
	return price.SetStartingDates(normalized)
}

func (s *priceService) Create(ctx context.Context, packageID uuid.UUID, req request_models.PriceRequest) (*db_models.Price, error) {
	pkg, err := s.packageRepo.FindByID(ctx, packageID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pkg == nil {
		return nil, utils.ErrPackageNotFound
	}
	price := &db_models.Price{PackageID: packageID}
	if err := s.apply(ctx, price, req); err != nil {
		return nil, err
	}
	if err := s.priceRepo.Create(ctx, price); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return price, nil
}

func (s *priceService) Update(ctx context.Context, id uuid.UUID, req request_models.PriceRequest) (*db_models.Price, error) {
	price, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, price, req); err != nil {
		return nil, err
	}
	if err := s.priceRepo.Save(ctx, price); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return price, nil
}

func (s *priceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.priceRepo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *priceService) Get(ctx context.Context, id uuid.UUID) (*db_models.Price, error) {
	price, err := s.priceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if price == nil {
		return nil, utils.ErrPriceNotFound
	}
	return price, nil
}

func (s *priceService) ListByPackage(ctx context.Context, packageID uuid.UUID, includeArchived bool) ([]db_models.Price, error) {
	prices, err := s.priceRepo.ListByPackage(ctx, packageID, includeArchived)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return prices, nil
}

// AddStartingDate appends a date to the price. A date already listed is a no-op.
func (s *priceService) AddStartingDate(ctx context.Context, id uuid.UUID, date string) (*db_models.Price, error) {
	price, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dates, err := normalizeDates(append(price.StartingDates(), date))
	if err != nil {
		return nil, err
	}
	if err := price.SetStartingDates(dates); err != nil {
		return nil, err
	}
	if err := s.priceRepo.Save(ctx, price); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return price, nil
}

func (s *priceService) RemoveStartingDate(ctx context.Context, id uuid.UUID, date string) (*db_models.Price, error) {
	price, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	target, err := utils.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return nil, err
	}
	remaining := make([]string, 0)
	for _, d := range price.StartingDates() {
		if d != target {
			remaining = append(remaining, d)
		}
	}
	if err := price.SetStartingDates(remaining); err != nil {
		return nil, err
	}
	if err := s.priceRepo.Save(ctx, price); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return price, nil
}
