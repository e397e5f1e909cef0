package package_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"simplifytour/internal/repositories"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
)

var Module = fx.Provide(
	providePackageRepo, provideStaffRepo, provideKeywordRepo, providePlaceRepo,
	provideItineraryRepo, providePriceRepo, provideRatingRepo,
	providePackageService, provideItineraryService, providePriceService,
	provideStaffService, provideKeywordService, provideRatingService,
)

func providePackageRepo(db *gorm.DB) repositories.PackageRepository {
	return repositories.NewPackageRepository(db)
}

func provideStaffRepo(db *gorm.DB) repositories.StaffRepository {
	return repositories.NewStaffRepository(db)
}

func provideKeywordRepo(db *gorm.DB) repositories.KeywordRepository {
	return repositories.NewKeywordRepository(db)
}

func providePlaceRepo(db *gorm.DB) repositories.PlaceRepository {
	return repositories.NewPlaceRepository(db)
}

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func providePriceRepo(db *gorm.DB) repositories.PriceRepository {
	return repositories.NewPriceRepository(db)
}

func provideRatingRepo(db *gorm.DB) repositories.RatingRepository {
	return repositories.NewRatingRepository(db)
}

func providePackageService(
	packageRepo repositories.PackageRepository,
	staffRepo repositories.StaffRepository,
	keywordRepo repositories.KeywordRepository,
	settings services.SettingService,
	log logger.Logger,
) services.PackageService {
	return services.NewPackageService(packageRepo, staffRepo, keywordRepo, settings, log)
}

func provideItineraryService(placeRepo repositories.PlaceRepository, itineraryRepo repositories.ItineraryRepository, packageRepo repositories.PackageRepository) services.ItineraryService {
	return services.NewItineraryService(placeRepo, itineraryRepo, packageRepo)
}

func providePriceService(priceRepo repositories.PriceRepository, packageRepo repositories.PackageRepository, settings services.SettingService) services.PriceService {
	return services.NewPriceService(priceRepo, packageRepo, settings)
}

func provideStaffService(repo repositories.StaffRepository) services.StaffService {
	return services.NewStaffService(repo)
}

func provideKeywordService(repo repositories.KeywordRepository) services.KeywordService {
	return services.NewKeywordService(repo)
}

func provideRatingService(repo repositories.RatingRepository) services.RatingService {
	return services.NewRatingService(repo)
}
