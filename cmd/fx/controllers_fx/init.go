package controllers_fx

import (
	"go.uber.org/fx"

	"simplifytour/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPackageController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewPriceController),
	fx.Provide(controllers.NewStaffController),
	fx.Provide(controllers.NewArticleController),
	fx.Provide(controllers.NewRatingController),
	fx.Provide(controllers.NewKeywordController),
	fx.Provide(controllers.NewSettingController),
	fx.Provide(controllers.NewMediaController),
	fx.Provide(controllers.NewDashboardController))
