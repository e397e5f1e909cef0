package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"simplifytour/internal/api/controllers"
	"simplifytour/internal/config"
	"simplifytour/internal/graphapi"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/middleware"
)

type RouterParams struct {
	fx.In

	Config *config.Config
	Log    logger.Logger
	Users  services.UserService

	GraphQL   *graphapi.Handler
	Packages  *controllers.PackageController
	Itinerary *controllers.ItineraryController
	Prices    *controllers.PriceController
	Staff     *controllers.StaffController
	Articles  *controllers.ArticleController
	Ratings   *controllers.RatingController
	Keywords  *controllers.KeywordController
	Settings  *controllers.SettingController
	Media     *controllers.MediaController
	Dashboard *controllers.DashboardController
}

func NewRouter(p RouterParams) *gin.Engine {
	if !p.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = p.Config.Media.MaxUploadMB << 20
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(p.Config.CORSAllowOrigins))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	cookie := p.Config.JWT.CookieName
	optionalAuth := middleware.OptionalAuth(p.Users, cookie)

	if p.Config.Debug {
		r.GET("/graphql", p.GraphQL.Serve)
	}
	r.POST("/graphql", p.GraphQL.Serve)

	serveDir(r, p.Config.Media.MediaURL, p.Config.Media.MediaRoot)
	serveDir(r, p.Config.Media.StaticURL, p.Config.Media.StaticRoot)
	r.GET("/thumbnail", p.Media.Thumbnail)

	public := r.Group("", optionalAuth)
	public.GET("/packages", p.Packages.ListPublished)
	public.GET("/packages/*slug", p.Packages.GetBySlug)
	public.GET("/articles", p.Articles.ListPublished)
	public.GET("/articles/*slug", p.Articles.GetBySlug)

	ratings := r.Group("/ratings", optionalAuth)
	ratings.POST("/packages/:id", p.Ratings.RatePackage)
	ratings.POST("/articles/:id", p.Ratings.RateArticle)

	admin := r.Group("/admin", middleware.JWTAuthMiddleware(p.Users, cookie), middleware.StaffOnly())
	admin.GET("/dashboard", p.Dashboard.Dashboard)
	admin.GET("/displayable_links.js", p.Dashboard.DisplayableLinks)
	admin.GET("/static_proxy", p.Media.StaticProxy)
	admin.POST("/media", p.Media.Upload)

	admin.GET("/keywords", p.Keywords.List)
	admin.POST("/keywords/submit", p.Keywords.Submit)
	admin.DELETE("/keywords/:id", p.Keywords.Delete)

	admin.GET("/settings", p.Settings.List)
	admin.PUT("/settings/:name", p.Settings.Set)
	admin.DELETE("/settings/:name", p.Settings.Reset)

	admin.GET("/packages", p.Packages.ContentModels)
	pkgs := admin.Group("/packages/:kind")
	pkgs.GET("", p.Packages.List)
	pkgs.POST("", p.Packages.Create)
	pkgs.GET("/:id", p.Packages.Get)
	pkgs.PUT("/:id", p.Packages.Update)
	pkgs.DELETE("/:id", p.Packages.Delete)
	pkgs.POST("/:id/move", p.Packages.Move)
	pkgs.PUT("/:id/other_info", p.Packages.SetOtherInfo)
	pkgs.GET("/:id/itinerary", p.Itinerary.ListEntries)
	pkgs.POST("/:id/itinerary", p.Itinerary.AddEntry)
	pkgs.GET("/:id/addons", p.Itinerary.ListAddons)
	pkgs.POST("/:id/addons", p.Itinerary.AddAddon)
	pkgs.DELETE("/:id/addons/:itemId", p.Itinerary.RemoveAddon)
	pkgs.GET("/:id/prices", p.Prices.ListByPackage)
	pkgs.POST("/:id/prices", p.Prices.Create)

	admin.PUT("/itinerary/:entryId", p.Itinerary.UpdateEntry)
	admin.DELETE("/itinerary/:entryId", p.Itinerary.RemoveEntry)

	admin.GET("/prices/:id", p.Prices.Get)
	admin.PUT("/prices/:id", p.Prices.Update)
	admin.DELETE("/prices/:id", p.Prices.Delete)
	admin.POST("/prices/:id/starting_dates", p.Prices.AddStartingDate)
	admin.DELETE("/prices/:id/starting_dates/:date", p.Prices.RemoveStartingDate)

	admin.GET("/places", p.Itinerary.ListPlaces)
	admin.POST("/places", p.Itinerary.CreatePlace)
	admin.GET("/places/:id", p.Itinerary.GetPlace)
	admin.PUT("/places/:id", p.Itinerary.UpdatePlace)
	admin.DELETE("/places/:id", p.Itinerary.DeletePlace)

	admin.GET("/itinerary_items", p.Itinerary.ListItems)
	admin.POST("/itinerary_items", p.Itinerary.CreateItem)
	admin.GET("/itinerary_items/:id", p.Itinerary.GetItem)
	admin.PUT("/itinerary_items/:id", p.Itinerary.UpdateItem)
	admin.DELETE("/itinerary_items/:id", p.Itinerary.DeleteItem)

	admin.GET("/porters", p.Staff.ListPorters)
	admin.POST("/porters", p.Staff.CreatePorter)
	admin.GET("/porters/:id", p.Staff.GetPorter)
	admin.PUT("/porters/:id", p.Staff.UpdatePorter)
	admin.DELETE("/porters/:id", p.Staff.DeletePorter)

	admin.GET("/guides", p.Staff.ListGuides)
	admin.POST("/guides", p.Staff.CreateGuide)
	admin.GET("/guides/:id", p.Staff.GetGuide)
	admin.PUT("/guides/:id", p.Staff.UpdateGuide)
	admin.DELETE("/guides/:id", p.Staff.DeleteGuide)

	admin.GET("/articles", p.Articles.List)
	admin.POST("/articles", p.Articles.Create)
	admin.GET("/articles/:id", p.Articles.Get)
	admin.PUT("/articles/:id", p.Articles.Update)
	admin.DELETE("/articles/:id", p.Articles.Delete)
	admin.POST("/articles/:id/zip_import", p.Articles.ZipImport)
	admin.POST("/articles/:id/images", p.Articles.AddImage)
	admin.PUT("/gallery_images/:imageId", p.Articles.UpdateImage)
	admin.DELETE("/gallery_images/:imageId", p.Articles.DeleteImage)
}

// serveDir serves root under a site-relative URL prefix. Absolute URLs point
// at another host and are left alone.
func serveDir(r *gin.Engine, prefix, root string) {
	prefix = strings.TrimSuffix(prefix, "/")
	if !strings.HasPrefix(prefix, "/") || root == "" {
		return
	}
	r.Static(prefix, root)
}
