package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/middleware"
	"simplifytour/pkg/thumbnail"
	"simplifytour/pkg/utils"
)

const (
	listThumbWidth    = 400
	listThumbHeight   = 300
	detailThumbWidth  = 1200
	detailThumbHeight = 0
)

type PackageController struct {
	packages services.PackageService
	media    services.MediaService
}

func NewPackageController(packages services.PackageService, media services.MediaService) *PackageController {
	return &PackageController{packages: packages, media: media}
}

func (p *PackageController) thumb(image string, width, height int) string {
	if image == "" {
		return ""
	}
	return p.media.URL(p.media.Thumbnail(p.media.URL(image), width, height, thumbnail.DefaultOptions()))
}

func (p *PackageController) adminThumb(c *gin.Context, image string) string {
	if image == "" {
		return ""
	}
	return p.media.AdminThumb(c.Request.Context(), p.media.URL(image))
}

func (p *PackageController) summaries(pkgs []db_models.Package) []resp.PackageSummary {
	out := make([]resp.PackageSummary, 0, len(pkgs))
	for i := range pkgs {
		out = append(out, resp.NewPackageSummary(&pkgs[i], p.thumb(pkgs[i].FeaturedImage, listThumbWidth, listThumbHeight)))
	}
	return out
}

// handlePackageError redirects requests addressed under the wrong kind to the
// package's real kind: 302 for reads, 307 for writes so the body is resent.
func handlePackageError(c *gin.Context, err error) {
	mismatch, ok := services.IsKindMismatch(err)
	if !ok {
		utils.HandleServiceError(c, err)
		return
	}
	kind := c.Param("kind")
	target := strings.Replace(c.Request.URL.Path, "/"+kind+"/", "/"+mismatch.Actual+"/", 1)
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}
	status := http.StatusTemporaryRedirect
	if c.Request.Method == http.MethodGet {
		status = http.StatusFound
	}
	c.Redirect(status, target)
}

// ListPublished godoc
// @Summary List published packages
// @Tags Packages
// @Produce json
// @Param kind query string false "Content model"
// @Param featured query bool false "Featured only"
// @Param keyword query string false "Keyword ID"
// @Param parent query string false "Parent package ID"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /packages [get]
func (p *PackageController) ListPublished(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	keywordID, ok := optionalUUIDQuery(c, "keyword")
	if !ok {
		return
	}
	parentID, ok := optionalUUIDQuery(c, "parent")
	if !ok {
		return
	}
	filter := services.PublishedFilter{
		Kind:      c.Query("kind"),
		Featured:  optionalBoolQuery(c, "featured"),
		KeywordID: keywordID,
		ParentID:  parentID,
	}

	pkgs, total, err := p.packages.Published(c.Request.Context(), middleware.CurrentUser(c), filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, paged(p.summaries(pkgs), total, page), "Packages fetched successfully")
}

// GetBySlug godoc
// @Summary Get a published package with its ascendants
// @Tags Packages
// @Produce json
// @Param slug path string true "Hierarchical slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /packages/{slug} [get]
func (p *PackageController) GetBySlug(c *gin.Context) {
	pkg, err := p.packages.WithAscendantsForSlug(c.Request.Context(), c.Param("slug"), middleware.CurrentUser(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPackageDetail(pkg, p.thumb(pkg.FeaturedImage, detailThumbWidth, detailThumbHeight)), "Package fetched successfully")
}

// ContentModels godoc
// @Summary List the registered package kinds
// @Tags Admin Packages
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages [get]
func (p *PackageController) ContentModels(c *gin.Context) {
	kinds := make([]gin.H, 0, len(db_models.PackageKinds))
	for _, kind := range db_models.ContentModels() {
		kinds = append(kinds, gin.H{"kind": kind, "name": db_models.PackageKinds[kind]})
	}
	utils.RespondSuccess(c, kinds, "Content models fetched successfully")
}

// List godoc
// @Summary List packages of a kind
// @Tags Admin Packages
// @Produce json
// @Param kind path string true "Content model"
// @Param parent query string false "Parent package ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind} [get]
func (p *PackageController) List(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	parentID, ok := optionalUUIDQuery(c, "parent")
	if !ok {
		return
	}
	pkgs, total, err := p.packages.List(c.Request.Context(), c.Param("kind"), parentID, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	items := p.summaries(pkgs)
	for i := range items {
		items[i].Thumbnail = p.adminThumb(c, pkgs[i].FeaturedImage)
	}
	utils.RespondSuccess(c, paged(items, total, page), "Packages fetched successfully")
}

// Create godoc
// @Summary Create a package
// @Tags Admin Packages
// @Accept json
// @Produce json
// @Param kind path string true "Content model"
// @Param request body request_models.PackageRequest true "Package"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /admin/packages/{kind} [post]
func (p *PackageController) Create(c *gin.Context) {
	var req request_models.PackageRequest
	if !bindJSON(c, &req) {
		return
	}
	user := middleware.CurrentUser(c)
	pkg, err := p.packages.Create(c.Request.Context(), c.Param("kind"), req, user.ID)
	if err != nil {
		handlePackageError(c, err)
		return
	}
	utils.RespondCreated(c, resp.NewPackageDetail(pkg, ""), "Package created successfully")
}

// Get godoc
// @Summary Get a package
// @Tags Admin Packages
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Success 200 {object} utils.APIResponse
// @Success 302 "Package has another kind"
// @Router /admin/packages/{kind}/{id} [get]
func (p *PackageController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	pkg, err := p.packages.Get(c.Request.Context(), c.Param("kind"), id)
	if err != nil {
		handlePackageError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPackageDetail(pkg, p.adminThumb(c, pkg.FeaturedImage)), "Package fetched successfully")
}

// Update godoc
// @Summary Update a package
// @Tags Admin Packages
// @Accept json
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Param request body request_models.PackageRequest true "Package"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id} [put]
func (p *PackageController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.PackageRequest
	if !bindJSON(c, &req) {
		return
	}
	pkg, err := p.packages.Update(c.Request.Context(), c.Param("kind"), id, req)
	if err != nil {
		handlePackageError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPackageDetail(pkg, ""), "Package updated successfully")
}

// Delete godoc
// @Summary Delete a package and its subtree
// @Tags Admin Packages
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id} [delete]
func (p *PackageController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := p.packages.Delete(c.Request.Context(), c.Param("kind"), id); err != nil {
		handlePackageError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Package deleted successfully")
}

// Move godoc
// @Summary Move a package under a new parent
// @Tags Admin Packages
// @Accept json
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Param request body request_models.MovePackageRequest true "Target"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id}/move [post]
func (p *PackageController) Move(c *gin.Context) {
	var req request_models.MovePackageRequest
	if !bindJSON(c, &req) {
		return
	}
	current, ok := packageFromPath(c, p.packages)
	if !ok {
		return
	}
	pkg, err := p.packages.Move(c.Request.Context(), current.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPackageSummary(pkg, ""), "Package moved successfully")
}

// SetOtherInfo godoc
// @Summary Replace the free-form JSON attached to a package
// @Tags Admin Packages
// @Accept json
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Param request body request_models.OtherInfoRequest true "Raw JSON text"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id}/other_info [put]
func (p *PackageController) SetOtherInfo(c *gin.Context) {
	var req request_models.OtherInfoRequest
	if !bindJSON(c, &req) {
		return
	}
	current, ok := packageFromPath(c, p.packages)
	if !ok {
		return
	}
	pkg, err := p.packages.SetOtherInfo(c.Request.Context(), current.ID, req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPackageDetail(pkg, ""), "Other info updated successfully")
}

// packageFromPath checks that :id names a package of kind :kind.
func packageFromPath(c *gin.Context, packages services.PackageService) (*db_models.Package, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	pkg, err := packages.Get(c.Request.Context(), c.Param("kind"), id)
	if err != nil {
		handlePackageError(c, err)
		return nil, false
	}
	return pkg, true
}
