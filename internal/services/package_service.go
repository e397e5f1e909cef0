package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/richtext"
	"simplifytour/pkg/utils"
)

// KindMismatchError reports a package addressed under the wrong kind.
type KindMismatchError struct {
	ID     uuid.UUID
	Actual string
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("package %s is a %s", e.ID, e.Actual)
}

// PublishedFilter narrows the public package listing.
type PublishedFilter struct {
	Kind      string
	Featured  *bool
	KeywordID *uuid.UUID
	ParentID  *uuid.UUID
}

type PackageService interface {
	Create(ctx context.Context, kind string, req request_models.PackageRequest, providerID uuid.UUID) (*db_models.Package, error)
	Update(ctx context.Context, kind string, id uuid.UUID, req request_models.PackageRequest) (*db_models.Package, error)
	Delete(ctx context.Context, kind string, id uuid.UUID) error
	Get(ctx context.Context, kind string, id uuid.UUID) (*db_models.Package, error)
	List(ctx context.Context, kind string, parentID *uuid.UUID, page utils.Page) ([]db_models.Package, int64, error)
	Move(ctx context.Context, id uuid.UUID, req request_models.MovePackageRequest) (*db_models.Package, error)
	CanMove(ctx context.Context, pkg *db_models.Package, newParentID *uuid.UUID) error
	SetOtherInfo(ctx context.Context, id uuid.UUID, raw string) (*db_models.Package, error)

	GetAscendants(ctx context.Context, pkg *db_models.Package) ([]db_models.Package, error)
	WithAscendantsForSlug(ctx context.Context, slug string, user *db_models.User) (*db_models.Package, error)
	Published(ctx context.Context, user *db_models.User, filter PublishedFilter, page utils.Page) ([]db_models.Package, int64, error)
}

type packageService struct {
	packageRepo repositories.PackageRepository
	staffRepo   repositories.StaffRepository
	keywordRepo repositories.KeywordRepository
	settings    SettingService
	log         logger.Logger
}

func NewPackageService(
	packageRepo repositories.PackageRepository,
	staffRepo repositories.StaffRepository,
	keywordRepo repositories.KeywordRepository,
	settings SettingService,
	log logger.Logger,
) PackageService {
	return &packageService{
		packageRepo: packageRepo,
		staffRepo:   staffRepo,
		keywordRepo: keywordRepo,
		settings:    settings,
		log:         log,
	}
}

func (s *packageService) load(ctx context.Context, id uuid.UUID) (*db_models.Package, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pkg == nil {
		return nil, utils.ErrPackageNotFound
	}
	return pkg, nil
}

func checkKind(pkg *db_models.Package, kind string) error {
	if kind != "" && pkg.ContentModel != kind {
		return &KindMismatchError{ID: pkg.ID, Actual: pkg.ContentModel}
	}
	return nil
}

// applyDisplayable copies the publishing fields of a request onto d.
func applyDisplayable(d *db_models.Displayable, req request_models.DisplayableRequest, creating bool) {
	d.Title = strings.TrimSpace(req.Title)
	d.Status = req.Status
	d.PublishDate = req.PublishDate
	d.ExpiryDate = req.ExpiryDate
	d.Description = req.Description
	d.MetaTitle = req.MetaTitle
	d.ShortURL = req.ShortURL
	if req.GenDescription != nil {
		d.GenDescription = *req.GenDescription
	} else if creating {
		d.GenDescription = true
	}
	if req.InSitemap != nil {
		d.InSitemap = *req.InSitemap
	} else if creating {
		d.InSitemap = true
	}
}

func requireContent(status int, content string) error {
	if (status == 0 || status == db_models.StatusPublished) && strings.TrimSpace(utils.StripTags(content)) == "" {
		return utils.ErrContentRequired
	}
	return nil
}

func (s *packageService) filterLevel(ctx context.Context) int {
	return s.settings.GetInt(ctx, SettingRichTextFilterLevel)
}

func (s *packageService) applyRequest(ctx context.Context, pkg *db_models.Package, req request_models.PackageRequest) error {
	level := s.filterLevel(ctx)
	pkg.Titles = pkg.Title
	pkg.LoginRequired = req.LoginRequired
	pkg.Content = richtext.Escape(req.Content, level)
	pkg.Include = richtext.Escape(req.Include, level)
	pkg.Exclude = richtext.Escape(req.Exclude, level)
	pkg.FeaturedImage = req.FeaturedImage
	pkg.IsFeatured = req.IsFeatured
	pkg.IsArchived = req.IsArchived
	pkg.PorterRequired = req.PorterRequired
	pkg.PorterDays = req.PorterDays
	pkg.GuideRequired = req.GuideRequired
	pkg.GuideDays = req.GuideDays

	if req.PorterIDs != nil {
		porters, err := s.staffRepo.FindPorters(ctx, req.PorterIDs)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if len(porters) != len(req.PorterIDs) {
			return utils.ErrPorterNotFound
		}
		pkg.Porters = porters
	}
	if req.GuideIDs != nil {
		guides, err := s.staffRepo.FindGuides(ctx, req.GuideIDs)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if len(guides) != len(req.GuideIDs) {
			return utils.ErrGuideNotFound
		}
		pkg.Guides = guides
	}
	if req.KeywordIDs != nil {
		keywords, err := s.keywordRepo.FindByIDs(ctx, req.KeywordIDs)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if len(keywords) != len(req.KeywordIDs) {
			return utils.ErrKeywordNotFound
		}
		pkg.Keywords = keywords
	}
	return nil
}

// baseSlug builds the slug a package would get from its title and parent.
func baseSlug(pkg *db_models.Package, parent *db_models.Package) string {
	slug := utils.Slugify(pkg.Title)
	if slug == "" {
		slug = pkg.ContentModel
	}
	if parent != nil {
		slug = parent.Slug + "/" + slug
	}
	return slug
}

func cleanSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == db_models.HomeSlug {
		return slug
	}
	return strings.Trim(slug, "/")
}

func (s *packageService) uniqueSlug(ctx context.Context, slug string, id uuid.UUID) (string, error) {
	unique, err := utils.UniqueSlug(slug, func(candidate string) (bool, error) {
		return s.packageRepo.SlugExists(ctx, candidate, id)
	})
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	return unique, nil
}

func (s *packageService) parent(ctx context.Context, parentID *uuid.UUID) (*db_models.Package, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := s.load(ctx, *parentID)
	if err != nil {
		return nil, err
	}
	if !parent.CanAdd() {
		return nil, utils.ErrCannotAdd
	}
	return parent, nil
}

func (s *packageService) Create(ctx context.Context, kind string, req request_models.PackageRequest, providerID uuid.UUID) (*db_models.Package, error) {
	if !db_models.IsPackageKind(kind) {
		return nil, utils.ErrUnknownKind
	}
	if err := requireContent(req.Status, req.Content); err != nil {
		return nil, err
	}
	parent, err := s.parent(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	pkg := &db_models.Package{ProvidedByID: providerID, ParentID: req.ParentID}
	pkg.SetContentModel(kind)
	applyDisplayable(&pkg.Displayable, req.DisplayableRequest, true)
	if err := s.applyRequest(ctx, pkg, req); err != nil {
		return nil, err
	}
	pkg.OtherInfo = datatypes.JSON("[]")
	pkg.PrepareDisplayable(pkg.Content, utils.NowUnixSeconds())

	slug := cleanSlug(req.Slug)
	if slug == "" {
		slug = baseSlug(pkg, parent)
	}
	if pkg.Slug, err = s.uniqueSlug(ctx, slug, uuid.Nil); err != nil {
		return nil, err
	}

	if req.Order != nil {
		pkg.Order = req.Order
	} else {
		count, err := s.packageRepo.CountSiblings(ctx, req.ParentID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		order := int(count)
		pkg.Order = &order
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		s.log.Error("create package: ", err)
		return nil, utils.ErrDatabaseError
	}
	return s.detail(ctx, pkg.ID)
}

func (s *packageService) Update(ctx context.Context, kind string, id uuid.UUID, req request_models.PackageRequest) (*db_models.Package, error) {
	pkg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkKind(pkg, kind); err != nil {
		return nil, err
	}
	if err := requireContent(req.Status, req.Content); err != nil {
		return nil, err
	}

	oldSlug := pkg.Slug
	applyDisplayable(&pkg.Displayable, req.DisplayableRequest, false)
	if err := s.applyRequest(ctx, pkg, req); err != nil {
		return nil, err
	}
	pkg.PrepareDisplayable(pkg.Content, utils.NowUnixSeconds())
	if req.Order != nil {
		pkg.Order = req.Order
	}

	slug := cleanSlug(req.Slug)
	if slug == "" {
		slug = oldSlug
	}
	if slug != oldSlug {
		if pkg.Slug, err = s.uniqueSlug(ctx, slug, pkg.ID); err != nil {
			return nil, err
		}
	} else {
		pkg.Slug = oldSlug
	}

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		s.log.Error("update package: ", err)
		return nil, utils.ErrDatabaseError
	}
	if pkg.Slug != oldSlug {
		if err := s.propagateSlug(ctx, pkg.ID, oldSlug, pkg.Slug); err != nil {
			return nil, err
		}
	}
	return s.detail(ctx, pkg.ID)
}

// propagateSlug rewrites the slug prefix of every descendant.
func (s *packageService) propagateSlug(ctx context.Context, parentID uuid.UUID, oldSlug, newSlug string) error {
	children, err := s.packageRepo.ListChildren(ctx, parentID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	for _, child := range children {
		childOld := child.Slug
		if !strings.HasPrefix(childOld, oldSlug+"/") {
			continue
		}
		childNew, err := s.uniqueSlug(ctx, newSlug+strings.TrimPrefix(childOld, oldSlug), child.ID)
		if err != nil {
			return err
		}
		if err := s.packageRepo.UpdateFields(ctx, child.ID, map[string]interface{}{"slug": childNew}); err != nil {
			return utils.ErrDatabaseError
		}
		if err := s.propagateSlug(ctx, child.ID, childOld, childNew); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the package and its whole subtree.
func (s *packageService) Delete(ctx context.Context, kind string, id uuid.UUID) error {
	pkg, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := checkKind(pkg, kind); err != nil {
		return err
	}
	if err := s.deleteTree(ctx, pkg.ID); err != nil {
		return err
	}
	if err := s.packageRepo.ShiftSiblingOrder(ctx, pkg.ParentID, pkg.OrderValue()); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *packageService) deleteTree(ctx context.Context, id uuid.UUID) error {
	children, err := s.packageRepo.ListChildren(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	for _, child := range children {
		if err := s.deleteTree(ctx, child.ID); err != nil {
			return err
		}
	}
	if err := s.packageRepo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *packageService) detail(ctx context.Context, id uuid.UUID) (*db_models.Package, error) {
	pkg, err := s.packageRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pkg == nil {
		return nil, utils.ErrPackageNotFound
	}
	if pkg.Ascendants, err = s.GetAscendants(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) Get(ctx context.Context, kind string, id uuid.UUID) (*db_models.Package, error) {
	pkg, err := s.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkKind(pkg, kind); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) List(ctx context.Context, kind string, parentID *uuid.UUID, page utils.Page) ([]db_models.Package, int64, error) {
	if kind != "" && !db_models.IsPackageKind(kind) {
		return nil, 0, utils.ErrUnknownKind
	}
	packages, total, err := s.packageRepo.List(ctx, repositories.PackageFilter{
		Kind:            kind,
		ParentID:        parentID,
		IncludeArchived: true,
		Limit:           page.PageSize,
		Offset:          page.Offset(),
	})
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return packages, total, nil
}

// CanMove rejects moves below the package itself or one of its descendants.
func (s *packageService) CanMove(ctx context.Context, pkg *db_models.Package, newParentID *uuid.UUID) error {
	return checkMove(pkg.ID, newParentID, func(id uuid.UUID) (*uuid.UUID, error) {
		parent, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		return parent.ParentID, nil
	}, "a package")
}

func (s *packageService) Move(ctx context.Context, id uuid.UUID, req request_models.MovePackageRequest) (*db_models.Package, error) {
	pkg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.CanMove(ctx, pkg, req.ParentID); err != nil {
		return nil, err
	}
	parent, err := s.parent(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	oldParentID, oldOrder, oldSlug := pkg.ParentID, pkg.OrderValue(), pkg.Slug
	stays := sameParent(oldParentID, req.ParentID)

	fields := map[string]interface{}{"parent_id": req.ParentID}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	} else if !stays {
		count, err := s.packageRepo.CountSiblings(ctx, req.ParentID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		fields["sort_order"] = int(count)
	}

	newSlug := oldSlug
	if !stays && oldSlug != db_models.HomeSlug {
		parentSlug := ""
		if parent != nil {
			parentSlug = parent.Slug
		}
		if newSlug, err = s.uniqueSlug(ctx, rebaseSlug(oldSlug, parentSlug), pkg.ID); err != nil {
			return nil, err
		}
		fields["slug"] = newSlug
	}

	if err := s.packageRepo.UpdateFields(ctx, pkg.ID, fields); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !stays {
		if err := s.packageRepo.ShiftSiblingOrder(ctx, oldParentID, oldOrder); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	if newSlug != oldSlug {
		if err := s.propagateSlug(ctx, pkg.ID, oldSlug, newSlug); err != nil {
			return nil, err
		}
	}
	return s.detail(ctx, pkg.ID)
}

func (s *packageService) SetOtherInfo(ctx context.Context, id uuid.UUID, raw string) (*db_models.Package, error) {
	pkg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "[]"
	}
	if !json.Valid([]byte(raw)) {
		return nil, utils.ErrInvalidOtherInfo
	}
	if err := s.packageRepo.UpdateFields(ctx, pkg.ID, map[string]interface{}{"other_info": datatypes.JSON(raw)}); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.detail(ctx, pkg.ID)
}

// GetAscendants walks the parent chain, nearest parent first.
func (s *packageService) GetAscendants(ctx context.Context, pkg *db_models.Package) ([]db_models.Package, error) {
	if len(pkg.Ascendants) > 0 {
		return pkg.Ascendants, nil
	}
	ascendants := []db_models.Package{}
	seen := map[uuid.UUID]bool{pkg.ID: true}
	for parentID := pkg.ParentID; parentID != nil; {
		if seen[*parentID] {
			break
		}
		seen[*parentID] = true
		parent, err := s.packageRepo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if parent == nil {
			break
		}
		ascendants = append(ascendants, *parent)
		parentID = parent.ParentID
	}
	return ascendants, nil
}

func (s *packageService) publishedFilter(ctx context.Context, user *db_models.User) repositories.PackageFilter {
	if user != nil && user.IsStaff {
		return repositories.PackageFilter{IncludeArchived: true}
	}
	now := utils.NowUnixSeconds()
	filter := repositories.PackageFilter{PublishedAt: &now}
	if user == nil && !s.settings.GetBool(ctx, SettingIncludeLoginRequired) {
		filter.ExcludeLoginRequired = true
	}
	return filter
}

// slugChain expands "a/b/c" to ["a", "a/b", "a/b/c"].
func slugChain(slug string) []string {
	parts := strings.Split(slug, "/")
	chain := make([]string, 0, len(parts))
	for i := range parts {
		chain = append(chain, strings.Join(parts[:i+1], "/"))
	}
	return chain
}

// WithAscendantsForSlug loads the package at slug in one query together with
// every package whose slug is a prefix of it. When the chain of parent links
// is intact the ascendants are attached without further queries.
func (s *packageService) WithAscendantsForSlug(ctx context.Context, slug string, user *db_models.User) (*db_models.Package, error) {
	slug = strings.Trim(slug, "/")
	if slug == "" {
		slug = db_models.HomeSlug
	}

	var chain []string
	if slug == db_models.HomeSlug {
		chain = []string{slug}
	} else {
		chain = slugChain(slug)
	}

	packages, err := s.packageRepo.FindBySlugs(ctx, chain, s.publishedFilter(ctx, user))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(packages) == 0 || packages[0].Slug != slug {
		return nil, utils.ErrPackageNotFound
	}

	target := packages[0]
	ascendants := packages[1:]
	child := &target
	valid := true
	for i := range ascendants {
		if child.ParentID == nil || *child.ParentID != ascendants[i].ID {
			valid = false
			break
		}
		child = &ascendants[i]
	}
	if valid && child.ParentID == nil {
		target.Ascendants = ascendants
	}

	detail, err := s.packageRepo.FindDetail(ctx, target.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if detail == nil {
		return nil, utils.ErrPackageNotFound
	}
	// Only a chain resolved entirely through the published filter is exposed.
	detail.Ascendants = target.Ascendants
	return detail, nil
}

func (s *packageService) Published(ctx context.Context, user *db_models.User, filter PublishedFilter, page utils.Page) ([]db_models.Package, int64, error) {
	if filter.Kind != "" && !db_models.IsPackageKind(filter.Kind) {
		return nil, 0, utils.ErrUnknownKind
	}
	query := s.publishedFilter(ctx, user)
	query.Kind = filter.Kind
	query.Featured = filter.Featured
	query.KeywordID = filter.KeywordID
	query.ParentID = filter.ParentID
	query.Limit = page.PageSize
	query.Offset = page.Offset()

	packages, total, err := s.packageRepo.List(ctx, query)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return packages, total, nil
}

// IsKindMismatch unwraps a KindMismatchError.
func IsKindMismatch(err error) (*KindMismatchError, bool) {
	var mismatch *KindMismatchError
	if errors.As(err, &mismatch) {
		return mismatch, true
	}
	return nil, false
}
