package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/thumbnail"
	"simplifytour/pkg/utils"
)

type mockPackageService struct {
	services.PackageService
	mock.Mock
}

func (m *mockPackageService) Get(ctx context.Context, kind string, id uuid.UUID) (*db_models.Package, error) {
	args := m.Called(ctx, kind, id)
	pkg, _ := args.Get(0).(*db_models.Package)
	return pkg, args.Error(1)
}

func (m *mockPackageService) GetAscendants(ctx context.Context, pkg *db_models.Package) ([]db_models.Package, error) {
	args := m.Called(ctx, pkg)
	pkgs, _ := args.Get(0).([]db_models.Package)
	return pkgs, args.Error(1)
}

func (m *mockPackageService) Update(ctx context.Context, kind string, id uuid.UUID, req request_models.PackageRequest) (*db_models.Package, error) {
	args := m.Called(ctx, kind, id, req)
	pkg, _ := args.Get(0).(*db_models.Package)
	return pkg, args.Error(1)
}

func (m *mockPackageService) Create(ctx context.Context, kind string, req request_models.PackageRequest, providerID uuid.UUID) (*db_models.Package, error) {
	args := m.Called(ctx, kind, req, providerID)
	pkg, _ := args.Get(0).(*db_models.Package)
	return pkg, args.Error(1)
}

func (m *mockPackageService) Published(ctx context.Context, user *db_models.User, filter services.PublishedFilter, page utils.Page) ([]db_models.Package, int64, error) {
	args := m.Called(ctx, user, filter, page)
	pkgs, _ := args.Get(0).([]db_models.Package)
	return pkgs, args.Get(1).(int64), args.Error(2)
}

func (m *mockPackageService) WithAscendantsForSlug(ctx context.Context, slug string, user *db_models.User) (*db_models.Package, error) {
	args := m.Called(ctx, slug, user)
	pkg, _ := args.Get(0).(*db_models.Package)
	return pkg, args.Error(1)
}

type mockMediaService struct {
	services.MediaService
	mock.Mock
}

func (m *mockMediaService) URL(name string) string {
	return "/media/" + name
}

func (m *mockMediaService) Thumbnail(imageURL string, width, height int, opts thumbnail.Options) string {
	args := m.Called(imageURL, width, height, opts)
	return args.String(0)
}

func (m *mockMediaService) StaticProxy(rawURL, host string) (*services.StaticFile, error) {
	args := m.Called(rawURL, host)
	file, _ := args.Get(0).(*services.StaticFile)
	return file, args.Error(1)
}

func (m *mockMediaService) Upload(ctx context.Context, dir string, upload request_models.Upload) (*resp.MediaResponse, error) {
	args := m.Called(ctx, dir, upload.Filename)
	media, _ := args.Get(0).(*resp.MediaResponse)
	return media, args.Error(1)
}

type mockRatingService struct {
	mock.Mock
}

func (m *mockRatingService) Rate(ctx context.Context, target services.RatingTarget, id uuid.UUID, value int, userID *uuid.UUID) (*db_models.RatingSummary, error) {
	args := m.Called(ctx, target, id, value, userID)
	summary, _ := args.Get(0).(*db_models.RatingSummary)
	return summary, args.Error(1)
}

type mockKeywordService struct {
	services.KeywordService
	mock.Mock
}

func (m *mockKeywordService) Submit(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type mockSettingService struct {
	services.SettingService
	mock.Mock
}

func (m *mockSettingService) Set(ctx context.Context, name, value string) (*resp.SettingResponse, error) {
	args := m.Called(ctx, name, value)
	setting, _ := args.Get(0).(*resp.SettingResponse)
	return setting, args.Error(1)
}

type mockLinksService struct {
	mock.Mock
}

func (m *mockLinksService) DisplayableLinks(ctx context.Context, user *db_models.User) ([]resp.DisplayableLink, error) {
	args := m.Called(ctx, user)
	links, _ := args.Get(0).([]resp.DisplayableLink)
	return links, args.Error(1)
}

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) BuildDashboard(ctx context.Context) (*resp.DashboardReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*resp.DashboardReport)
	return report, args.Error(1)
}
