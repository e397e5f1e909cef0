package services

import (
	"context"

	"github.com/google/uuid"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/utils"
)

type StaffService interface {
	CreatePorter(ctx context.Context, req request_models.PorterRequest) (*db_models.Porter, error)
	UpdatePorter(ctx context.Context, id uuid.UUID, req request_models.PorterRequest) (*db_models.Porter, error)
	DeletePorter(ctx context.Context, id uuid.UUID) error
	GetPorter(ctx context.Context, id uuid.UUID) (*db_models.Porter, error)
	ListPorters(ctx context.Context, page utils.Page) ([]db_models.Porter, int64, error)

	CreateGuide(ctx context.Context, req request_models.GuideRequest) (*db_models.Guide, error)
	UpdateGuide(ctx context.Context, id uuid.UUID, req request_models.GuideRequest) (*db_models.Guide, error)
	DeleteGuide(ctx context.Context, id uuid.UUID) error
	GetGuide(ctx context.Context, id uuid.UUID) (*db_models.Guide, error)
	ListGuides(ctx context.Context, page utils.Page) ([]db_models.Guide, int64, error)
}

type staffService struct {
	repo repositories.StaffRepository
}

func NewStaffService(repo repositories.StaffRepository) StaffService {
	return &staffService{repo: repo}
}

func (s *staffService) CreatePorter(ctx context.Context, req request_models.PorterRequest) (*db_models.Porter, error) {
	porter := &db_models.Porter{Ratio: req.Ratio, Count: req.Count, Rate: req.Rate, Remarks: req.Remarks}
	if err := s.repo.CreatePorter(ctx, porter); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return porter, nil
}

func (s *staffService) UpdatePorter(ctx context.Context, id uuid.UUID, req request_models.PorterRequest) (*db_models.Porter, error) {
	porter, err := s.GetPorter(ctx, id)
	if err != nil {
		return nil, err
	}
	porter.Ratio, porter.Count, porter.Rate, porter.Remarks = req.Ratio, req.Count, req.Rate, req.Remarks
	if err := s.repo.SavePorter(ctx, porter); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return porter, nil
}

func (s *staffService) DeletePorter(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPorter(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeletePorter(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *staffService) GetPorter(ctx context.Context, id uuid.UUID) (*db_models.Porter, error) {
	porter, err := s.repo.FindPorter(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if porter == nil {
		return nil, utils.ErrPorterNotFound
	}
	return porter, nil
}

func (s *staffService) ListPorters(ctx context.Context, page utils.Page) ([]db_models.Porter, int64, error) {
	porters, total, err := s.repo.ListPorters(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return porters, total, nil
}

func (s *staffService) CreateGuide(ctx context.Context, req request_models.GuideRequest) (*db_models.Guide, error) {
	guide := &db_models.Guide{Language: req.Language, Rate: req.Rate, Remarks: req.Remarks}
	if err := s.repo.CreateGuide(ctx, guide); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return guide, nil
}

func (s *staffService) UpdateGuide(ctx context.Context, id uuid.UUID, req request_models.GuideRequest) (*db_models.Guide, error) {
	guide, err := s.GetGuide(ctx, id)
	if err != nil {
		return nil, err
	}
	guide.Language, guide.Rate, guide.Remarks = req.Language, req.Rate, req.Remarks
	if err := s.repo.SaveGuide(ctx, guide); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return guide, nil
}

func (s *staffService) DeleteGuide(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetGuide(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteGuide(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *staffService) GetGuide(ctx context.Context, id uuid.UUID) (*db_models.Guide, error) {
	guide, err := s.repo.FindGuide(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if guide == nil {
		return nil, utils.ErrGuideNotFound
	}
	return guide, nil
}

func (s *staffService) ListGuides(ctx context.Context, page utils.Page) ([]db_models.Guide, int64, error) {
	guides, total, err := s.repo.ListGuides(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return guides, total, nil
}
