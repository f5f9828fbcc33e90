package report

import (
	"context"
	"fmt"

	"winntalks/internal/apperr"

	"go.uber.org/zap"
)

type Service interface {
	FileReport(ctx context.Context, contentType string, contentID uint64, reporterID *uint64, reason string) error
	ListReports(ctx context.Context, unresolvedOnly bool) ([]*Report, error)
	ResolveReport(ctx context.Context, id uint64) error
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Sugar(),
	}
}

func (s *service) FileReport(ctx context.Context, contentType string, contentID uint64, reporterID *uint64, reason string) error {
	if contentType != ContentTypePost && contentType != ContentTypeReply {
		return apperr.Validationf("unknown content type %q", contentType)
	}

	report := &Report{
		ReporterID:  reporterID,
		ContentType: contentType,
		ContentID:   contentID,
		Reason:      reason,
	}
	if err := s.repo.Create(report); err != nil {
		return fmt.Errorf("failed to file report: %w", err)
	}

	s.logger.Infow("Report filed", "content_type", contentType, "content_id", contentID)
	return nil
}

func (s *service) ListReports(ctx context.Context, unresolvedOnly bool) ([]*Report, error) {
	return s.repo.List(unresolvedOnly)
}

func (s *service) ResolveReport(ctx context.Context, id uint64) error {
	affected, err := s.repo.Resolve(id)
	if err != nil {
		return fmt.Errorf("failed to resolve report: %w", err)
	}
	if affected == 0 {
		return apperr.NotFoundf("report not found")
	}
	return nil
}
