package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"winntalks/internal/apperr"
	"winntalks/internal/app/board"
	"winntalks/internal/app/reply"
	"winntalks/internal/app/report"
	"winntalks/internal/utils"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	titleMinLen = 5
	titleMaxLen = 200
	bodyMinLen  = 10
	bodyMaxLen  = 10000
)

type Service interface {
	CreatePost(ctx context.Context, boardSlug string, userID uint64, title, body string) (*Post, error)
	GetPostByUUID(ctx context.Context, postUUID string) (*PostDetailResponse, error)
	CastVote(ctx context.Context, postUUID string, userID uint64, value int) error
	ReportPost(ctx context.Context, postUUID string, reporterID *uint64, reason string) error
	RemovePost(ctx context.Context, postUUID string) error
	SetPinned(ctx context.Context, postUUID string, pinned bool) error
	SetLocked(ctx context.Context, postUUID string, locked bool) error
}

type service struct {
	repo      Repository
	boardSvc  board.Service
	replySvc  reply.Service
	reportSvc report.Service
	eventBus  *utils.EventBus
	logger    *zap.SugaredLogger
}

func NewService(
	repo Repository,
	boardSvc board.Service,
	replySvc reply.Service,
	reportSvc report.Service,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		repo:      repo,
		boardSvc:  boardSvc,
		replySvc:  replySvc,
		reportSvc: reportSvc,
		eventBus:  eventBus,
		logger:    logger.Sugar(),
	}
}

func (s *service) CreatePost(ctx context.Context, boardSlug string, userID uint64, title, body string) (*Post, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return nil, apperr.Validationf("title must be between %d and %d characters", titleMinLen, titleMaxLen)
	}
	if n := utf8.RuneCountInString(body); n < bodyMinLen || n > bodyMaxLen {
		return nil, apperr.Validationf("post body must be between %d and %d characters", bodyMinLen, bodyMaxLen)
	}

	b, err := s.boardSvc.GetBoardBySlug(boardSlug)
	if err != nil {
		return nil, err
	}

	postUUID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate uuid: %w", err)
	}

	now := time.Now()
	p := &Post{
		UUID:        postUUID.String(),
		BoardID:     b.ID,
		UserID:      userID,
		Title:       title,
		Body:        body,
		LastReplyAt: now,
		CreatedAt:   now,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.eventBus.Publish("post_created", map[string]interface{}{
		"post_uuid":  p.UUID,
		"board_slug": b.Slug,
	})

	return p, nil
}

func (s *service) GetPostByUUID(ctx context.Context, postUUID string) (*PostDetailResponse, error) {
	p, err := s.repo.GetVisibleByUUID(postUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if p == nil {
		return nil, apperr.NotFoundf("post not found")
	}

	// Best-effort; never fails the read.
	if err := s.repo.IncrementViewCount(p.ID); err != nil {
		s.logger.Warnw("Failed to increment view count", "post_uuid", postUUID, "error", err)
	}

	replies, err := s.replySvc.GetVisibleByPostID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get replies: %w", err)
	}

	return &PostDetailResponse{Post: p, Replies: replies}, nil
}

func (s *service) CastVote(ctx context.Context, postUUID string, userID uint64, value int) error {
	if value != -1 && value != 1 {
		return apperr.Validationf("vote value must be -1 or 1")
	}

	p, err := s.repo.GetVisibleByUUID(postUUID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if p == nil {
		return apperr.NotFoundf("post not found")
	}

	if err := s.repo.UpsertVote(p.ID, userID, value, time.Now()); err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}
	return nil
}

func (s *service) ReportPost(ctx context.Context, postUUID string, reporterID *uint64, reason string) error {
	p, err := s.repo.GetVisibleByUUID(postUUID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if p == nil {
		return apperr.NotFoundf("post not found")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "No reason given"
	}

	return s.reportSvc.FileReport(ctx, report.ContentTypePost, p.ID, reporterID, reason)
}

func (s *service) RemovePost(ctx context.Context, postUUID string) error {
	if err := s.repo.SetRemoved(postUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("post not found")
		}
		return fmt.Errorf("failed to remove post: %w", err)
	}

	s.logger.Infow("Post removed", "post_uuid", postUUID)
	s.eventBus.Publish("post_removed", map[string]interface{}{"post_uuid": postUUID})
	return nil
}

func (s *service) SetPinned(ctx context.Context, postUUID string, pinned bool) error {
	if err := s.repo.SetPinned(postUUID, pinned); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("post not found")
		}
		return fmt.Errorf("failed to update pin flag: %w", err)
	}
	s.eventBus.Publish("post_moderated", map[string]interface{}{"post_uuid": postUUID})
	return nil
}

func (s *service) SetLocked(ctx context.Context, postUUID string, locked bool) error {
	if err := s.repo.SetLocked(postUUID, locked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("post not found")
		}
		return fmt.Errorf("failed to update lock flag: %w", err)
	}
	s.eventBus.Publish("post_moderated", map[string]interface{}{"post_uuid": postUUID})
	return nil
}
