package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"winntalks/internal/apperr"
	"winntalks/internal/utils"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	bodyMinLen = 2
	bodyMaxLen = 5000
)

type Service interface {
	CreateReply(ctx context.Context, postUUID string, userID uint64, body string) (*Reply, error)
	GetVisibleByPostID(ctx context.Context, postID uint64) ([]*Reply, error)
	RemoveReply(ctx context.Context, replyUUID string) error
}

type service struct {
	repo     Repository
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

func (s *service) CreateReply(ctx context.Context, postUUID string, userID uint64, body string) (*Reply, error) {
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n < bodyMinLen || n > bodyMaxLen {
		return nil, apperr.Validationf("reply must be between %d and %d characters", bodyMinLen, bodyMaxLen)
	}

	parent, err := s.repo.GetVisibleParent(postUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if parent == nil {
		return nil, apperr.NotFoundf("post not found")
	}
	if parent.IsLocked {
		return nil, apperr.Lockedf("this thread is locked")
	}

	replyUUID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate uuid: %w", err)
	}

	reply := &Reply{
		UUID:      replyUUID.String(),
		PostID:    parent.ID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateWithCounterBump(reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	reply.IsOP = userID == parent.UserID

	s.eventBus.Publish("reply_created", map[string]interface{}{
		"post_uuid":  postUUID,
		"reply_uuid": reply.UUID,
	})

	return reply, nil
}

func (s *service) GetVisibleByPostID(ctx context.Context, postID uint64) ([]*Reply, error) {
	replies, err := s.repo.GetVisibleByPostID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get replies: %w", err)
	}
	return replies, nil
}

func (s *service) RemoveReply(ctx context.Context, replyUUID string) error {
	err := s.repo.RemoveWithCounterRecount(replyUUID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("reply not found")
	}
	if err != nil {
		return fmt.Errorf("failed to remove reply: %w", err)
	}

	s.logger.Infow("Reply removed", "reply_uuid", replyUUID)
	s.eventBus.Publish("reply_removed", map[string]interface{}{"reply_uuid": replyUUID})
	return nil
}
