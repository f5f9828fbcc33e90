package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"winntalks/internal/apperr"
	"winntalks/internal/app/board"
	"winntalks/internal/app/post"
	"winntalks/internal/providers/redis"
	"winntalks/internal/utils"

	"go.uber.org/zap"
)

const maxFeedLimit = 50

type Service interface {
	Recent(ctx context.Context, limit int) ([]*post.Post, error)
	Trending(ctx context.Context, limit int) ([]*post.Post, error)
	BoardPage(ctx context.Context, slug string, page, pageSize int, sort string) (*BoardPageResult, error)
	Search(ctx context.Context, query string, limit int) ([]*post.Post, error)
}

type service struct {
	repo        Repository
	boardSvc    board.Service
	redisP      *redis.RedisProvider
	logger      *zap.SugaredLogger
	hotWindow   time.Duration
	replyWeight int
	cachePrefix string
}

func NewService(
	repo Repository,
	boardSvc board.Service,
	redisP *redis.RedisProvider,
	eventBus *utils.EventBus,
	logger *zap.Logger,
	hotWindow time.Duration,
	replyWeight int,
) Service {
	s := &service{
		repo:        repo,
		boardSvc:    boardSvc,
		redisP:      redisP,
		logger:      logger.Sugar(),
		hotWindow:   hotWindow,
		replyWeight: replyWeight,
		cachePrefix: "feed",
	}

	// Any content mutation can reorder any feed, so every write event
	// flushes all cached pages. Cache misses recompute from the store;
	// the bus is advisory only.
	for _, event := range []string{"post_created", "post_removed", "post_moderated", "reply_created", "reply_removed"} {
		eventBus.Subscribe(event, func(utils.Event) {
			s.invalidateAll()
		})
	}

	return s
}

func clampLimit(limit, fallback int) int {
	if limit < 1 {
		return fallback
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}

func (s *service) Recent(ctx context.Context, limit int) ([]*post.Post, error) {
	limit = clampLimit(limit, 30)

	cacheKey := fmt.Sprintf("%s:recent:limit:%d", s.cachePrefix, limit)
	var posts []*post.Post
	if s.cacheGet(ctx, cacheKey, &posts) {
		return posts, nil
	}

	posts, err := s.repo.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent posts: %w", err)
	}
	if posts == nil {
		posts = []*post.Post{}
	}

	s.cacheSet(ctx, cacheKey, posts)
	return posts, nil
}

func (s *service) Trending(ctx context.Context, limit int) ([]*post.Post, error) {
	limit = clampLimit(limit, 10)

	cacheKey := fmt.Sprintf("%s:trending:limit:%d", s.cachePrefix, limit)
	var posts []*post.Post
	if s.cacheGet(ctx, cacheKey, &posts) {
		return posts, nil
	}

	since := time.Now().Add(-s.hotWindow)
	posts, err := s.repo.Trending(since, s.replyWeight, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending posts: %w", err)
	}
	if posts == nil {
		posts = []*post.Post{}
	}

	s.cacheSet(ctx, cacheKey, posts)
	return posts, nil
}

func (s *service) BoardPage(ctx context.Context, slug string, page, pageSize int, sort string) (*BoardPageResult, error) {
	if sort != SortRecent && sort != SortHot {
		sort = SortRecent
	}
	if page < 1 {
		page = 1
	}
	pageSize = clampLimit(pageSize, 20)

	b, err := s.boardSvc.GetBoardBySlug(slug)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s:board:%s:sort:%s:page:%d:size:%d", s.cachePrefix, slug, sort, page, pageSize)
	var result BoardPageResult
	if s.cacheGet(ctx, cacheKey, &result) {
		return &result, nil
	}

	posts, total, err := s.repo.BoardPage(b.ID, sort, s.replyWeight, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get board page: %w", err)
	}
	if posts == nil {
		posts = []*post.Post{}
	}

	result = BoardPageResult{
		Board: b,
		Posts: posts,
		Total: total,
		Page:  page,
		Pages: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	s.cacheSet(ctx, cacheKey, &result)
	return &result, nil
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]*post.Post, error) {
	if utf8.RuneCountInString(query) < 2 {
		return nil, apperr.Validationf("search query too short")
	}
	limit = clampLimit(limit, 30)

	posts, err := s.repo.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	if posts == nil {
		posts = []*post.Post{}
	}
	return posts, nil
}

func (s *service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.redisP == nil {
		return false
	}
	cached, err := s.redisP.Get(ctx, key).Result()
	if err != nil || cached == "" {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

func (s *service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.redisP == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.redisP.SetWithDefaultTTL(ctx, key, data, 0)
}

func (s *service) invalidateAll() {
	if s.redisP == nil {
		return
	}
	ctx := context.Background()
	pattern := s.cachePrefix + ":*"
	var cursor uint64
	deletedCount := 0
	for {
		keys, cur, err := s.redisP.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			s.logger.Warnw("Redis scan failed during feed cache invalidation", "error", err, "pattern", pattern)
			return
		}
		if len(keys) > 0 {
			n, err := s.redisP.Del(ctx, keys...).Result()
			if err != nil {
				s.logger.Warnw("Failed to delete feed cache keys", "error", err, "keys", keys)
			} else {
				deletedCount += int(n)
			}
		}
		if cur == 0 {
			break
		}
		cursor = cur
	}
	if deletedCount > 0 {
		s.logger.Debugw("Feed cache invalidated", "deleted_keys", deletedCount)
	}
}
