package feed_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"winntalks/internal/apperr"
	"winntalks/internal/app/board"
	"winntalks/internal/app/feed"
	"winntalks/internal/app/post"
	"winntalks/internal/app/reply"
	"winntalks/internal/app/user"
	"winntalks/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db  *gorm.DB
	svc feed.Service
}

func newFixture(t *testing.T, replyWeight int) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &user.Session{}, &board.Board{},
		&post.Post{}, &post.Vote{}, &reply.Reply{},
	))

	svc := feed.NewService(
		feed.NewRepository(db),
		board.NewService(board.NewRepository(db)),
		nil,
		utils.NewEventBus(),
		zap.NewNop(),
		7*24*time.Hour,
		replyWeight,
	)
	return &fixture{db: db, svc: svc}
}

func (f *fixture) seedBoard(t *testing.T, slug string, active bool) *board.Board {
	t.Helper()
	b := &board.Board{Slug: slug, Name: slug + " board", IsActive: active}
	require.NoError(t, f.db.Create(b).Error)
	return b
}

func (f *fixture) seedUser(t *testing.T, name string) *user.User {
	t.Helper()
	u := &user.User{
		UUID:         "user-" + name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Username:     name,
		Role:         user.RoleUser,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

type seedPostOpts struct {
	title       string
	replyCount  int
	viewCount   int
	pinned      bool
	removed     bool
	createdAt   time.Time
	lastReplyAt time.Time
}

func (f *fixture) seedPost(t *testing.T, boardID, userID uint64, opts seedPostOpts) *post.Post {
	t.Helper()
	if opts.createdAt.IsZero() {
		opts.createdAt = time.Now().Add(-time.Hour)
	}
	if opts.lastReplyAt.IsZero() {
		opts.lastReplyAt = opts.createdAt
	}
	p := &post.Post{
		UUID:        fmt.Sprintf("post-%s", opts.title),
		BoardID:     boardID,
		UserID:      userID,
		Title:       opts.title,
		Body:        "body of " + opts.title,
		ReplyCount:  opts.replyCount,
		ViewCount:   opts.viewCount,
		LastReplyAt: opts.lastReplyAt,
		IsPinned:    opts.pinned,
		IsRemoved:   opts.removed,
		CreatedAt:   opts.createdAt,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func titles(posts []*post.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestRecentOrdering(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seedBoard(t, "general", true)
	dead := f.seedBoard(t, "archive", false)
	u := f.seedUser(t, "author")
	ctx := context.Background()

	base := time.Now().Add(-24 * time.Hour)
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "old", createdAt: base, lastReplyAt: base})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "bumped", createdAt: base, lastReplyAt: base.Add(3 * time.Hour)})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "fresh", createdAt: base.Add(2 * time.Hour), lastReplyAt: base.Add(2 * time.Hour)})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "sticky", pinned: true, createdAt: base, lastReplyAt: base})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "hidden", removed: true, createdAt: base.Add(5 * time.Hour)})
	f.seedPost(t, dead.ID, u.ID, seedPostOpts{title: "orphaned", createdAt: base.Add(5 * time.Hour)})

	posts, err := f.svc.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"sticky", "bumped", "fresh", "old"}, titles(posts))
	assert.Equal(t, "author", posts[0].Author)
	assert.Equal(t, "general", posts[0].BoardSlug)

	// A reply bump reorders without touching created_at.
	limited, err := f.svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"sticky", "bumped"}, titles(limited))
}

func TestRecentBreaksTiesByInsertionOrder(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seedBoard(t, "general", true)
	u := f.seedUser(t, "author")

	at := time.Now().Add(-time.Hour).Truncate(time.Second)
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "first", createdAt: at, lastReplyAt: at})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "second", createdAt: at, lastReplyAt: at})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "third", createdAt: at, lastReplyAt: at})

	posts, err := f.svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, titles(posts))
}

func TestTrendingHeatAndWindow(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seedBoard(t, "general", true)
	u := f.seedUser(t, "author")
	ctx := context.Background()

	recent := time.Now().Add(-time.Hour)
	// heat = replies*3 + views
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "warm", replyCount: 2, viewCount: 10, createdAt: recent})   // 16
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "blazing", replyCount: 10, viewCount: 5, createdAt: recent}) // 35
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "viewed", replyCount: 0, viewCount: 30, createdAt: recent})  // 30
	f.seedPost(t, b.ID, u.ID, seedPostOpts{
		title: "stale", replyCount: 100, viewCount: 100,
		createdAt: time.Now().Add(-8 * 24 * time.Hour),
	})

	posts, err := f.svc.Trending(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"blazing", "viewed", "warm"}, titles(posts),
		"week-old posts drop out no matter how hot they were")
}

func TestTrendingTieBreaksOnRecency(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seedBoard(t, "general", true)
	u := f.seedUser(t, "author")

	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "older", replyCount: 5, viewCount: 0, createdAt: time.Now().Add(-3 * time.Hour)})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "newer", replyCount: 5, viewCount: 0, createdAt: time.Now().Add(-1 * time.Hour)})

	posts, err := f.svc.Trending(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"newer", "older"}, titles(posts))
}

func TestTrendingReplyWeightIsConfigurable(t *testing.T) {
	f := newFixture(t, 10)
	b := f.seedBoard(t, "general", true)
	u := f.seedUser(t, "author")

	recent := time.Now().Add(-time.Hour)
	// With weight 10 the reply-heavy post wins; with the default 3 it would lose.
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "discussed", replyCount: 4, viewCount: 0, createdAt: recent}) // 40 vs 12
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "skimmed", replyCount: 0, viewCount: 25, createdAt: recent})  // 25

	posts, err := f.svc.Trending(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"discussed", "skimmed"}, titles(posts))
}

func TestBoardPagePagination(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seedBoard(t, "general", true)
	u := f.seedUser(t, "author")
	ctx := context.Background()

	base := time.Now().Add(-48 * time.Hour)
	for i := 1; i <= 45; i++ {
		f.seedPost(t, b.ID, u.ID, seedPostOpts{
			title:     fmt.Sprintf("thread %02d", i),
			createdAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	page2, err := f.svc.BoardPage(ctx, "general", 2, 20, feed.SortRecent)
	require.NoError(t, err)
	assert.EqualValues(t, 45, page2.Total)
	assert.Equal(t, 2, page2.Page)
	assert.EqualValues(t, 3, page2.Pages)
	require.Len(t, page2.Posts, 20)
	// Recent order is newest first, so page 2 holds threads 25 down to 06.
	assert.Equal(t, "thread 25", page2.Posts[0].Title)
	assert.Equal(t, "thread 06", page2.Posts[19].Title)

	last, err := f.svc.BoardPage(ctx, "general", 3, 20, feed.SortRecent)
	require.NoError(t, err)
	assert.Len(t, last.Posts, 5)

	past, err := f.svc.BoardPage(ctx, "general", 9, 20, feed.SortRecent)
	require.NoError(t, err)
	assert.NotNil(t, past.Posts)
	assert.Empty(t, past.Posts, "past-the-end pages are empty, not an error")
	assert.EqualValues(t, 45, past.Total)

	clamped, err := f.svc.BoardPage(ctx, "general", 0, 20, feed.SortRecent)
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, "thread 45", clamped.Posts[0].Title)
}

func TestBoardPageHotSort(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seedBoard(t, "general", true)
	u := f.seedUser(t, "author")

	recent := time.Now().Add(-time.Hour)
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "quiet", replyCount: 1, viewCount: 1, createdAt: recent})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "busy", replyCount: 8, viewCount: 4, createdAt: recent})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "pinned cold", pinned: true, createdAt: recent})

	page, err := f.svc.BoardPage(context.Background(), "general", 1, 20, feed.SortHot)
	require.NoError(t, err)
	assert.Equal(t, []string{"pinned cold", "busy", "quiet"}, titles(page.Posts),
		"pins outrank heat on board pages")
}

func TestBoardPageUnknownOrInactiveBoard(t *testing.T) {
	f := newFixture(t, 3)
	f.seedBoard(t, "archive", false)
	ctx := context.Background()

	_, err := f.svc.BoardPage(ctx, "nowhere", 1, 20, feed.SortRecent)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = f.svc.BoardPage(ctx, "archive", 1, 20, feed.SortRecent)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "deactivated boards 404 like missing ones")
}

func TestSearch(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seedBoard(t, "general", true)
	u := f.seedUser(t, "author")
	ctx := context.Background()

	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "Gumbo Recipes", createdAt: time.Now().Add(-2 * time.Hour)})
	f.seedPost(t, b.ID, u.ID, seedPostOpts{title: "unrelated", createdAt: time.Now().Add(-time.Hour)})
	hiddenOpts := seedPostOpts{title: "secret gumbo", removed: true, createdAt: time.Now()}
	f.seedPost(t, b.ID, u.ID, hiddenOpts)

	posts, err := f.svc.Search(ctx, "GUMBO", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gumbo Recipes"}, titles(posts))

	// Body text is searched too.
	posts, err = f.svc.Search(ctx, "body of unrelated", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"unrelated"}, titles(posts))

	_, err = f.svc.Search(ctx, "g", 30)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	posts, err = f.svc.Search(ctx, "no such phrase", 30)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}
