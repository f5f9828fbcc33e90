package reply_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"winntalks/internal/apperr"
	"winntalks/internal/app/board"
	"winntalks/internal/app/post"
	"winntalks/internal/app/reply"
	"winntalks/internal/app/report"
	"winntalks/internal/app/user"
	"winntalks/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &user.Session{}, &board.Board{},
		&post.Post{}, &post.Vote{}, &reply.Reply{}, &report.Report{},
	))
	return db
}

func newService(t *testing.T, db *gorm.DB) reply.Service {
	t.Helper()
	return reply.NewService(reply.NewRepository(db), utils.NewEventBus(), zap.NewNop())
}

func seedBoard(t *testing.T, db *gorm.DB, slug string, active bool) *board.Board {
	t.Helper()
	b := &board.Board{Slug: slug, Name: slug + " board", IsActive: active}
	require.NoError(t, db.Create(b).Error)
	return b
}

func seedUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := &user.User{
		UUID:         "user-" + name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Username:     name,
		Role:         user.RoleUser,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, b *board.Board, u *user.User, title string, createdAt time.Time) *post.Post {
	t.Helper()
	p := &post.Post{
		UUID:        fmt.Sprintf("post-%s-%d", title, createdAt.UnixNano()),
		BoardID:     b.ID,
		UserID:      u.ID,
		Title:       title,
		Body:        "body of " + title,
		LastReplyAt: createdAt,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func loadPost(t *testing.T, db *gorm.DB, id uint64) *post.Post {
	t.Helper()
	var p post.Post
	require.NoError(t, db.First(&p, id).Error)
	return &p
}

func TestCreateReplyUpdatesParentCounters(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	author := seedUser(t, db, "author")
	replier := seedUser(t, db, "replier")
	created := time.Now().Add(-time.Hour)
	p := seedPost(t, db, b, author, "first post", created)

	r1, err := svc.CreateReply(context.Background(), p.UUID, replier.ID, "first reply")
	require.NoError(t, err)
	assert.False(t, r1.IsOP)

	got := loadPost(t, db, p.ID)
	assert.Equal(t, 1, got.ReplyCount)
	assert.False(t, got.LastReplyAt.Before(created), "last_reply_at must not regress below creation time")
	assert.Equal(t, r1.CreatedAt.Unix(), got.LastReplyAt.Unix())

	r2, err := svc.CreateReply(context.Background(), p.UUID, author.ID, "op follows up")
	require.NoError(t, err)
	assert.True(t, r2.IsOP)

	got = loadPost(t, db, p.ID)
	assert.Equal(t, 2, got.ReplyCount)
	assert.Equal(t, r2.CreatedAt.Unix(), got.LastReplyAt.Unix())
}

func TestCreateReplyValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	u := seedUser(t, db, "someone")
	p := seedPost(t, db, b, u, "a post", time.Now())

	_, err := svc.CreateReply(context.Background(), p.UUID, u.ID, "x")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateReply(context.Background(), p.UUID, u.ID, strings.Repeat("a", 5001))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Boundary lengths are accepted.
	_, err = svc.CreateReply(context.Background(), p.UUID, u.ID, "ok")
	assert.NoError(t, err)
	_, err = svc.CreateReply(context.Background(), p.UUID, u.ID, strings.Repeat("a", 5000))
	assert.NoError(t, err)
}

func TestCreateReplyOnLockedPost(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	u := seedUser(t, db, "someone")
	p := seedPost(t, db, b, u, "locked thread", time.Now())
	require.NoError(t, db.Model(&post.Post{}).Where("id = ?", p.ID).Update("is_locked", true).Error)

	_, err := svc.CreateReply(context.Background(), p.UUID, u.ID, "late to the party")
	assert.True(t, apperr.IsKind(err, apperr.KindLocked))

	got := loadPost(t, db, p.ID)
	assert.Equal(t, 0, got.ReplyCount)
}

func TestCreateReplyOnMissingOrHiddenPost(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	inactive := seedBoard(t, db, "closed", false)
	u := seedUser(t, db, "someone")

	_, err := svc.CreateReply(context.Background(), "no-such-post", u.ID, "hello")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	removed := seedPost(t, db, b, u, "removed post", time.Now())
	require.NoError(t, db.Model(&post.Post{}).Where("id = ?", removed.ID).Update("is_removed", true).Error)
	_, err = svc.CreateReply(context.Background(), removed.UUID, u.ID, "hello")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	hidden := seedPost(t, db, inactive, u, "hidden board post", time.Now())
	_, err = svc.CreateReply(context.Background(), hidden.UUID, u.ID, "hello")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRemoveReplyRecountsCounters(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	u := seedUser(t, db, "someone")
	created := time.Now().Add(-time.Hour)
	p := seedPost(t, db, b, u, "busy thread", created)

	r1, err := svc.CreateReply(context.Background(), p.UUID, u.ID, "reply one")
	require.NoError(t, err)
	r2, err := svc.CreateReply(context.Background(), p.UUID, u.ID, "reply two")
	require.NoError(t, err)
	r3, err := svc.CreateReply(context.Background(), p.UUID, u.ID, "reply three")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveReply(context.Background(), r2.UUID))
	got := loadPost(t, db, p.ID)
	assert.Equal(t, 2, got.ReplyCount)
	assert.Equal(t, r3.CreatedAt.Unix(), got.LastReplyAt.Unix())

	// Removing the newest reply rolls last_reply_at back to the survivor.
	require.NoError(t, svc.RemoveReply(context.Background(), r3.UUID))
	got = loadPost(t, db, p.ID)
	assert.Equal(t, 1, got.ReplyCount)
	assert.Equal(t, r1.CreatedAt.Unix(), got.LastReplyAt.Unix())

	// With no replies left, last_reply_at falls back to the post's own
	// creation time.
	require.NoError(t, svc.RemoveReply(context.Background(), r1.UUID))
	got = loadPost(t, db, p.ID)
	assert.Equal(t, 0, got.ReplyCount)
	assert.Equal(t, created.Unix(), got.LastReplyAt.Unix())
}

func TestRemoveReplyIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	u := seedUser(t, db, "someone")
	p := seedPost(t, db, b, u, "a post", time.Now())

	r1, err := svc.CreateReply(context.Background(), p.UUID, u.ID, "only reply")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveReply(context.Background(), r1.UUID))
	require.NoError(t, svc.RemoveReply(context.Background(), r1.UUID))

	got := loadPost(t, db, p.ID)
	assert.Equal(t, 0, got.ReplyCount)

	err = svc.RemoveReply(context.Background(), "no-such-reply")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReplyCountMatchesVisibleReplies(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	u := seedUser(t, db, "someone")
	p := seedPost(t, db, b, u, "churny thread", time.Now().Add(-time.Hour))

	var uuids []string
	for i := 0; i < 6; i++ {
		r, err := svc.CreateReply(context.Background(), p.UUID, u.ID, fmt.Sprintf("reply number %d", i))
		require.NoError(t, err)
		uuids = append(uuids, r.UUID)
	}
	require.NoError(t, svc.RemoveReply(context.Background(), uuids[0]))
	require.NoError(t, svc.RemoveReply(context.Background(), uuids[3]))

	var visible int64
	require.NoError(t, db.Model(&reply.Reply{}).
		Where("post_id = ? AND is_removed = ?", p.ID, false).
		Count(&visible).Error)

	got := loadPost(t, db, p.ID)
	assert.EqualValues(t, visible, got.ReplyCount)
	assert.Equal(t, 4, got.ReplyCount)
}

func TestGetVisibleByPostID(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	b := seedBoard(t, db, "general", true)
	author := seedUser(t, db, "author")
	replier := seedUser(t, db, "replier")
	p := seedPost(t, db, b, author, "a post", time.Now().Add(-time.Hour))

	r1, err := svc.CreateReply(context.Background(), p.UUID, replier.ID, "first")
	require.NoError(t, err)
	_, err = svc.CreateReply(context.Background(), p.UUID, author.ID, "second, from op")
	require.NoError(t, err)
	removed, err := svc.CreateReply(context.Background(), p.UUID, replier.ID, "to be removed")
	require.NoError(t, err)
	require.NoError(t, svc.RemoveReply(context.Background(), removed.UUID))

	replies, err := svc.GetVisibleByPostID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, r1.UUID, replies[0].UUID)
	assert.Equal(t, "replier", replies[0].Author)
	assert.False(t, replies[0].IsOP)
	assert.True(t, replies[1].IsOP)
}
