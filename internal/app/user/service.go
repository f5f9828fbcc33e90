package user

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"winntalks/internal/apperr"
	"winntalks/internal/providers/redis"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service interface {
	Register(ctx context.Context, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUserByToken(ctx context.Context, token string) (*User, error)
}

type service struct {
	repo        Repository
	redisP      *redis.RedisProvider
	logger      *zap.SugaredLogger
	sessionTTL  time.Duration
	bcryptCost  int
	cachePrefix string
}

func NewService(repo Repository, redisP *redis.RedisProvider, logger *zap.Logger, sessionTTL time.Duration, bcryptCost int) Service {
	return &service{
		repo:        repo,
		redisP:      redisP,
		logger:      logger.Sugar(),
		sessionTTL:  sessionTTL,
		bcryptCost:  bcryptCost,
		cachePrefix: "user:token",
	}
}

func (s *service) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validationf("invalid email address")
	}
	if len(password) < 8 {
		return nil, apperr.Validationf("password must be at least 8 characters")
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperr.Conflictf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	username := generateUsername()
	for attempts := 0; attempts < 20; attempts++ {
		taken, err := s.repo.UsernameExists(username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if !taken {
			break
		}
		username = generateUsername()
	}

	userUUID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate uuid: %w", err)
	}

	u := &User{
		UUID:         userUUID.String(),
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
		Role:         RoleUser,
	}
	if err := s.repo.CreateUser(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User registered", "user_uuid", u.UUID, "username", u.Username)
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperr.Unauthorizedf("invalid email or password")
	}
	if u.IsBanned {
		return nil, apperr.Forbiddenf("this account has been suspended")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorizedf("invalid email or password")
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(u.ID, now); err != nil {
		s.logger.Warnw("Failed to update last login", "user_id", u.ID, "error", err)
	}

	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: u}, nil
}

func (s *service) GetUserByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, apperr.Unauthorizedf("access token required")
	}

	cacheKey := fmt.Sprintf("%s:%s", s.cachePrefix, token)
	if s.redisP != nil {
		cached, err := s.redisP.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var cs cachedSession
			// The entry records the session expiry; a cache hit must not
			// outlive the session row it summarizes.
			if json.Unmarshal([]byte(cached), &cs) == nil &&
				cs.User != nil && !cs.User.IsBanned && time.Now().Before(cs.ExpiresAt) {
				return cs.User, nil
			}
			s.redisP.Del(ctx, cacheKey)
		}
	}

	sess, err := s.repo.GetSessionByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if sess == nil || time.Now().After(sess.ExpiresAt) {
		return nil, apperr.Unauthorizedf("invalid or expired token")
	}

	u, err := s.repo.GetUserByID(sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperr.Unauthorizedf("user not found")
	}
	if u.IsBanned {
		return nil, apperr.Forbiddenf("account suspended")
	}

	if s.redisP != nil {
		if data, err := json.Marshal(cachedSession{User: u, ExpiresAt: sess.ExpiresAt}); err == nil {
			s.redisP.SetWithDefaultTTL(ctx, cacheKey, data, 0)
		}
	}

	return u, nil
}

type cachedSession struct {
	User      *User     `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *service) issueSession(ctx context.Context, u *User) (string, error) {
	key, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	sess := &Session{
		Token:     key.String(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(sess); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return sess.Token, nil
}
