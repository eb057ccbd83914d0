package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bookshare-backend/internal/domains/user"
	"bookshare-backend/pkg/jwt"
)

// Mocked identity providers. The exchange fabricates the identity the
// way the demo provider flow did; swapping in a real provider only needs
// a different identity source behind the same service method.
var providerEmailDomains = map[string]string{
	"google": "gmail.com",
	"apple":  "icloud.com",
}

const providerAvatarURL = "https://images.pexels.com/photos/1040880/pexels-photo-1040880.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&crop=face"

type userService struct {
	repo       user.Repository
	sessions   user.SessionRepository
	tokens     *jwt.Manager
	sessionTTL time.Duration
}

func NewUserService(repo user.Repository, sessions user.SessionRepository, tokens *jwt.Manager, sessionTTL time.Duration) user.Service {
	return &userService{
		repo:       repo,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// bcrypt cost 12: the usual security/latency trade-off.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
	}

	// The repository enforces email uniqueness inside its write lock, so
	// two racing registrations cannot both land.
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", newUser.ID).Str("role", string(newUser.Role)).Msg("user registered")

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Do not reveal whether the email exists.
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if u.PasswordHash == "" {
		// Provider accounts have no credentials to check against.
		return nil, user.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.openSession(ctx, u)
}

func (s *userService) SignInWithProvider(ctx context.Context, provider string, role user.Role) (*user.AuthResponse, error) {
	domain, ok := providerEmailDomains[provider]
	if !ok {
		return nil, user.ErrUnknownProvider
	}
	if !role.Valid() {
		return nil, user.ErrInvalidRole
	}

	suffix, err := randomSuffix()
	if err != nil {
		return nil, fmt.Errorf("generate identity suffix: %w", err)
	}

	displayRole := "Book Collector"
	if role == user.RoleDonor {
		displayRole = "Book Donor"
	}

	avatar := providerAvatarURL
	identity := &user.User{
		ID:        fmt.Sprintf("%s_%s_%s", provider, role, suffix),
		Name:      fmt.Sprintf("%s %s", displayRole, strings.ToUpper(suffix)),
		Email:     fmt.Sprintf("%s%s@%s", role, suffix, domain),
		Avatar:    &avatar,
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Upsert(ctx, identity); err != nil {
		return nil, fmt.Errorf("store provider identity: %w", err)
	}

	log.Info().Str("user_id", identity.ID).Str("provider", provider).Msg("provider sign-in")

	return s.openSession(ctx, identity)
}

func (s *userService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *userService) IsSessionValid(ctx context.Context, token string) (bool, error) {
	_, err := s.sessions.Get(ctx, token)
	if errors.Is(err, user.ErrSessionNotFound) || errors.Is(err, user.ErrSessionExpired) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, id string) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

// openSession issues the access token and its server-side session record.
func (s *userService) openSession(ctx context.Context, u *user.User) (*user.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	now := time.Now()
	session := user.Session{
		Token:     token,
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &user.AuthResponse{
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
		User:        u.ToDTO(),
	}, nil
}

func randomSuffix() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
