package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/pkg/metrics"
)

// AuthService authenticates against the users collection and keeps the
// resulting sessions in a SessionRepository.
type AuthService struct {
	store     *Store
	sessions  ports.SessionRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(store *Store, sessions ports.SessionRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		store:     store,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// InitializeDefaultUsers loads the users collection and seeds the demo
// accounts when it is empty.
func (s *AuthService) InitializeDefaultUsers(ctx context.Context) {
	s.store.users.load(ctx)
	s.store.users.seed(ctx, defaultUsers(s.now()))
}

// Login reloads the users collection, looks for an exact email and password
// match and opens a session for it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	s.InitializeDefaultUsers(ctx)

	var match *domain.User
	for _, u := range s.store.users.snapshot() {
		if u.Email == email && passwordMatches(u.Password, password) {
			match = &u
			break
		}
	}
	if match == nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user := *match
	user.Password = ""
	now := s.now()
	session := &domain.Session{ID: uuid.NewString(), User: user, CreatedAt: now, ExpiresAt: now.Add(s.tokenTTL)}
	if err := s.sessions.Save(ctx, session); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.generateToken(session)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("user_id", match.ID).Str("role", string(match.Type)).Msg("user logged in")
	return &ports.LoginResult{Token: token, Session: session}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Find(ctx, sessionID)
}

// CreateUser adds an account with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownUserType, in.Type)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:        newID(""),
		Email:     email,
		Password:  string(hash),
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: s.now(),
	}
	err = s.store.users.mutate(ctx, "Add new user: "+email, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, email) {
				return nil, domain.ErrUserExists
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   session.ID,
		"sub":   session.User.ID,
		"email": session.User.Email,
		"role":  string(session.User.Type),
		"exp":   session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// passwordMatches compares against a bcrypt hash when stored is one and
// byte-for-byte otherwise.
func passwordMatches(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
