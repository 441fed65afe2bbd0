package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// AuthService implements login, password changes and the admin bootstrap.
type AuthService struct {
	users     ports.UserRepository
	lockout   ports.LoginLockout
	audit     auditor
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService builds an AuthService. lockout and recorder may be nil
// interfaces; typed nil pointers are not accepted.
func NewAuthService(
	users ports.UserRepository,
	lockout ports.LoginLockout,
	recorder ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		lockout:   lockout,
		audit:     newAuditor(recorder),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string, meta ports.RequestMeta) (string, *domain.User, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.checkLock(ctx, username); err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, s.failLogin(ctx, username)
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, s.failLogin(ctx, username)
	}
	if !user.IsActive {
		return "", nil, domain.ErrAccountInactive
	}

	if s.lockout != nil {
		if err := s.lockout.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset login attempts")
		}
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to stamp last login")
	} else {
		user.LastLogin = &now
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.audit.record(&domain.Identity{ID: user.ID, Username: user.Username}, domain.ActionLogin, domain.ResourceUser, user.ID, meta, nil)
	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) checkLock(ctx context.Context, username string) error {
	if s.lockout == nil {
		return nil
	}
	remaining, err := s.lockout.Remaining(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("lockout check failed, allowing attempt")
		return nil
	}
	if remaining > 0 {
		return fmt.Errorf("%w: try again in %s", domain.ErrAccountLocked, remaining.Round(time.Minute))
	}
	return nil
}

// failLogin counts the attempt and returns the error to surface.
func (s *AuthService) failLogin(ctx context.Context, username string) error {
	if s.lockout == nil {
		return domain.ErrInvalidCredentials
	}
	locked, err := s.lockout.RecordFailure(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		return domain.ErrInvalidCredentials
	}
	if locked {
		s.logger.Warn().Str("username", username).Msg("account locked after repeated failures")
		return domain.ErrAccountLocked
	}
	return domain.ErrInvalidCredentials
}

func (s *AuthService) Logout(_ context.Context, identity *domain.Identity, meta ports.RequestMeta) {
	if identity == nil {
		return
	}
	s.audit.record(identity, domain.ActionLogout, domain.ResourceUser, identity.ID, meta, nil)
}

func (s *AuthService) ChangePassword(ctx context.Context, identity *domain.Identity, current, next string, meta ports.RequestMeta) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if err := domain.ValidatePassword(next); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, identity.ID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if _, err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.audit.record(identity, domain.ActionPasswordChanged, domain.ResourceUser, user.ID, meta, nil)
	return nil
}

func (s *AuthService) EnsureAdmin(ctx context.Context, seed ports.AdminSeed) (*domain.User, bool, error) {
	username := domain.NormalizeUsername(seed.Username)
	if username == "" || seed.Password == "" {
		return nil, false, domain.NewValidationError("admin username and password are required")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("ensure admin: %w", err)
	}

	if domain.ValidatePassword(seed.Password) != nil {
		s.logger.Warn().Str("username", username).Msg("bootstrap admin password does not meet the password policy; change it after first login")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        seed.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("ensure admin: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("bootstrap admin created")
	return created, true, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
