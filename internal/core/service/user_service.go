package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// UserService administers accounts. Actors cannot delete themselves or change
// their own role.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	audit  auditor
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, recorder ports.ActivityRecorder, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, audit: newAuditor(recorder), logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// knownRole accepts system names and existing custom role names, returning
// the canonical spelling.
func (s *UserService) knownRole(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if _, _, ok := domain.SystemRole(name); ok {
		return name, nil
	}
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("role %q: %w", name, err)
	}
	return role.Name, nil
}

func (s *UserService) Create(ctx context.Context, actor *domain.Identity, in ports.CreateUserInput, meta ports.RequestMeta) (*domain.User, error) {
	if err := authorize(actor, domain.CanManageUsers); err != nil {
		return nil, err
	}
	username := domain.NormalizeUsername(in.Username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = domain.RoleEmployee
	}
	role, err := s.knownRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.ActionUserCreated, domain.ResourceUser, created.ID, meta, map[string]string{"username": created.Username, "role": created.Role})
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor *domain.Identity, id string, in ports.UpdateUserInput, meta ports.RequestMeta) (*domain.User, error) {
	if err := authorize(actor, domain.CanManageUsers); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]string{}
	if in.Role != nil && *in.Role != user.Role {
		if user.ID == actor.ID {
			return nil, domain.ErrSelfDemotion
		}
		role, err := s.knownRole(ctx, *in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
		changed["role"] = role
	}
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		if user.ID == actor.ID && !*in.IsActive {
			return nil, domain.ErrSelfDemotion
		}
		user.IsActive = *in.IsActive
		changed["isActive"] = fmt.Sprint(user.IsActive)
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
		changed["email"] = user.Email
	}
	if in.Password != nil {
		if err := domain.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changed["password"] = "reset"
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.audit.record(actor, domain.ActionUserUpdated, domain.ResourceUser, updated.ID, meta, changed)
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.Identity, id string, meta ports.RequestMeta) error {
	if err := authorize(actor, domain.CanManageUsers); err != nil {
		return err
	}
	if id == actor.ID {
		return domain.ErrSelfDelete
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.audit.record(actor, domain.ActionUserDeleted, domain.ResourceUser, user.ID, meta, map[string]string{"username": user.Username})
	s.logger.Info().Str("user_id", user.ID).Str("by", actor.Username).Msg("user deleted")
	return nil
}
