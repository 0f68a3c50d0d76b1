package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

// RoleService exposes the seeded role set. Roles are not user-extensible;
// the rows exist so role names can be referenced and enumerated.
type RoleService struct {
	roleRepo repository.RoleRepository
	logger   *slog.Logger
}

// NewRoleService creates a new role service.
func NewRoleService(roleRepo repository.RoleRepository, logger *slog.Logger) *RoleService {
	return &RoleService{roleRepo: roleRepo, logger: logger}
}

// ListRoles returns all roles.
func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// GetRole returns a role by name.
func (s *RoleService) GetRole(ctx context.Context, name string) (*domain.Role, error) {
	if !domain.IsValidRole(name) {
		return nil, apperrors.ErrNotFound
	}

	role, err := s.roleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get role %q: %w", name, err)
	}
	return role, nil
}
