package usecase

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// UserUseCase consultas de usuarios de la organización.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario de la organización.
func (uc *UserUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List usuarios de la organización ordenados por email.
func (uc *UserUseCase) List(ctx context.Context, organizationID string, limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}
