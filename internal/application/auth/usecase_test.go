package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
	"github.com/jhoicas/farmacia-api/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *memstore.Store) {
	t.Helper()
	s := memstore.New()
	require.NoError(t, s.Organizations().Create(context.Background(), &entity.Organization{
		ID: "org-1", Name: "Dispensarios del Valle", NIT: "9001234568", Status: "active", CreatedAt: time.Now(),
	}))
	uc := auth.NewAuthUseCase(s.Users(), s.Organizations(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "farmacia-api"})
	return uc, s
}

func TestRegisterUser_RolPorDefectoAuxiliar(t *testing.T) {
	uc, _ := setup(t)
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: " Regente@Example.com ", Password: "supersecreta", OrganizationID: "org-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAuxiliar, u.Role)
	assert.Equal(t, "regente@example.com", u.Email)
	assert.Equal(t, "regente@example.com", u.Name)
	assert.Equal(t, "active", u.Status)
}

func TestRegisterUser_Errores(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678", OrganizationID: "org-1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   dto.RegisterRequest
		want error
	}{
		{"email duplicado", dto.RegisterRequest{Email: "A@b.co", Password: "12345678", OrganizationID: "org-1"}, domain.ErrEmailAlreadyExists},
		{"password corta", dto.RegisterRequest{Email: "c@b.co", Password: "123", OrganizationID: "org-1"}, domain.ErrInvalidInput},
		{"rol desconocido", dto.RegisterRequest{Email: "c@b.co", Password: "12345678", OrganizationID: "org-1", Role: "vendedor"}, domain.ErrInvalidInput},
		{"organización inexistente", dto.RegisterRequest{Email: "c@b.co", Password: "12345678", OrganizationID: "org-x"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_GeneraTokenConOrganizacionYRol(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "regente@example.com", Password: "supersecreta", OrganizationID: "org-1", Role: entity.RoleRegente,
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "regente@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, entity.RoleRegente, claims.Role)
	assert.Equal(t, out.User.ID, claims.UserID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@example.com", Password: "supersecreta", OrganizationID: "org-1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
