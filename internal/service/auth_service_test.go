package service

import (
	"context"
	"testing"

	"github.com/adornodavid/aybcosteo-sub001/internal/config"
	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedGerente(t *testing.T, repo *stubUsuarioRepo, password string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     "gerente1",
		Nombre:       "Gerente de Costos",
		PasswordHash: string(hash),
		Rol:          "gerente",
		Activo:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedGerente(t, repo, "secreto123")
	svc := NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente1",
		Password: "secreto123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "gerente", resp.User.Rol)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedGerente(t, repo, "secreto123")
	svc := NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente1",
		Password: "otra-cosa",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedGerente(t, repo, "secreto123")
	require.NoError(t, repo.SoftDelete(context.Background(), u.ID))
	svc := NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente1",
		Password: "secreto123",
	})
	require.Error(t, err)
}

func TestRefresh(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedGerente(t, repo, "secreto123")
	svc := NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente1",
		Password: "secreto123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "gerente1", refreshed.User.Username)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authTestConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestCrearUsuario(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())
	hotelID := uuid.New().String()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "analista1",
		Nombre:   "Analista de Costos",
		Password: "password123",
		Rol:      "analista",
		HotelID:  &hotelID,
	})

	require.NoError(t, err)
	assert.Equal(t, "analista", resp.Rol)
	require.NotNil(t, resp.HotelID)
	assert.Equal(t, hotelID, *resp.HotelID)
	assert.True(t, resp.Activo)

	// El password nunca se guarda en claro.
	u, err := repo.FindByUsername(context.Background(), "analista1")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
}

func TestCrearUsuario_HotelIDInvalido(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authTestConfig())
	malo := "not-a-uuid"

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "analista2",
		Nombre:   "Analista",
		Password: "password123",
		Rol:      "analista",
		HotelID:  &malo,
	})
	require.Error(t, err)
}
