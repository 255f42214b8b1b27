package service

import (
	"context"
	"testing"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/config"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
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
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
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
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newAuthFixture(t *testing.T) (AuthService, *stubUsuarioRepo, *config.Config) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "secreto-de-test",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo, cfg
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	// MinCost keeps the suite fast; the service itself hashes at cost 12.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Usuario de Prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginExitoso(t *testing.T) {
	svc, repo, cfg := newAuthFixture(t)
	user := seedUsuario(t, repo, "jm", "obra-segura-123", "admin")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "jm", Password: "obra-segura-123"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, cfg.JWTExpirationHours*3600, resp.ExpiresIn)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "admin", resp.User.Rol)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The access token carries the identity claims
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "jm", claims["username"])
	assert.Equal(t, "admin", claims["rol"])
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedUsuario(t, repo, "jm", "obra-segura-123", "admin")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "jm", Password: "otra"})
	assert.EqualError(t, err, "credenciales invalidas")
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.EqualError(t, err, "credenciales invalidas")
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	user := seedUsuario(t, repo, "jm", "obra-segura-123", "operario")
	require.NoError(t, repo.SoftDelete(context.Background(), user.ID))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "jm", Password: "obra-segura-123"})
	assert.EqualError(t, err, "credenciales invalidas")
}

func TestRefreshEmiteNuevoPar(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedUsuario(t, repo, "jm", "obra-segura-123", "admin")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "jm", Password: "obra-segura-123"})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, login.User.ID, resp.User.ID)
}

func TestRefreshRechazaUsuarioDesactivado(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	user := seedUsuario(t, repo, "jm", "obra-segura-123", "operario")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "jm", Password: "obra-segura-123"})
	require.NoError(t, err)

	// Deactivation between token issuance and refresh invalidates the session
	require.NoError(t, repo.SoftDelete(context.Background(), user.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshTokenAjeno(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	user := seedUsuario(t, repo, "jm", "obra-segura-123", "admin")

	// Same claims, wrong secret
	ajeno := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	firmado, err := ajeno.SignedString([]byte("otro-secreto"))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), firmado)
	assert.Error(t, err)
}

func TestRefreshTokenExpirado(t *testing.T) {
	svc, _, cfg := newAuthFixture(t)

	vencido := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	firmado, err := vencido.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), firmado)
	assert.Error(t, err)
}

func TestCrearUsuarioHasheaPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "operario1", Nombre: "Pedro López", Password: "obra-segura-123", Rol: "operario",
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "obra-segura-123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("obra-segura-123")))
}

func TestListarUsuariosFiltraInactivos(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedUsuario(t, repo, "activo", "obra-segura-123", "admin")
	baja := seedUsuario(t, repo, "baja", "obra-segura-123", "operario")
	require.NoError(t, repo.SoftDelete(context.Background(), baja.ID))

	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestActualizarUsuarioCambiaRolYPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	user := seedUsuario(t, repo, "jm", "obra-segura-123", "operario")

	resp, err := svc.ActualizarUsuario(context.Background(), user.ID, dto.ActualizarUsuarioRequest{
		Rol: "admin", Password: "clave-nueva-456",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Rol)
	assert.Equal(t, "Usuario de Prueba", resp.Nombre, "los campos vacíos no pisan los existentes")

	stored, _ := repo.FindByID(context.Background(), user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-nueva-456")))
}

func TestReactivarUsuario(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	user := seedUsuario(t, repo, "jm", "obra-segura-123", "operario")

	require.NoError(t, svc.DesactivarUsuario(context.Background(), user.ID))
	stored, _ := repo.FindByID(context.Background(), user.ID)
	assert.False(t, stored.Activo)

	require.NoError(t, svc.ReactivarUsuario(context.Background(), user.ID))
	stored, _ = repo.FindByID(context.Background(), user.ID)
	assert.True(t, stored.Activo)
}
