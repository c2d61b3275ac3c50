package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"refood/internal/config"
	"refood/internal/dto"
	"refood/internal/model"
)

func newAuthFixture(t *testing.T) (AuthService, *stubAttoreRepo) {
	t.Helper()
	repo := newStubAttoreRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func (r *stubAttoreRepo) seedAttore(t *testing.T, email, password string) *model.Attore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	a := &model.Attore{
		ID:           uuid.New(),
		Nome:         "Mario Rossi",
		Email:        email,
		PasswordHash: string(hash),
		Attivo:       true,
	}
	r.attori[a.ID] = a
	return a
}

func TestLoginIncludeCentriAssociati(t *testing.T) {
	svc, repo := newAuthFixture(t)
	attore := repo.seedAttore(t, "mario@refood.it", "segreta")

	c1, c2 := uuid.New(), uuid.New()
	repo.centriDi[attore.ID] = []uuid.UUID{c1, c2}

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "mario@refood.it",
		Password: "segreta",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, attore.ID.String(), resp.Attore.ID)
	assert.ElementsMatch(t, []string{c1.String(), c2.String()}, resp.Attore.Centri)
}

func TestLoginSenzaCentri(t *testing.T) {
	svc, repo := newAuthFixture(t)
	repo.seedAttore(t, "solo@refood.it", "segreta")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "solo@refood.it",
		Password: "segreta",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Attore.Centri)
}

func TestLoginPasswordErrata(t *testing.T) {
	svc, repo := newAuthFixture(t)
	repo.seedAttore(t, "mario@refood.it", "segreta")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "mario@refood.it",
		Password: "sbagliata",
	})
	assert.Error(t, err)
}

func TestRefreshRigeneraTokenConCentri(t *testing.T) {
	svc, repo := newAuthFixture(t)
	attore := repo.seedAttore(t, "mario@refood.it", "segreta")
	centro := uuid.New()
	repo.centriDi[attore.ID] = []uuid.UUID{centro}

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "mario@refood.it",
		Password: "segreta",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, []string{centro.String()}, resp.Attore.Centri)
}
