package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/repository"
	"refood/internal/stato"
)

// stubNotificaRepo keeps notification rows in memory.
type stubNotificaRepo struct {
	righe []model.Notifica
	err   error
}

func (r *stubNotificaRepo) Create(_ context.Context, n *model.Notifica) error {
	if r.err != nil {
		return r.err
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.righe = append(r.righe, *n)
	return nil
}

func (r *stubNotificaRepo) ListByDestinatario(_ context.Context, destinatarioID uuid.UUID, filter dto.NotificaFilter) ([]model.Notifica, error) {
	var out []model.Notifica
	for _, n := range r.righe {
		if n.DestinatarioID != destinatarioID {
			continue
		}
		if filter.SoloNonLette && n.Letto {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *stubNotificaRepo) MarkLetta(_ context.Context, id, destinatarioID uuid.UUID) error {
	for i := range r.righe {
		if r.righe[i].ID == id && r.righe[i].DestinatarioID == destinatarioID {
			r.righe[i].Letto = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubNotificaRepo) MarkTutteLette(_ context.Context, destinatarioID uuid.UUID) error {
	for i := range r.righe {
		if r.righe[i].DestinatarioID == destinatarioID {
			r.righe[i].Letto = true
		}
	}
	return nil
}

func (r *stubNotificaRepo) CountNonLette(_ context.Context, destinatarioID uuid.UUID) (int64, error) {
	var n int64
	for _, row := range r.righe {
		if row.DestinatarioID == destinatarioID && !row.Letto {
			n++
		}
	}
	return n, nil
}

var _ repository.NotificaRepository = (*stubNotificaRepo)(nil)

type notificaFixture struct {
	svc    NotificaService
	repo   *stubNotificaRepo
	attori *stubAttoreRepo
	pren   *stubPrenotazioneRepo
}

func newNotificaFixture(t *testing.T) *notificaFixture {
	t.Helper()
	repo := &stubNotificaRepo{}
	attori := newStubAttoreRepo()
	pren := newStubPrenotazioneRepo()
	return &notificaFixture{
		svc:    NewNotificaService(repo, attori, pren, nil),
		repo:   repo,
		attori: attori,
		pren:   pren,
	}
}

func TestListRiportaConteggioNonLette(t *testing.T) {
	f := newNotificaFixture(t)
	destinatario := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.repo.Create(context.Background(), &model.Notifica{
			DestinatarioID: destinatario,
			Tipo:           model.NotificaLottoCreato,
			Titolo:         "Nuovo lotto disponibile",
		}))
	}
	require.NoError(t, f.repo.MarkLetta(context.Background(), f.repo.righe[0].ID, destinatario))

	resp, err := f.svc.List(context.Background(), destinatario, dto.NotificaFilter{Limit: 50})
	require.NoError(t, err)

	assert.Len(t, resp.Notifiche, 3)
	assert.Equal(t, int64(2), resp.NonLette)
}

func TestFanOutPrenotazioneNotificaStaffOrigine(t *testing.T) {
	f := newNotificaFixture(t)

	centroID := uuid.New()
	operatore := uuid.New()
	admin := uuid.New()
	f.attori.staff[centroID] = []uuid.UUID{operatore, admin}

	lotto := &model.Lotto{
		ID:              uuid.New(),
		Prodotto:        "Pane",
		Quantita:        decimal.NewFromInt(5),
		UnitaMisura:     "kg",
		CentroOrigineID: centroID,
		Stato:           stato.Verde,
	}
	p := &model.Prenotazione{ID: uuid.New(), LottoID: lotto.ID, AttoreID: uuid.New()}

	inseriti, err := f.svc.FanOutPrenotazione(context.Background(), p, lotto)
	require.NoError(t, err)
	assert.Equal(t, 2, inseriti)

	require.Len(t, f.repo.righe, 2)
	for _, n := range f.repo.righe {
		assert.Equal(t, model.NotificaPrenotazione, n.Tipo)
		assert.Equal(t, model.RiferimentoPrenotazione, n.RiferimentoTipo)
		require.NotNil(t, n.RiferimentoID)
		assert.Equal(t, p.ID, *n.RiferimentoID)
	}
}

func TestFanOutPrenotazioneInserimentoParziale(t *testing.T) {
	f := newNotificaFixture(t)

	centroID := uuid.New()
	f.attori.staff[centroID] = []uuid.UUID{uuid.New()}
	f.repo.err = assert.AnError

	lotto := &model.Lotto{ID: uuid.New(), Prodotto: "Pane", Quantita: decimal.NewFromInt(5), CentroOrigineID: centroID}
	p := &model.Prenotazione{ID: uuid.New(), LottoID: lotto.ID}

	inseriti, err := f.svc.FanOutPrenotazione(context.Background(), p, lotto)
	assert.Error(t, err)
	assert.Zero(t, inseriti)
}
