package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/stato"
)

type prenFixture struct {
	svc       PrenotazioneService
	repo      *stubPrenotazioneRepo
	notif     *stubNotifiche
	attoreID  uuid.UUID
	lottoID   uuid.UUID
	origineID uuid.UUID
	socialeID uuid.UUID
}

func newPrenFixture(t *testing.T) *prenFixture {
	t.Helper()

	lotti := newStubLottoRepo()
	centri := newStubCentroRepo()
	pren := newStubPrenotazioneRepo()
	notif := &stubNotifiche{}

	origine := &model.Centro{Nome: "Mensa Nord", Tipo: model.CentroDonatore}
	sociale := &model.Centro{Nome: "Emporio Sud", Tipo: model.CentroSociale}
	require.NoError(t, centri.Create(context.Background(), origine))
	require.NoError(t, centri.Create(context.Background(), sociale))

	lotto := &model.Lotto{
		Prodotto:         "Latte",
		Quantita:         decimal.NewFromInt(12),
		DataScadenza:     time.Now().AddDate(0, 0, 7),
		GiorniPermanenza: 3,
		CentroOrigineID:  origine.ID,
		Stato:            stato.Verde,
		InseritoDa:       uuid.New(),
	}
	require.NoError(t, lotti.Create(context.Background(), lotto))

	return &prenFixture{
		svc:       NewPrenotazioneService(pren, lotti, centri, notif),
		repo:      pren,
		notif:     notif,
		attoreID:  uuid.New(),
		lottoID:   lotto.ID,
		origineID: origine.ID,
		socialeID: sociale.ID,
	}
}

func (f *prenFixture) creaReq() dto.CreaPrenotazioneRequest {
	return dto.CreaPrenotazioneRequest{
		LottoID:           f.lottoID.String(),
		CentroRiceventeID: f.socialeID.String(),
	}
}

func TestCreaPrenotazione(t *testing.T) {
	f := newPrenFixture(t)

	resp, err := f.svc.Crea(context.Background(), f.attoreID, f.creaReq())
	require.NoError(t, err)

	assert.Equal(t, model.PrenotazioneAttiva, resp.Stato)
	assert.Equal(t, f.lottoID.String(), resp.LottoID)
	assert.Equal(t, f.attoreID.String(), resp.AttoreID)
}

func TestCreaPrenotazioneNotificaCentroOrigine(t *testing.T) {
	f := newPrenFixture(t)

	_, err := f.svc.Crea(context.Background(), f.attoreID, f.creaReq())
	require.NoError(t, err)

	assert.Equal(t, 1, f.notif.prenotazioni)
}

func TestCreaPrenotazioneFanOutFallitoNonBlocca(t *testing.T) {
	f := newPrenFixture(t)
	f.notif.err = assert.AnError

	resp, err := f.svc.Crea(context.Background(), f.attoreID, f.creaReq())
	require.NoError(t, err)
	assert.Equal(t, model.PrenotazioneAttiva, resp.Stato)
}

func TestCreaPrenotazioneCentroProprio(t *testing.T) {
	f := newPrenFixture(t)

	req := f.creaReq()
	req.CentroRiceventeID = f.origineID.String()

	_, err := f.svc.Crea(context.Background(), f.attoreID, req)
	assert.ErrorIs(t, err, ErrConflitto)
}

func TestCreaPrenotazioneLottoGiaPrenotato(t *testing.T) {
	f := newPrenFixture(t)

	_, err := f.svc.Crea(context.Background(), f.attoreID, f.creaReq())
	require.NoError(t, err)

	_, err = f.svc.Crea(context.Background(), uuid.New(), f.creaReq())
	assert.ErrorIs(t, err, ErrConflitto)
}

func TestCreaPrenotazioneLottoInesistente(t *testing.T) {
	f := newPrenFixture(t)

	req := f.creaReq()
	req.LottoID = uuid.New().String()

	_, err := f.svc.Crea(context.Background(), f.attoreID, req)
	assert.ErrorIs(t, err, ErrNonTrovato)
}

func TestCambiaStatoPercorsoCompleto(t *testing.T) {
	f := newPrenFixture(t)

	resp, err := f.svc.Crea(context.Background(), f.attoreID, f.creaReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// Attiva → Prenotato → InTransito → Consegnato.
	for _, s := range []string{
		model.PrenotazionePrenotato,
		model.PrenotazioneInTransito,
		model.PrenotazioneConsegnato,
	} {
		resp, err = f.svc.CambiaStato(context.Background(), f.attoreID, id, s)
		require.NoError(t, err)
		assert.Equal(t, s, resp.Stato)
	}
}

func TestCambiaStatoTransizioneNonConsentita(t *testing.T) {
	f := newPrenFixture(t)

	resp, err := f.svc.Crea(context.Background(), f.attoreID, f.creaReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// Attiva → Consegnato salta la catena di ritiro.
	_, err = f.svc.CambiaStato(context.Background(), f.attoreID, id, model.PrenotazioneConsegnato)
	assert.ErrorIs(t, err, ErrConflitto)
}

func TestCambiaStatoTerminale(t *testing.T) {
	f := newPrenFixture(t)

	resp, err := f.svc.Crea(context.Background(), f.attoreID, f.creaReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = f.svc.CambiaStato(context.Background(), f.attoreID, id, model.PrenotazioneAnnullato)
	require.NoError(t, err)

	// Annullato non ha archi uscenti.
	_, err = f.svc.CambiaStato(context.Background(), f.attoreID, id, model.PrenotazionePrenotato)
	assert.ErrorIs(t, err, ErrConflitto)
}
