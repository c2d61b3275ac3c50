package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"refood/internal/infra"
	"refood/internal/model"
	"refood/internal/stato"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func creaCentro(t *testing.T, db *gorm.DB, nome, tipo string) *model.Centro {
	t.Helper()
	c := &model.Centro{Nome: nome, Tipo: tipo}
	require.NoError(t, db.Create(c).Error)
	return c
}

func creaLotto(t *testing.T, db *gorm.DB, centroID uuid.UUID, prodotto string, scadenza time.Time, s stato.Stato) *model.Lotto {
	t.Helper()
	l := &model.Lotto{
		Prodotto:         prodotto,
		Quantita:         decimal.NewFromInt(1),
		UnitaMisura:      "kg",
		DataScadenza:     scadenza,
		GiorniPermanenza: 3,
		CentroOrigineID:  centroID,
		Stato:            s,
		InseritoDa:       model.AttoreSistemaID,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestListDisponibiliEscludePropriLottiERossi(t *testing.T) {
	db := newTestDB(t)
	repo := NewLottoRepository(db)

	donatore := creaCentro(t, db, "Mensa Nord", model.CentroDonatore)
	sociale := creaCentro(t, db, "Emporio Sud", model.CentroSociale)

	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	creaLotto(t, db, donatore.ID, "Pane", base.AddDate(0, 0, 5), stato.Verde)
	creaLotto(t, db, donatore.ID, "Scaduto", base.AddDate(0, 0, -1), stato.Rosso)
	creaLotto(t, db, sociale.ID, "Proprio", base.AddDate(0, 0, 5), stato.Verde)

	lotti, err := repo.ListDisponibili(context.Background(), sociale.ID, model.CentroSociale, 50)
	require.NoError(t, err)

	require.Len(t, lotti, 1)
	assert.Equal(t, "Pane", lotti[0].Prodotto)
}

func TestListDisponibiliEscludeLottiPrenotati(t *testing.T) {
	db := newTestDB(t)
	repo := NewLottoRepository(db)

	donatore := creaCentro(t, db, "Mensa Nord", model.CentroDonatore)
	sociale := creaCentro(t, db, "Emporio Sud", model.CentroSociale)

	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	libero := creaLotto(t, db, donatore.ID, "Libero", base.AddDate(0, 0, 5), stato.Verde)
	preso := creaLotto(t, db, donatore.ID, "Preso", base.AddDate(0, 0, 5), stato.Verde)
	attesa := creaLotto(t, db, donatore.ID, "InAttesa", base.AddDate(0, 0, 5), stato.Verde)

	// La catena di ritiro e' iniziata: il lotto sparisce dalla lista.
	require.NoError(t, db.Create(&model.Prenotazione{
		LottoID:         preso.ID,
		CentroRicevente: sociale.ID,
		AttoreID:        model.AttoreSistemaID,
		Stato:           model.PrenotazionePrenotato,
	}).Error)
	// Una prenotazione solo Attiva non la nasconde ancora.
	require.NoError(t, db.Create(&model.Prenotazione{
		LottoID:         attesa.ID,
		CentroRicevente: sociale.ID,
		AttoreID:        model.AttoreSistemaID,
		Stato:           model.PrenotazioneAttiva,
	}).Error)

	lotti, err := repo.ListDisponibili(context.Background(), sociale.ID, model.CentroSociale, 50)
	require.NoError(t, err)

	visti := make(map[uuid.UUID]bool, len(lotti))
	for _, l := range lotti {
		visti[l.ID] = true
	}
	assert.True(t, visti[libero.ID])
	assert.True(t, visti[attesa.ID])
	assert.False(t, visti[preso.ID])
}

func TestListDisponibiliOrdinePerTipoCentro(t *testing.T) {
	db := newTestDB(t)
	repo := NewLottoRepository(db)

	donatore := creaCentro(t, db, "Mensa Nord", model.CentroDonatore)
	sociale := creaCentro(t, db, "Emporio Sud", model.CentroSociale)
	riciclo := creaCentro(t, db, "Compost Ovest", model.CentroRiciclaggio)

	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	creaLotto(t, db, donatore.ID, "Presto", base.AddDate(0, 0, 2), stato.Arancione)
	creaLotto(t, db, donatore.ID, "Tardi", base.AddDate(0, 0, 9), stato.Verde)

	// Centri sociali: prima il piu' fresco.
	lotti, err := repo.ListDisponibili(context.Background(), sociale.ID, model.CentroSociale, 50)
	require.NoError(t, err)
	require.Len(t, lotti, 2)
	assert.Equal(t, "Tardi", lotti[0].Prodotto)

	// Centri di riciclaggio: prima quello che scade.
	lotti, err = repo.ListDisponibili(context.Background(), riciclo.ID, model.CentroRiciclaggio, 50)
	require.NoError(t, err)
	require.Len(t, lotti, 2)
	assert.Equal(t, "Presto", lotti[0].Prodotto)
}
