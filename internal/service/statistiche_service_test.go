package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"refood/internal/model"
	"refood/internal/repository"
	"refood/internal/stato"
)

type stubStatisticheRepo struct {
	snapshots map[string]*model.StatisticaGiornaliera
}

func newStubStatisticheRepo() *stubStatisticheRepo {
	return &stubStatisticheRepo{snapshots: make(map[string]*model.StatisticaGiornaliera)}
}

func (r *stubStatisticheRepo) Upsert(_ context.Context, s *model.StatisticaGiornaliera) error {
	r.snapshots[s.Data] = s
	return nil
}

func (r *stubStatisticheRepo) UpsertTx(_ *gorm.DB, s *model.StatisticaGiornaliera) error {
	r.snapshots[s.Data] = s
	return nil
}

func (r *stubStatisticheRepo) FindByData(_ context.Context, data string) (*model.StatisticaGiornaliera, error) {
	s, ok := r.snapshots[data]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStatisticheRepo) Latest(_ context.Context, n int) ([]model.StatisticaGiornaliera, error) {
	out := make([]model.StatisticaGiornaliera, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		if len(out) == n {
			break
		}
		out = append(out, *s)
	}
	return out, nil
}

var _ repository.StatisticheRepository = (*stubStatisticheRepo)(nil)

type stubArchivioRepo struct{ lotti int64 }

func (r *stubArchivioRepo) CreateLottoTx(_ *gorm.DB, _ *model.LottoArchivio) error {
	r.lotti++
	return nil
}
func (r *stubArchivioRepo) CreateLogTx(_ *gorm.DB, _ []model.LogCambioStatoArchivio) error {
	return nil
}
func (r *stubArchivioRepo) CreatePrenotazioniTx(_ *gorm.DB, _ []model.PrenotazioneArchivio) error {
	return nil
}
func (r *stubArchivioRepo) CountLotti(_ context.Context) (int64, error) { return r.lotti, nil }

var _ repository.ArchivioRepository = (*stubArchivioRepo)(nil)

func TestCorrentiAggregaConteggiVivi(t *testing.T) {
	lotti := newStubLottoRepo()
	attori := newStubAttoreRepo()
	archivio := &stubArchivioRepo{lotti: 7}

	for _, s := range []stato.Stato{stato.Verde, stato.Verde, stato.Arancione, stato.Rosso} {
		require.NoError(t, lotti.Create(context.Background(), &model.Lotto{Stato: s}))
	}
	attori.ruoli[model.RuoloOperatore] = 4
	attori.ruoli[model.RuoloAmministratore] = 2

	svc := NewStatisticheService(newStubStatisticheRepo(), lotti, archivio, attori)

	resp, err := svc.Correnti(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.LottiVerdi)
	assert.Equal(t, int64(1), resp.LottiArancioni)
	assert.Equal(t, int64(1), resp.LottiRossi)
	assert.Equal(t, int64(7), resp.LottiArchiviati)
	assert.Equal(t, int64(4), resp.Operatori)
	assert.Equal(t, int64(2), resp.Amministratori)
}

func TestPerDataSnapshotAssente(t *testing.T) {
	svc := NewStatisticheService(newStubStatisticheRepo(), newStubLottoRepo(), &stubArchivioRepo{}, newStubAttoreRepo())

	_, err := svc.PerData(context.Background(), "2026-01-15")
	assert.ErrorIs(t, err, ErrNonTrovato)
}
