package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"refood/internal/model"
)

type StatisticheRepository interface {
	// Upsert writes the day's snapshot; a same-day rerun replaces it, rows
	// for past days are never touched.
	Upsert(ctx context.Context, s *model.StatisticaGiornaliera) error
	UpsertTx(tx *gorm.DB, s *model.StatisticaGiornaliera) error
	FindByData(ctx context.Context, data string) (*model.StatisticaGiornaliera, error)
	Latest(ctx context.Context, n int) ([]model.StatisticaGiornaliera, error)
}

type statisticheRepo struct{ db *gorm.DB }

func NewStatisticheRepository(db *gorm.DB) StatisticheRepository {
	return &statisticheRepo{db: db}
}

func (r *statisticheRepo) Upsert(ctx context.Context, s *model.StatisticaGiornaliera) error {
	return r.UpsertTx(r.db.WithContext(ctx), s)
}

func (r *statisticheRepo) UpsertTx(tx *gorm.DB, s *model.StatisticaGiornaliera) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "data"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"lotti_verdi", "lotti_arancioni", "lotti_rossi",
			"prenotazioni_attive", "prenotazioni_consegnate", "prenotazioni_annullate",
			"operatori", "amministratori",
		}),
	}).Create(s).Error
}

func (r *statisticheRepo) FindByData(ctx context.Context, data string) (*model.StatisticaGiornaliera, error) {
	var s model.StatisticaGiornaliera
	err := r.db.WithContext(ctx).First(&s, "data = ?", data).Error
	return &s, err
}

func (r *statisticheRepo) Latest(ctx context.Context, n int) ([]model.StatisticaGiornaliera, error) {
	var stats []model.StatisticaGiornaliera
	err := r.db.WithContext(ctx).Order("data DESC").Limit(n).Find(&stats).Error
	return stats, err
}
