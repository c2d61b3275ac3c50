package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/model"
)

type LogCambioStatoRepository interface {
	// CreateTx appends an audit row inside the caller's transaction — the
	// transition and its audit trail must commit or roll back together.
	CreateTx(tx *gorm.DB, l *model.LogCambioStato) error
	ListByLotto(ctx context.Context, lottoID uuid.UUID) ([]model.LogCambioStato, error)
	ListByLottoTx(tx *gorm.DB, lottoID uuid.UUID) ([]model.LogCambioStato, error)
	DeleteByLottoTx(tx *gorm.DB, lottoID uuid.UUID) error
}

type logRepo struct{ db *gorm.DB }

func NewLogCambioStatoRepository(db *gorm.DB) LogCambioStatoRepository {
	return &logRepo{db: db}
}

func (r *logRepo) CreateTx(tx *gorm.DB, l *model.LogCambioStato) error {
	return tx.Create(l).Error
}

func (r *logRepo) ListByLotto(ctx context.Context, lottoID uuid.UUID) ([]model.LogCambioStato, error) {
	return r.ListByLottoTx(r.db.WithContext(ctx), lottoID)
}

func (r *logRepo) ListByLottoTx(tx *gorm.DB, lottoID uuid.UUID) ([]model.LogCambioStato, error) {
	var logs []model.LogCambioStato
	err := tx.Where("lotto_id = ?", lottoID).Order("timestamp ASC").Find(&logs).Error
	return logs, err
}

func (r *logRepo) DeleteByLottoTx(tx *gorm.DB, lottoID uuid.UUID) error {
	return tx.Delete(&model.LogCambioStato{}, "lotto_id = ?", lottoID).Error
}
