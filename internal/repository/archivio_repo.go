package repository

import (
	"context"

	"gorm.io/gorm"

	"refood/internal/model"
)

// ArchivioRepository writes the archive mirrors. All writes are Tx variants:
// copy and delete must share the archival sweep's transaction.
type ArchivioRepository interface {
	CreateLottoTx(tx *gorm.DB, l *model.LottoArchivio) error
	CreateLogTx(tx *gorm.DB, logs []model.LogCambioStatoArchivio) error
	CreatePrenotazioniTx(tx *gorm.DB, prenotazioni []model.PrenotazioneArchivio) error

	CountLotti(ctx context.Context) (int64, error)
}

type archivioRepo struct{ db *gorm.DB }

func NewArchivioRepository(db *gorm.DB) ArchivioRepository { return &archivioRepo{db: db} }

func (r *archivioRepo) CreateLottoTx(tx *gorm.DB, l *model.LottoArchivio) error {
	return tx.Create(l).Error
}

func (r *archivioRepo) CreateLogTx(tx *gorm.DB, logs []model.LogCambioStatoArchivio) error {
	if len(logs) == 0 {
		return nil
	}
	return tx.Create(&logs).Error
}

func (r *archivioRepo) CreatePrenotazioniTx(tx *gorm.DB, prenotazioni []model.PrenotazioneArchivio) error {
	if len(prenotazioni) == 0 {
		return nil
	}
	return tx.Create(&prenotazioni).Error
}

func (r *archivioRepo) CountLotti(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LottoArchivio{}).Count(&count).Error
	return count, err
}
