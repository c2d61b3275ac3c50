package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/model"
)

type PrenotazioneRepository interface {
	Create(ctx context.Context, p *model.Prenotazione) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prenotazione, error)
	List(ctx context.Context, filter dto.PrenotazioneFilter) ([]model.Prenotazione, error)
	Update(ctx context.Context, p *model.Prenotazione) error

	// CountAttiveByLotto counts reservations in an active state — the lot
	// deletion guard and the archival sweep both hinge on this.
	CountAttiveByLotto(ctx context.Context, lottoID uuid.UUID) (int64, error)
	ListAttiveByLotto(ctx context.Context, lottoID uuid.UUID) ([]model.Prenotazione, error)

	ListByLottoTx(tx *gorm.DB, lottoID uuid.UUID) ([]model.Prenotazione, error)
	DeleteByLottoTx(tx *gorm.DB, lottoID uuid.UUID) error

	CountByStato(ctx context.Context, s string) (int64, error)
}

type prenotazioneRepo struct{ db *gorm.DB }

func NewPrenotazioneRepository(db *gorm.DB) PrenotazioneRepository {
	return &prenotazioneRepo{db: db}
}

func (r *prenotazioneRepo) Create(ctx context.Context, p *model.Prenotazione) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prenotazioneRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prenotazione, error) {
	var p model.Prenotazione
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *prenotazioneRepo) List(ctx context.Context, filter dto.PrenotazioneFilter) ([]model.Prenotazione, error) {
	q := r.db.WithContext(ctx).Model(&model.Prenotazione{})
	if filter.LottoID != "" {
		q = q.Where("lotto_id = ?", filter.LottoID)
	}
	if filter.CentroID != "" {
		q = q.Where("centro_ricevente_id = ?", filter.CentroID)
	}
	if filter.Stato != "" {
		q = q.Where("LOWER(stato) = LOWER(?)", filter.Stato)
	}
	var prenotazioni []model.Prenotazione
	err := q.Order("creato_il DESC").Find(&prenotazioni).Error
	return prenotazioni, err
}

func (r *prenotazioneRepo) Update(ctx context.Context, p *model.Prenotazione) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *prenotazioneRepo) CountAttiveByLotto(ctx context.Context, lottoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Prenotazione{}).
		Where("lotto_id = ?", lottoID).
		Where("LOWER(stato) IN ('attiva', 'prenotato', 'intransito')").
		Count(&count).Error
	return count, err
}

func (r *prenotazioneRepo) ListAttiveByLotto(ctx context.Context, lottoID uuid.UUID) ([]model.Prenotazione, error) {
	var prenotazioni []model.Prenotazione
	err := r.db.WithContext(ctx).
		Where("lotto_id = ?", lottoID).
		Where("LOWER(stato) IN ('attiva', 'prenotato', 'intransito')").
		Find(&prenotazioni).Error
	return prenotazioni, err
}

func (r *prenotazioneRepo) ListByLottoTx(tx *gorm.DB, lottoID uuid.UUID) ([]model.Prenotazione, error) {
	var prenotazioni []model.Prenotazione
	err := tx.Where("lotto_id = ?", lottoID).Find(&prenotazioni).Error
	return prenotazioni, err
}

func (r *prenotazioneRepo) DeleteByLottoTx(tx *gorm.DB, lottoID uuid.UUID) error {
	return tx.Delete(&model.Prenotazione{}, "lotto_id = ?", lottoID).Error
}

func (r *prenotazioneRepo) CountByStato(ctx context.Context, s string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Prenotazione{}).
		Where("LOWER(stato) = LOWER(?)", s).Count(&count).Error
	return count, err
}
