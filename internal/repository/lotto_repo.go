package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/stato"
)

// LottoRepository defines the data access contract for lots.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type LottoRepository interface {
	Create(ctx context.Context, l *model.Lotto) error
	CreateTx(tx *gorm.DB, l *model.Lotto) error
	SaveTx(tx *gorm.DB, l *model.Lotto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lotto, error)
	List(ctx context.Context, filter dto.LottoFilter) ([]model.Lotto, int64, error)
	Update(ctx context.Context, l *model.Lotto) error

	// ListDisponibili returns lots bookable by the given center: not its own,
	// not already reserved, ordered per center type (social = freshest first,
	// recycling = soonest-expiring first).
	ListDisponibili(ctx context.Context, centroID uuid.UUID, tipoCentro string, limit int) ([]model.Lotto, error)

	// Sweep queries — called inside the scheduler's transaction. Candidate
	// rows are filtered by stato.Calcola in Go so the sweep and the
	// controller can never disagree on a threshold.
	ListByStati(tx *gorm.DB, stati ...stato.Stato) ([]model.Lotto, error)
	AggiornaStatoTx(tx *gorm.DB, id uuid.UUID, nuovo stato.Stato) error

	// ListArchiviabili selects Rosso lots expired before cutoff with no
	// reservation still in an active state.
	ListArchiviabili(tx *gorm.DB, cutoff time.Time) ([]model.Lotto, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	CountByStato(ctx context.Context, s stato.Stato) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type lottoRepo struct{ db *gorm.DB }

func NewLottoRepository(db *gorm.DB) LottoRepository { return &lottoRepo{db: db} }

func (r *lottoRepo) Create(ctx context.Context, l *model.Lotto) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lottoRepo) CreateTx(tx *gorm.DB, l *model.Lotto) error {
	return tx.Create(l).Error
}

func (r *lottoRepo) SaveTx(tx *gorm.DB, l *model.Lotto) error {
	return tx.Save(l).Error
}

func (r *lottoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lotto, error) {
	var l model.Lotto
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *lottoRepo) List(ctx context.Context, filter dto.LottoFilter) ([]model.Lotto, int64, error) {
	var lotti []model.Lotto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Lotto{})
	if filter.Stato != "" {
		q = q.Where("stato = ?", filter.Stato)
	}
	if filter.CentroID != "" {
		q = q.Where("centro_origine_id = ?", filter.CentroID)
	}
	if filter.Prodotto != "" {
		q = q.Where("prodotto LIKE ?", "%"+filter.Prodotto+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("data_scadenza ASC").Limit(filter.Limit).Offset(offset).Find(&lotti).Error
	return lotti, total, err
}

func (r *lottoRepo) Update(ctx context.Context, l *model.Lotto) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// statiPrenotati are the reservation states that make a lot unavailable.
// LOWER() on both sides: historical rows carry mixed casing.
var statiPrenotati = []string{"prenotato", "intransito", "consegnato"}

func (r *lottoRepo) ListDisponibili(ctx context.Context, centroID uuid.UUID, tipoCentro string, limit int) ([]model.Lotto, error) {
	q := r.db.WithContext(ctx).Model(&model.Lotto{}).
		Where("centro_origine_id <> ?", centroID).
		Where("stato <> ?", stato.Rosso).
		Where(`NOT EXISTS (
			SELECT 1 FROM "Prenotazioni" p
			WHERE p.lotto_id = "Lotti".id AND LOWER(p.stato) IN ?
		)`, statiPrenotati)

	// Social centers feed people: freshest first. Recycling centers absorb
	// what is about to expire: soonest-expiring first.
	if tipoCentro == model.CentroRiciclaggio {
		q = q.Order("data_scadenza ASC")
	} else {
		q = q.Order("data_scadenza DESC")
	}

	var lotti []model.Lotto
	err := q.Limit(limit).Find(&lotti).Error
	return lotti, err
}

func (r *lottoRepo) ListByStati(tx *gorm.DB, stati ...stato.Stato) ([]model.Lotto, error) {
	var lotti []model.Lotto
	err := tx.Where("stato IN ?", stati).Find(&lotti).Error
	return lotti, err
}

func (r *lottoRepo) AggiornaStatoTx(tx *gorm.DB, id uuid.UUID, nuovo stato.Stato) error {
	return tx.Model(&model.Lotto{}).Where("id = ?", id).Update("stato", nuovo).Error
}

func (r *lottoRepo) ListArchiviabili(tx *gorm.DB, cutoff time.Time) ([]model.Lotto, error) {
	var lotti []model.Lotto
	err := tx.Where("stato = ?", stato.Rosso).
		Where("data_scadenza < ?", cutoff).
		Where(`NOT EXISTS (
			SELECT 1 FROM "Prenotazioni" p
			WHERE p.lotto_id = "Lotti".id AND LOWER(p.stato) IN ('attiva', 'prenotato', 'intransito')
		)`).
		Find(&lotti).Error
	return lotti, err
}

func (r *lottoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Lotto{}, "id = ?", id).Error
}

func (r *lottoRepo) CountByStato(ctx context.Context, s stato.Stato) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Lotto{}).Where("stato = ?", s).Count(&count).Error
	return count, err
}

func (r *lottoRepo) DB() *gorm.DB { return r.db }
