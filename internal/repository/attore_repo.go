package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/model"
)

type AttoreRepository interface {
	Create(ctx context.Context, a *model.Attore) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attore, error)
	FindByEmail(ctx context.Context, email string) (*model.Attore, error)

	Associa(ctx context.Context, ac *model.AttoreCentro) error
	CentriDiAttore(ctx context.Context, attoreID uuid.UUID) ([]uuid.UUID, error)

	// CentroSenzaAssociazioni reports the "unclaimed center" fallback: a
	// center with zero associations is actionable by any administrator.
	CentroSenzaAssociazioni(ctx context.Context, centroID uuid.UUID) (bool, error)
	HaRuoloSuCentro(ctx context.Context, attoreID, centroID uuid.UUID, ruoli ...string) (bool, error)

	// Fan-out targets.
	ListByCentroERuoli(ctx context.Context, centroID uuid.UUID, ruoli ...string) ([]uuid.UUID, error)
	ListByTipiCentro(ctx context.Context, tipi ...string) ([]uuid.UUID, error)

	CountByRuolo(ctx context.Context, ruolo string) (int64, error)
}

type attoreRepo struct{ db *gorm.DB }

func NewAttoreRepository(db *gorm.DB) AttoreRepository { return &attoreRepo{db: db} }

func (r *attoreRepo) Create(ctx context.Context, a *model.Attore) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Attore, error) {
	var a model.Attore
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *attoreRepo) FindByEmail(ctx context.Context, email string) (*model.Attore, error) {
	var a model.Attore
	err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error
	return &a, err
}

func (r *attoreRepo) Associa(ctx context.Context, ac *model.AttoreCentro) error {
	return r.db.WithContext(ctx).Create(ac).Error
}

func (r *attoreRepo) CentriDiAttore(ctx context.Context, attoreID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.AttoreCentro{}).
		Where("attore_id = ?", attoreID).
		Pluck("centro_id", &ids).Error
	return ids, err
}

func (r *attoreRepo) CentroSenzaAssociazioni(ctx context.Context, centroID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AttoreCentro{}).
		Where("centro_id = ?", centroID).Count(&count).Error
	return count == 0, err
}

func (r *attoreRepo) HaRuoloSuCentro(ctx context.Context, attoreID, centroID uuid.UUID, ruoli ...string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.AttoreCentro{}).
		Where("attore_id = ? AND centro_id = ?", attoreID, centroID)
	if len(ruoli) > 0 {
		q = q.Where("ruolo IN ?", ruoli)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *attoreRepo) ListByCentroERuoli(ctx context.Context, centroID uuid.UUID, ruoli ...string) ([]uuid.UUID, error) {
	q := r.db.WithContext(ctx).Model(&model.AttoreCentro{}).
		Where("centro_id = ?", centroID)
	if len(ruoli) > 0 {
		q = q.Where("ruolo IN ?", ruoli)
	}
	var ids []uuid.UUID
	err := q.Distinct().Pluck("attore_id", &ids).Error
	return ids, err
}

func (r *attoreRepo) ListByTipiCentro(ctx context.Context, tipi ...string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.AttoreCentro{}).
		Joins(`JOIN "Centri" c ON c.id = "AttoriCentri".centro_id`).
		Where("c.tipo IN ?", tipi).
		Distinct().Pluck("attore_id", &ids).Error
	return ids, err
}

func (r *attoreRepo) CountByRuolo(ctx context.Context, ruolo string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AttoreCentro{}).
		Where("ruolo = ?", ruolo).
		Distinct("attore_id").Count(&count).Error
	return count, err
}
