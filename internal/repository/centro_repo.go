package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/model"
)

type CentroRepository interface {
	Create(ctx context.Context, c *model.Centro) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Centro, error)
	FindByNome(ctx context.Context, nome string) (*model.Centro, error)
	List(ctx context.Context, tipo string) ([]model.Centro, error)
	ListByTipi(ctx context.Context, tipi ...string) ([]model.Centro, error)
}

type centroRepo struct{ db *gorm.DB }

func NewCentroRepository(db *gorm.DB) CentroRepository { return &centroRepo{db: db} }

func (r *centroRepo) Create(ctx context.Context, c *model.Centro) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *centroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Centro, error) {
	var c model.Centro
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *centroRepo) FindByNome(ctx context.Context, nome string) (*model.Centro, error) {
	var c model.Centro
	err := r.db.WithContext(ctx).First(&c, "nome = ?", nome).Error
	return &c, err
}

func (r *centroRepo) List(ctx context.Context, tipo string) ([]model.Centro, error) {
	q := r.db.WithContext(ctx).Model(&model.Centro{})
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	var centri []model.Centro
	err := q.Order("nome ASC").Find(&centri).Error
	return centri, err
}

func (r *centroRepo) ListByTipi(ctx context.Context, tipi ...string) ([]model.Centro, error) {
	var centri []model.Centro
	err := r.db.WithContext(ctx).Where("tipo IN ?", tipi).Find(&centri).Error
	return centri, err
}
