package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/model"
)

type NotificaRepository interface {
	Create(ctx context.Context, n *model.Notifica) error
	ListByDestinatario(ctx context.Context, destinatarioID uuid.UUID, filter dto.NotificaFilter) ([]model.Notifica, error)
	MarkLetta(ctx context.Context, id, destinatarioID uuid.UUID) error
	MarkTutteLette(ctx context.Context, destinatarioID uuid.UUID) error
	CountNonLette(ctx context.Context, destinatarioID uuid.UUID) (int64, error)
}

type notificaRepo struct{ db *gorm.DB }

func NewNotificaRepository(db *gorm.DB) NotificaRepository {
	return &notificaRepo{db: db}
}

func (r *notificaRepo) Create(ctx context.Context, n *model.Notifica) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificaRepo) ListByDestinatario(ctx context.Context, destinatarioID uuid.UUID, filter dto.NotificaFilter) ([]model.Notifica, error) {
	q := r.db.WithContext(ctx).Where("destinatario_id = ?", destinatarioID)
	if filter.SoloNonLette {
		q = q.Where("letto = ?", false)
	}
	var notifiche []model.Notifica
	err := q.Order("creato_il DESC").Limit(filter.Limit).Find(&notifiche).Error
	return notifiche, err
}

func (r *notificaRepo) MarkLetta(ctx context.Context, id, destinatarioID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Notifica{}).
		Where("id = ? AND destinatario_id = ?", id, destinatarioID).
		Update("letto", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificaRepo) MarkTutteLette(ctx context.Context, destinatarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notifica{}).
		Where("destinatario_id = ? AND letto = ?", destinatarioID, false).
		Update("letto", true).Error
}

func (r *notificaRepo) CountNonLette(ctx context.Context, destinatarioID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notifica{}).
		Where("destinatario_id = ? AND letto = ?", destinatarioID, false).
		Count(&count).Error
	return count, err
}
