package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/stato"
)

// LogCambioStato is the append-only status transition audit: one row per
// transition, attributed to the acting user or to AttoreSistemaID when the
// scheduler performed it. Rows are never updated or deleted while the lot
// is live; archival moves them wholesale.
type LogCambioStato struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	LottoID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	StatoPrecedente stato.Stato `gorm:"not null"`
	StatoNuovo      stato.Stato `gorm:"not null"`
	AttoreID        uuid.UUID   `gorm:"type:uuid;not null"`
	Timestamp       time.Time   `gorm:"autoCreateTime"`

	Lotto *Lotto `gorm:"foreignKey:LottoID;constraint:OnDelete:CASCADE"`
}

func (LogCambioStato) TableName() string { return "LogCambioStato" }

func (l *LogCambioStato) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
