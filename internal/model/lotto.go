package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"refood/internal/stato"
)

// Lotto is a food lot tracked for redistribution before expiry.
// Stato must always equal what stato.Calcola returns for (DataScadenza,
// GiorniPermanenza, now), unless a manual update overrides it explicitly.
type Lotto struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Prodotto         string          `gorm:"not null;index"`
	Quantita         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitaMisura      string          `gorm:"not null;default:'kg'"`
	DataScadenza     time.Time       `gorm:"not null;index"`
	GiorniPermanenza int             `gorm:"not null;default:3"`
	CentroOrigineID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Stato            stato.Stato     `gorm:"not null;index"`
	InseritoDa       uuid.UUID       `gorm:"type:uuid;not null"`
	CreatoIl         time.Time       `gorm:"autoCreateTime"`
	AggiornatoIl     time.Time       `gorm:"autoUpdateTime"`

	CentroOrigine *Centro `gorm:"foreignKey:CentroOrigineID"`
}

func (Lotto) TableName() string { return "Lotti" }

func (l *Lotto) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
