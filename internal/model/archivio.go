package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"refood/internal/stato"
)

// Archive mirrors. The daily sweep copies long-expired lots (and their audit
// rows and reservations) here with a DataArchiviazione stamp, then deletes
// the live rows — copy-then-delete, not a soft delete. Archived rows keep
// their original primary keys so history stays joinable.

type LottoArchivio struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Prodotto          string          `gorm:"not null"`
	Quantita          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitaMisura       string          `gorm:"not null"`
	DataScadenza      time.Time       `gorm:"not null"`
	GiorniPermanenza  int             `gorm:"not null"`
	CentroOrigineID   uuid.UUID       `gorm:"type:uuid;not null"`
	Stato             stato.Stato     `gorm:"not null"`
	InseritoDa        uuid.UUID       `gorm:"type:uuid;not null"`
	CreatoIl          time.Time
	DataArchiviazione time.Time `gorm:"not null;index"`
}

func (LottoArchivio) TableName() string { return "LottiArchivio" }

type LogCambioStatoArchivio struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	LottoID           uuid.UUID   `gorm:"type:uuid;not null;index"`
	StatoPrecedente   stato.Stato `gorm:"not null"`
	StatoNuovo        stato.Stato `gorm:"not null"`
	AttoreID          uuid.UUID   `gorm:"type:uuid;not null"`
	Timestamp         time.Time
	DataArchiviazione time.Time `gorm:"not null"`
}

func (LogCambioStatoArchivio) TableName() string { return "LogCambioStatoArchivio" }

type PrenotazioneArchivio struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	LottoID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CentroRicevente   uuid.UUID `gorm:"type:uuid;not null;column:centro_ricevente_id"`
	AttoreID          uuid.UUID `gorm:"type:uuid;not null"`
	Stato             string    `gorm:"not null"`
	Note              string
	CreatoIl          time.Time
	DataArchiviazione time.Time `gorm:"not null"`
}

func (PrenotazioneArchivio) TableName() string { return "PrenotazioniArchivio" }
