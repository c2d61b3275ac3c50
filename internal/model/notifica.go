package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types.
const (
	NotificaLottoCreato  = "LOTTO_CREATO"
	NotificaCambioStato  = "CAMBIO_STATO"
	NotificaPrenotazione = "PRENOTAZIONE"
)

// Riferimento types for the polymorphic reference.
const (
	RiferimentoLotto        = "Lotto"
	RiferimentoPrenotazione = "Prenotazione"
)

// Notifica is an in-app notification row. Insertion is always best effort:
// a failed insert is logged and never aborts the transaction that caused it.
type Notifica struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	DestinatarioID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo            string    `gorm:"not null"`
	Titolo          string    `gorm:"not null"`
	Messaggio       string    `gorm:"type:text"`
	Letto           bool      `gorm:"not null;default:false;index"`
	RiferimentoID   *uuid.UUID `gorm:"type:uuid"`
	RiferimentoTipo string
	CreatoIl        time.Time `gorm:"autoCreateTime"`
}

func (Notifica) TableName() string { return "Notifiche" }

func (n *Notifica) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
