package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation lifecycle. Attiva/Prenotato/InTransito count as "active":
// they block lot deletion and archival, and hide the lot from availability
// queries once the pickup chain has started.
const (
	PrenotazioneAttiva     = "Attiva"
	PrenotazionePrenotato  = "Prenotato"
	PrenotazioneInTransito = "InTransito"
	PrenotazioneConsegnato = "Consegnato"
	PrenotazioneAnnullato  = "Annullato"
)

// PrenotazioneStatoAttivo matches case-insensitively: historical rows carry
// mixed casing.
func PrenotazioneStatoAttivo(s string) bool {
	switch strings.ToLower(s) {
	case "attiva", "prenotato", "intransito":
		return true
	}
	return false
}

type Prenotazione struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	LottoID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CentroRicevente uuid.UUID `gorm:"type:uuid;not null;index;column:centro_ricevente_id"`
	AttoreID        uuid.UUID `gorm:"type:uuid;not null"`
	Stato           string    `gorm:"not null;index"`
	Note            string
	CreatoIl        time.Time `gorm:"autoCreateTime"`
	AggiornatoIl    time.Time `gorm:"autoUpdateTime"`

	Lotto  *Lotto  `gorm:"foreignKey:LottoID;constraint:OnDelete:CASCADE"`
	Centro *Centro `gorm:"foreignKey:CentroRicevente"`
}

func (Prenotazione) TableName() string { return "Prenotazioni" }

func (p *Prenotazione) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
