package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles carried on the actor↔center association, not on the actor itself:
// the same account may be Operatore at one center and Amministratore at
// another.
const (
	RuoloOperatore      = "Operatore"
	RuoloAmministratore = "Amministratore"
)

// AttoreSistemaID is the reserved identity attributed to automatic status
// transitions performed by the scheduler. Seeded at startup so audit rows
// always have a valid actor to reference.
var AttoreSistemaID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type Attore struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Attivo       bool      `gorm:"not null;default:true"`
	CreatoIl     time.Time `gorm:"autoCreateTime"`
	AggiornatoIl time.Time `gorm:"autoUpdateTime"`
}

func (Attore) TableName() string { return "Attori" }

func (a *Attore) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AttoreCentro associates an actor with a center and carries the role the
// actor holds there. SuperAdmin is a per-association escalation flag.
type AttoreCentro struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AttoreID   uuid.UUID `gorm:"type:uuid;not null;index:idx_attore_centro,unique"`
	CentroID   uuid.UUID `gorm:"type:uuid;not null;index:idx_attore_centro,unique"`
	Ruolo      string    `gorm:"not null"` // Operatore | Amministratore
	SuperAdmin bool      `gorm:"not null;default:false"`
	CreatoIl   time.Time `gorm:"autoCreateTime"`

	Attore *Attore `gorm:"foreignKey:AttoreID"`
	Centro *Centro `gorm:"foreignKey:CentroID"`
}

func (AttoreCentro) TableName() string { return "AttoriCentri" }

func (ac *AttoreCentro) BeforeCreate(tx *gorm.DB) error {
	if ac.ID == uuid.Nil {
		ac.ID = uuid.New()
	}
	return nil
}
