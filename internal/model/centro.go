package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Center types. Social and recycling centers are the beneficiary channels
// that receive lots; donor centers originate them.
const (
	CentroDonatore    = "Donatore"
	CentroSociale     = "CentroSociale"
	CentroRiciclaggio = "CentroRiciclaggio"
)

type Centro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Tipo      string    `gorm:"not null;index"` // Donatore | CentroSociale | CentroRiciclaggio
	Indirizzo string
	Telefono  string
	CreatoIl  time.Time `gorm:"autoCreateTime"`
}

func (Centro) TableName() string { return "Centri" }

func (c *Centro) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
