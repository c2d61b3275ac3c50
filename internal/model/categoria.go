package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categorie and the LottiCategorie link table are optional: older
// deployments never ran the migration that adds them. Their presence is
// resolved once at startup (infra.SchemaCapabilities) and services skip
// category work entirely when the tables are absent.

type Categoria struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome     string    `gorm:"uniqueIndex;not null"`
	CreatoIl time.Time `gorm:"autoCreateTime"`
}

func (Categoria) TableName() string { return "Categorie" }

func (c *Categoria) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type LottoCategoria struct {
	LottoID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoriaID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Lotto     *Lotto     `gorm:"foreignKey:LottoID;constraint:OnDelete:CASCADE"`
	Categoria *Categoria `gorm:"foreignKey:CategoriaID;constraint:OnDelete:CASCADE"`
}

func (LottoCategoria) TableName() string { return "LottiCategorie" }
