package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatisticaGiornaliera is the append-only daily rollup written at 23:30.
// One row per calendar date; never recomputed retroactively. A re-run on the
// same date overwrites that day's row (last write wins within the day).
type StatisticaGiornaliera struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Data string    `gorm:"uniqueIndex;not null"` // YYYY-MM-DD

	LottiVerdi     int64 `gorm:"not null;default:0"`
	LottiArancioni int64 `gorm:"not null;default:0"`
	LottiRossi     int64 `gorm:"not null;default:0"`

	PrenotazioniAttive     int64 `gorm:"not null;default:0"`
	PrenotazioniConsegnate int64 `gorm:"not null;default:0"`
	PrenotazioniAnnullate  int64 `gorm:"not null;default:0"`

	Operatori      int64 `gorm:"not null;default:0"`
	Amministratori int64 `gorm:"not null;default:0"`

	CreatoIl time.Time `gorm:"autoCreateTime"`
}

func (StatisticaGiornaliera) TableName() string { return "StatisticheGiornaliere" }

func (s *StatisticaGiornaliera) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
