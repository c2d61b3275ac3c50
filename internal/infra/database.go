package infra

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"refood/internal/model"
)

// NewDatabase opens the SQLite file through GORM, applies the pragmas the
// service relies on (foreign keys, writer patience) and migrates the schema.
// SQLite serializes writers; busy_timeout keeps overlapping scheduler and
// request transactions queued instead of failing with SQLITE_BUSY.
func NewDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&model.Centro{},
		&model.Attore{},
		&model.AttoreCentro{},
		&model.Lotto{},
		&model.LogCambioStato{},
		&model.Prenotazione{},
		&model.Notifica{},
		&model.LottoArchivio{},
		&model.LogCambioStatoArchivio{},
		&model.PrenotazioneArchivio{},
		&model.StatisticaGiornaliera{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := seedAttoreSistema(db); err != nil {
		return nil, fmt.Errorf("seed system actor: %w", err)
	}

	return db, nil
}

// seedAttoreSistema guarantees the reserved scheduler identity exists so
// automatic LogCambioStato rows always reference a valid actor. Idempotent.
func seedAttoreSistema(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Attore{}).
		Where("id = ?", model.AttoreSistemaID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&model.Attore{
		ID:           model.AttoreSistemaID,
		Nome:         "Sistema",
		Email:        "sistema@refood.local",
		PasswordHash: "!", // never a valid bcrypt hash — login impossible
		Attivo:       true,
	}).Error
}

// SchemaCapabilities records which optional tables exist. Resolved once at
// startup instead of probing sqlite_master on every request.
type SchemaCapabilities struct {
	HasCategorie bool
}

// ResolveCapabilities inspects sqlite_master for the optional category
// tables. Both must exist for the capability to count.
func ResolveCapabilities(db *gorm.DB) (SchemaCapabilities, error) {
	var caps SchemaCapabilities
	var count int64
	err := db.Raw(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN (?, ?)`,
		model.Categoria{}.TableName(), model.LottoCategoria{}.TableName(),
	).Scan(&count).Error
	if err != nil {
		return caps, err
	}
	caps.HasCategorie = count == 2
	return caps, nil
}
