// Package scheduler owns the periodic lifecycle jobs: the hourly status
// sweep, the daily archival of long-expired lots, and the daily statistics
// snapshot. Each job runs in its own database transaction; a failure rolls
// that transaction back, is logged, and waits for the next scheduled tick —
// jobs never retry within a tick and never affect one another.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"refood/internal/infra"
	"refood/internal/model"
	"refood/internal/repository"
	"refood/internal/stato"
)

const (
	specSweepOrario     = "0 * * * *"
	specArchiviazione   = "0 0 * * *"
	specSnapshotStatist = "30 23 * * *"
)

// Scheduler is constructed once at process start and injected wherever a
// stop handle is needed. It deliberately holds its own cron instance instead
// of registering jobs in any package-level registry.
type Scheduler struct {
	db        *gorm.DB
	lotti     repository.LottoRepository
	logs      repository.LogCambioStatoRepository
	pren      repository.PrenotazioneRepository
	archivio  repository.ArchivioRepository
	attori    repository.AttoreRepository
	stats     repository.StatisticheRepository
	caps      infra.SchemaCapabilities
	retention time.Duration

	cron *cron.Cron
	now  func() time.Time
}

func New(
	db *gorm.DB,
	lotti repository.LottoRepository,
	logs repository.LogCambioStatoRepository,
	pren repository.PrenotazioneRepository,
	archivio repository.ArchivioRepository,
	attori repository.AttoreRepository,
	stats repository.StatisticheRepository,
	caps infra.SchemaCapabilities,
	retentionDays int,
) *Scheduler {
	return &Scheduler{
		db:        db,
		lotti:     lotti,
		logs:      logs,
		pren:      pren,
		archivio:  archivio,
		attori:    attori,
		stats:     stats,
		caps:      caps,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start registers the three jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		fn   func()
	}{
		{specSweepOrario, "sweep_stati", func() { s.SweepStati() }},
		{specArchiviazione, "archivia_scaduti", func() { s.ArchiviaScaduti() }},
		{specSnapshotStatist, "snapshot_statistiche", func() { s.SnapshotStatistiche() }},
	}
	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.spec, j.fn); err != nil {
			return err
		}
		log.Info().Str("job", j.name).Str("spec", j.spec).Msg("scheduler: job registrato")
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for any running job to finish, bounded
// by the caller's context.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		log.Warn().Msg("scheduler: stop interrotto dal contesto")
	}
}

// SweepStati re-derives the status of every non-Rosso lot with the same
// calculator used at creation and update and applies the downgrades
// (Verde→Arancione, Verde/Arancione→Rosso), writing one audit row per
// transition attributed to the system actor. It never upgrades a lot back
// to Verde. Running it twice with no time change performs no writes the
// second time.
func (s *Scheduler) SweepStati() {
	now := s.now()
	declassati, scaduti := 0, 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		lotti, err := s.lotti.ListByStati(tx, stato.Verde, stato.Arancione)
		if err != nil {
			return err
		}
		for i := range lotti {
			l := &lotti[i]
			nuovo := stato.Calcola(l.DataScadenza, l.GiorniPermanenza, now)
			// The sweep only downgrades: Verde→Arancione past the threshold,
			// {Verde,Arancione}→Rosso past expiry. A lot whose dates compute
			// Verde again (manual override, extended expiry) stands until an
			// operator changes it.
			if nuovo == l.Stato || nuovo == stato.Verde {
				continue
			}
			if err := s.lotti.AggiornaStatoTx(tx, l.ID, nuovo); err != nil {
				return err
			}
			if err := s.logs.CreateTx(tx, &model.LogCambioStato{
				LottoID:         l.ID,
				StatoPrecedente: l.Stato,
				StatoNuovo:      nuovo,
				AttoreID:        model.AttoreSistemaID,
			}); err != nil {
				return err
			}
			if nuovo == stato.Rosso {
				scaduti++
			} else {
				declassati++
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("scheduler: sweep stati fallito, rollback")
		return
	}

	if declassati > 0 || scaduti > 0 {
		log.Info().
			Int("arancioni", declassati).
			Int("rossi", scaduti).
			Msg("scheduler: sweep stati completato")
	}
}

// ArchiviaScaduti moves Rosso lots expired beyond the retention window into
// the archive tables and deletes the live rows, reservations and category
// links included. Lots still holding an active reservation are skipped.
func (s *Scheduler) ArchiviaScaduti() {
	now := s.now()
	cutoff := now.Add(-s.retention)
	archiviati := 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		lotti, err := s.lotti.ListArchiviabili(tx, cutoff)
		if err != nil {
			return err
		}
		for i := range lotti {
			if err := s.archiviaLotto(tx, &lotti[i], now); err != nil {
				return err
			}
			archiviati++
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("scheduler: archiviazione fallita, rollback")
		return
	}

	if archiviati > 0 {
		log.Info().Int("lotti", archiviati).Msg("scheduler: archiviazione completata")
	}
}

func (s *Scheduler) archiviaLotto(tx *gorm.DB, l *model.Lotto, now time.Time) error {
	if err := s.archivio.CreateLottoTx(tx, &model.LottoArchivio{
		ID:                l.ID,
		Prodotto:          l.Prodotto,
		Quantita:          l.Quantita,
		UnitaMisura:       l.UnitaMisura,
		DataScadenza:      l.DataScadenza,
		GiorniPermanenza:  l.GiorniPermanenza,
		CentroOrigineID:   l.CentroOrigineID,
		Stato:             l.Stato,
		InseritoDa:        l.InseritoDa,
		CreatoIl:          l.CreatoIl,
		DataArchiviazione: now,
	}); err != nil {
		return err
	}

	logs, err := s.logs.ListByLottoTx(tx, l.ID)
	if err != nil {
		return err
	}
	logArch := make([]model.LogCambioStatoArchivio, 0, len(logs))
	for _, entry := range logs {
		logArch = append(logArch, model.LogCambioStatoArchivio{
			ID:                entry.ID,
			LottoID:           entry.LottoID,
			StatoPrecedente:   entry.StatoPrecedente,
			StatoNuovo:        entry.StatoNuovo,
			AttoreID:          entry.AttoreID,
			Timestamp:         entry.Timestamp,
			DataArchiviazione: now,
		})
	}
	if err := s.archivio.CreateLogTx(tx, logArch); err != nil {
		return err
	}

	prenotazioni, err := s.pren.ListByLottoTx(tx, l.ID)
	if err != nil {
		return err
	}
	prenArch := make([]model.PrenotazioneArchivio, 0, len(prenotazioni))
	for _, p := range prenotazioni {
		prenArch = append(prenArch, model.PrenotazioneArchivio{
			ID:                p.ID,
			LottoID:           p.LottoID,
			CentroRicevente:   p.CentroRicevente,
			AttoreID:          p.AttoreID,
			Stato:             p.Stato,
			Note:              p.Note,
			CreatoIl:          p.CreatoIl,
			DataArchiviazione: now,
		})
	}
	if err := s.archivio.CreatePrenotazioniTx(tx, prenArch); err != nil {
		return err
	}

	if s.caps.HasCategorie {
		if err := tx.Delete(&model.LottoCategoria{}, "lotto_id = ?", l.ID).Error; err != nil {
			return err
		}
	}
	if err := s.pren.DeleteByLottoTx(tx, l.ID); err != nil {
		return err
	}
	if err := s.logs.DeleteByLottoTx(tx, l.ID); err != nil {
		return err
	}
	return s.lotti.DeleteTx(tx, l.ID)
}

// SnapshotStatistiche writes the day's rollup: lots by status, reservations
// by status, actors by role. Append-only across days; keyed by date.
func (s *Scheduler) SnapshotStatistiche() {
	now := s.now()
	snap := &model.StatisticaGiornaliera{Data: now.Format("2006-01-02")}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		contaLotti := func(st stato.Stato, dest *int64) error {
			return tx.Model(&model.Lotto{}).Where("stato = ?", st).Count(dest).Error
		}
		if err := contaLotti(stato.Verde, &snap.LottiVerdi); err != nil {
			return err
		}
		if err := contaLotti(stato.Arancione, &snap.LottiArancioni); err != nil {
			return err
		}
		if err := contaLotti(stato.Rosso, &snap.LottiRossi); err != nil {
			return err
		}

		if err := tx.Model(&model.Prenotazione{}).
			Where("LOWER(stato) IN ('attiva', 'prenotato', 'intransito')").
			Count(&snap.PrenotazioniAttive).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Prenotazione{}).
			Where("LOWER(stato) = 'consegnato'").
			Count(&snap.PrenotazioniConsegnate).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Prenotazione{}).
			Where("LOWER(stato) = 'annullato'").
			Count(&snap.PrenotazioniAnnullate).Error; err != nil {
			return err
		}

		contaRuolo := func(ruolo string, dest *int64) error {
			return tx.Model(&model.AttoreCentro{}).
				Where("ruolo = ?", ruolo).
				Distinct("attore_id").Count(dest).Error
		}
		if err := contaRuolo(model.RuoloOperatore, &snap.Operatori); err != nil {
			return err
		}
		if err := contaRuolo(model.RuoloAmministratore, &snap.Amministratori); err != nil {
			return err
		}

		return s.stats.UpsertTx(tx, snap)
	})
	if err != nil {
		log.Error().Err(err).Msg("scheduler: snapshot statistiche fallito, rollback")
		return
	}

	log.Info().Str("data", snap.Data).Msg("scheduler: snapshot statistiche scritto")
}
