package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/repository"
	"refood/internal/stato"
)

// RedisCanaleNotifiche is the pub/sub channel used to hint connected
// listeners that new notification rows exist. The rows in SQLite are the
// source of truth; the publish is purely advisory.
const RedisCanaleNotifiche = "refood:notifiche"

// NotificaService owns both the read API for recipients and the fan-out
// writes triggered by lot lifecycle events. Fan-out methods return
// (inserted, err) and never abort their caller: the caller logs and moves
// on — that is the documented best-effort policy.
type NotificaService interface {
	List(ctx context.Context, destinatarioID uuid.UUID, filter dto.NotificaFilter) (*dto.NotificaListResponse, error)
	MarkLetta(ctx context.Context, id, destinatarioID uuid.UUID) error
	MarkTutteLette(ctx context.Context, destinatarioID uuid.UUID) error

	FanOutCreazione(ctx context.Context, lotto *model.Lotto) (int, error)
	FanOutCambioStato(ctx context.Context, lotto *model.Lotto, precedente, nuovo stato.Stato) (int, error)
	FanOutPrenotazione(ctx context.Context, p *model.Prenotazione, lotto *model.Lotto) (int, error)
}

type notificaService struct {
	repo       repository.NotificaRepository
	attoreRepo repository.AttoreRepository
	prenRepo   repository.PrenotazioneRepository
	rdb        *redis.Client // nil when realtime hints are disabled
}

func NewNotificaService(
	repo repository.NotificaRepository,
	attoreRepo repository.AttoreRepository,
	prenRepo repository.PrenotazioneRepository,
	rdb *redis.Client,
) NotificaService {
	return &notificaService{repo: repo, attoreRepo: attoreRepo, prenRepo: prenRepo, rdb: rdb}
}

func (s *notificaService) List(ctx context.Context, destinatarioID uuid.UUID, filter dto.NotificaFilter) (*dto.NotificaListResponse, error) {
	notifiche, err := s.repo.ListByDestinatario(ctx, destinatarioID, filter)
	if err != nil {
		return nil, err
	}
	nonLette, err := s.repo.CountNonLette(ctx, destinatarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificaResponse, 0, len(notifiche))
	for _, n := range notifiche {
		resp := dto.NotificaResponse{
			ID:              n.ID.String(),
			Tipo:            n.Tipo,
			Titolo:          n.Titolo,
			Messaggio:       n.Messaggio,
			Letto:           n.Letto,
			RiferimentoTipo: n.RiferimentoTipo,
			CreatoIl:        n.CreatoIl,
		}
		if n.RiferimentoID != nil {
			rid := n.RiferimentoID.String()
			resp.RiferimentoID = &rid
		}
		out = append(out, resp)
	}
	return &dto.NotificaListResponse{Notifiche: out, NonLette: nonLette}, nil
}

func (s *notificaService) MarkLetta(ctx context.Context, id, destinatarioID uuid.UUID) error {
	return s.repo.MarkLetta(ctx, id, destinatarioID)
}

func (s *notificaService) MarkTutteLette(ctx context.Context, destinatarioID uuid.UUID) error {
	return s.repo.MarkTutteLette(ctx, destinatarioID)
}

// FanOutCreazione notifies the origin center's administrators and the actors
// of beneficiary center types (social and recycling channels).
func (s *notificaService) FanOutCreazione(ctx context.Context, lotto *model.Lotto) (int, error) {
	destinatari := make(map[uuid.UUID]struct{})

	admins, err := s.attoreRepo.ListByCentroERuoli(ctx, lotto.CentroOrigineID, model.RuoloAmministratore)
	if err != nil {
		return 0, err
	}
	for _, id := range admins {
		destinatari[id] = struct{}{}
	}

	beneficiari, err := s.attoreRepo.ListByTipiCentro(ctx, model.CentroSociale, model.CentroRiciclaggio)
	if err != nil {
		return 0, err
	}
	for _, id := range beneficiari {
		destinatari[id] = struct{}{}
	}

	titolo := "Nuovo lotto disponibile"
	messaggio := fmt.Sprintf("%s (%s %s), scadenza %s",
		lotto.Prodotto, lotto.Quantita.String(), lotto.UnitaMisura,
		lotto.DataScadenza.Format(dto.DateLayout))
	return s.insertAll(ctx, destinatari, model.NotificaLottoCreato, titolo, messaggio,
		lotto.ID, model.RiferimentoLotto)
}

// FanOutCambioStato notifies the origin center's operators and
// administrators plus every actor holding an active reservation on the lot.
func (s *notificaService) FanOutCambioStato(ctx context.Context, lotto *model.Lotto, precedente, nuovo stato.Stato) (int, error) {
	destinatari := make(map[uuid.UUID]struct{})

	staff, err := s.attoreRepo.ListByCentroERuoli(ctx, lotto.CentroOrigineID,
		model.RuoloOperatore, model.RuoloAmministratore)
	if err != nil {
		return 0, err
	}
	for _, id := range staff {
		destinatari[id] = struct{}{}
	}

	attive, err := s.prenRepo.ListAttiveByLotto(ctx, lotto.ID)
	if err != nil {
		return 0, err
	}
	for _, p := range attive {
		destinatari[p.AttoreID] = struct{}{}
	}

	titolo := fmt.Sprintf("Lotto %s: %s → %s", lotto.Prodotto, precedente, nuovo)
	messaggio := fmt.Sprintf("Il lotto %s è passato da %s a %s", lotto.Prodotto, precedente, nuovo)
	return s.insertAll(ctx, destinatari, model.NotificaCambioStato, titolo, messaggio,
		lotto.ID, model.RiferimentoLotto)
}

// FanOutPrenotazione notifies the origin center's staff that one of their
// lots has been reserved.
func (s *notificaService) FanOutPrenotazione(ctx context.Context, p *model.Prenotazione, lotto *model.Lotto) (int, error) {
	destinatari := make(map[uuid.UUID]struct{})

	staff, err := s.attoreRepo.ListByCentroERuoli(ctx, lotto.CentroOrigineID,
		model.RuoloOperatore, model.RuoloAmministratore)
	if err != nil {
		return 0, err
	}
	for _, id := range staff {
		destinatari[id] = struct{}{}
	}

	titolo := fmt.Sprintf("Lotto %s prenotato", lotto.Prodotto)
	messaggio := fmt.Sprintf("Il lotto %s è stato prenotato da un altro centro", lotto.Prodotto)
	return s.insertAll(ctx, destinatari, model.NotificaPrenotazione, titolo, messaggio,
		p.ID, model.RiferimentoPrenotazione)
}

// insertAll writes one row per recipient. Partial failure is tolerated: it
// keeps inserting and reports the count alongside the last error.
func (s *notificaService) insertAll(ctx context.Context, destinatari map[uuid.UUID]struct{}, tipo, titolo, messaggio string, rifID uuid.UUID, rifTipo string) (int, error) {
	inserted := 0
	var lastErr error
	for id := range destinatari {
		rid := rifID
		n := &model.Notifica{
			DestinatarioID:  id,
			Tipo:            tipo,
			Titolo:          titolo,
			Messaggio:       messaggio,
			RiferimentoID:   &rid,
			RiferimentoTipo: rifTipo,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			lastErr = err
			continue
		}
		inserted++
	}

	s.publishHint(ctx, tipo, rifID, inserted)
	return inserted, lastErr
}

// publishHint tells connected listeners to refresh. Failures are logged at
// debug level and otherwise ignored.
func (s *notificaService) publishHint(ctx context.Context, tipo string, rifID uuid.UUID, count int) {
	if s.rdb == nil || count == 0 {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"tipo":           tipo,
		"riferimento_id": rifID.String(),
		"count":          count,
	})
	if err := s.rdb.Publish(ctx, RedisCanaleNotifiche, payload).Err(); err != nil {
		log.Debug().Err(err).Msg("notifiche: publish redis fallito")
	}
}
