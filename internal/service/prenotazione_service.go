package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/repository"
)

type PrenotazioneService interface {
	Crea(ctx context.Context, attoreID uuid.UUID, req dto.CreaPrenotazioneRequest) (*dto.PrenotazioneResponse, error)
	List(ctx context.Context, filter dto.PrenotazioneFilter) ([]dto.PrenotazioneResponse, error)
	CambiaStato(ctx context.Context, attoreID, id uuid.UUID, nuovo string) (*dto.PrenotazioneResponse, error)
}

type prenotazioneService struct {
	repo       repository.PrenotazioneRepository
	lottoRepo  repository.LottoRepository
	centroRepo repository.CentroRepository
	notifiche  NotificaService
}

func NewPrenotazioneService(
	repo repository.PrenotazioneRepository,
	lottoRepo repository.LottoRepository,
	centroRepo repository.CentroRepository,
	notifiche NotificaService,
) PrenotazioneService {
	return &prenotazioneService{repo: repo, lottoRepo: lottoRepo, centroRepo: centroRepo, notifiche: notifiche}
}

func (s *prenotazioneService) Crea(ctx context.Context, attoreID uuid.UUID, req dto.CreaPrenotazioneRequest) (*dto.PrenotazioneResponse, error) {
	lottoID, err := uuid.Parse(req.LottoID)
	if err != nil {
		return nil, fmt.Errorf("lotto_id non valido: %w", err)
	}
	centroID, err := uuid.Parse(req.CentroRiceventeID)
	if err != nil {
		return nil, fmt.Errorf("centro_ricevente_id non valido: %w", err)
	}

	lotto, err := s.lottoRepo.FindByID(ctx, lottoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lotto", ErrNonTrovato)
		}
		return nil, err
	}
	centro, err := s.centroRepo.FindByID(ctx, centroID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: centro ricevente", ErrNonTrovato)
		}
		return nil, err
	}
	if centro.ID == lotto.CentroOrigineID {
		return nil, fmt.Errorf("%w: un centro non può prenotare i propri lotti", ErrConflitto)
	}

	// One active reservation per lot: the pickup chain is exclusive.
	attive, err := s.repo.CountAttiveByLotto(ctx, lottoID)
	if err != nil {
		return nil, err
	}
	if attive > 0 {
		return nil, fmt.Errorf("%w: il lotto è già prenotato", ErrConflitto)
	}

	p := &model.Prenotazione{
		LottoID:         lottoID,
		CentroRicevente: centroID,
		AttoreID:        attoreID,
		Stato:           model.PrenotazioneAttiva,
		Note:            req.Note,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("prenotazione_id", p.ID.String()).
		Str("lotto_id", lottoID.String()).
		Str("centro_ricevente_id", centroID.String()).
		Msg("prenotazioni: creata")

	// Best effort: the origin center learns its lot is spoken for.
	if n, err := s.notifiche.FanOutPrenotazione(ctx, p, lotto); err != nil {
		log.Warn().Err(err).Int("inserite", n).
			Str("prenotazione_id", p.ID.String()).
			Msg("prenotazioni: fan-out incompleto")
	}

	return prenotazioneToResponse(p), nil
}

func (s *prenotazioneService) List(ctx context.Context, filter dto.PrenotazioneFilter) ([]dto.PrenotazioneResponse, error) {
	prenotazioni, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrenotazioneResponse, 0, len(prenotazioni))
	for i := range prenotazioni {
		out = append(out, *prenotazioneToResponse(&prenotazioni[i]))
	}
	return out, nil
}

// transizioniPrenotazione enumerates the allowed state changes. Terminal
// states (Consegnato, Annullato) have no outgoing edges.
var transizioniPrenotazione = map[string][]string{
	model.PrenotazioneAttiva:     {model.PrenotazionePrenotato, model.PrenotazioneAnnullato},
	model.PrenotazionePrenotato:  {model.PrenotazioneInTransito, model.PrenotazioneAnnullato},
	model.PrenotazioneInTransito: {model.PrenotazioneConsegnato, model.PrenotazioneAnnullato},
}

func (s *prenotazioneService) CambiaStato(ctx context.Context, attoreID, id uuid.UUID, nuovo string) (*dto.PrenotazioneResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNonTrovato
		}
		return nil, err
	}

	consentiti := transizioniPrenotazione[p.Stato]
	valido := false
	for _, t := range consentiti {
		if t == nuovo {
			valido = true
			break
		}
	}
	if !valido {
		return nil, fmt.Errorf("%w: transizione %s → %s non consentita", ErrConflitto, p.Stato, nuovo)
	}

	precedente := p.Stato
	p.Stato = nuovo
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("prenotazione_id", p.ID.String()).
		Str("da", precedente).
		Str("a", nuovo).
		Bool("attiva", model.PrenotazioneStatoAttivo(nuovo)).
		Str("attore_id", attoreID.String()).
		Msg("prenotazioni: cambio stato")

	return prenotazioneToResponse(p), nil
}

func prenotazioneToResponse(p *model.Prenotazione) *dto.PrenotazioneResponse {
	return &dto.PrenotazioneResponse{
		ID:                p.ID.String(),
		LottoID:           p.LottoID.String(),
		CentroRiceventeID: p.CentroRicevente.String(),
		AttoreID:          p.AttoreID.String(),
		Stato:             p.Stato,
		Note:              p.Note,
		CreatoIl:          p.CreatoIl,
		AggiornatoIl:      p.AggiornatoIl,
	}
}
