package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/infra"
	"refood/internal/model"
	"refood/internal/repository"
	"refood/internal/stato"
)

type LottoService interface {
	Crea(ctx context.Context, attoreID uuid.UUID, req dto.CreaLottoRequest) (*dto.LottoResponse, error)
	Ottieni(ctx context.Context, id uuid.UUID) (*dto.LottoResponse, error)
	List(ctx context.Context, filter dto.LottoFilter) (*dto.LottoListResponse, error)
	Disponibili(ctx context.Context, filter dto.DisponibiliFilter) ([]dto.LottoResponse, error)
	Aggiorna(ctx context.Context, attoreID, id uuid.UUID, req dto.AggiornaLottoRequest) (*dto.LottoResponse, error)
	Elimina(ctx context.Context, attoreID, id uuid.UUID) error
	Storico(ctx context.Context, id uuid.UUID) ([]dto.LogCambioStatoResponse, error)
}

type lottoService struct {
	repo          repository.LottoRepository
	centroRepo    repository.CentroRepository
	attoreRepo    repository.AttoreRepository
	prenRepo      repository.PrenotazioneRepository
	logRepo       repository.LogCambioStatoRepository
	categoriaRepo repository.CategoriaRepository
	notifiche     NotificaService
	caps          infra.SchemaCapabilities
	ora           func() time.Time
}

func NewLottoService(
	repo repository.LottoRepository,
	centroRepo repository.CentroRepository,
	attoreRepo repository.AttoreRepository,
	prenRepo repository.PrenotazioneRepository,
	logRepo repository.LogCambioStatoRepository,
	categoriaRepo repository.CategoriaRepository,
	notifiche NotificaService,
	caps infra.SchemaCapabilities,
) LottoService {
	return &lottoService{
		repo:          repo,
		centroRepo:    centroRepo,
		attoreRepo:    attoreRepo,
		prenRepo:      prenRepo,
		logRepo:       logRepo,
		categoriaRepo: categoriaRepo,
		notifiche:     notifiche,
		caps:          caps,
		ora:           time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// verificaAccessoCentro enforces the visibility rule: an actor may operate
// on a center they are associated with, or on a center nobody is associated
// with at all (the unclaimed-center fallback).
func (s *lottoService) verificaAccessoCentro(ctx context.Context, attoreID, centroID uuid.UUID) error {
	ok, err := s.attoreRepo.HaRuoloSuCentro(ctx, attoreID, centroID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	libero, err := s.attoreRepo.CentroSenzaAssociazioni(ctx, centroID)
	if err != nil {
		return err
	}
	if libero {
		return nil
	}
	return ErrNonAutorizzato
}

func (s *lottoService) Crea(ctx context.Context, attoreID uuid.UUID, req dto.CreaLottoRequest) (*dto.LottoResponse, error) {
	centroID, err := uuid.Parse(req.CentroOrigineID)
	if err != nil {
		return nil, fmt.Errorf("centro_origine_id non valido: %w", err)
	}
	scadenza, err := time.Parse(dto.DateLayout, req.DataScadenza)
	if err != nil {
		return nil, fmt.Errorf("data_scadenza non valida: %w", err)
	}

	// Pre-flight outside the transaction: the referenced center must exist
	// and the actor must be allowed to act on it.
	if _, err := s.centroRepo.FindByID(ctx, centroID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: centro di origine", ErrNonTrovato)
		}
		return nil, err
	}
	if err := s.verificaAccessoCentro(ctx, attoreID, centroID); err != nil {
		return nil, err
	}

	unita := req.UnitaMisura
	if unita == "" {
		unita = "kg"
	}

	now := s.ora()
	lotto := &model.Lotto{
		Prodotto:         req.Prodotto,
		Quantita:         req.Quantita,
		UnitaMisura:      unita,
		DataScadenza:     scadenza,
		GiorniPermanenza: req.GiorniPermanenza,
		CentroOrigineID:  centroID,
		Stato:            stato.Calcola(scadenza, req.GiorniPermanenza, now),
		InseritoDa:       attoreID,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, lotto); err != nil {
			return err
		}
		if err := s.logRepo.CreateTx(tx, &model.LogCambioStato{
			LottoID:         lotto.ID,
			StatoPrecedente: stato.Nuovo,
			StatoNuovo:      lotto.Stato,
			AttoreID:        attoreID,
		}); err != nil {
			return err
		}
		if s.caps.HasCategorie && len(req.Categorie) > 0 {
			categorie, err := s.categoriaRepo.EnsureTx(tx, req.Categorie)
			if err != nil {
				return err
			}
			return s.categoriaRepo.ReplaceAssociazioniTx(tx, lotto, categorie)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort, outside the committed transaction: a failed fan-out never
	// undoes the lot.
	if n, err := s.notifiche.FanOutCreazione(ctx, lotto); err != nil {
		log.Warn().Err(err).Int("inserite", n).
			Str("lotto_id", lotto.ID.String()).
			Msg("lotti: fan-out creazione incompleto")
	}

	return lottoToResponse(lotto), nil
}

func (s *lottoService) Ottieni(ctx context.Context, id uuid.UUID) (*dto.LottoResponse, error) {
	lotto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNonTrovato
		}
		return nil, err
	}
	return lottoToResponse(lotto), nil
}

func (s *lottoService) List(ctx context.Context, filter dto.LottoFilter) (*dto.LottoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	lotti, totale, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LottoResponse, 0, len(lotti))
	for i := range lotti {
		out = append(out, *lottoToResponse(&lotti[i]))
	}
	return &dto.LottoListResponse{Lotti: out, Totale: totale, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *lottoService) Disponibili(ctx context.Context, filter dto.DisponibiliFilter) ([]dto.LottoResponse, error) {
	centroID, err := uuid.Parse(filter.CentroID)
	if err != nil {
		return nil, fmt.Errorf("centro_id non valido: %w", err)
	}
	centro, err := s.centroRepo.FindByID(ctx, centroID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNonTrovato
		}
		return nil, err
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	lotti, err := s.repo.ListDisponibili(ctx, centro.ID, centro.Tipo, filter.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LottoResponse, 0, len(lotti))
	for i := range lotti {
		out = append(out, *lottoToResponse(&lotti[i]))
	}
	return out, nil
}

func (s *lottoService) Aggiorna(ctx context.Context, attoreID, id uuid.UUID, req dto.AggiornaLottoRequest) (*dto.LottoResponse, error) {
	lotto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNonTrovato
		}
		return nil, err
	}
	if err := s.verificaAccessoCentro(ctx, attoreID, lotto.CentroOrigineID); err != nil {
		return nil, err
	}

	if req.Prodotto != nil {
		lotto.Prodotto = *req.Prodotto
	}
	if req.Quantita != nil {
		lotto.Quantita = *req.Quantita
	}
	if req.UnitaMisura != nil {
		lotto.UnitaMisura = *req.UnitaMisura
	}
	if req.GiorniPermanenza != nil {
		lotto.GiorniPermanenza = *req.GiorniPermanenza
	}

	scadenzaCambiata := false
	if req.DataScadenza != nil {
		scadenza, err := time.Parse(dto.DateLayout, *req.DataScadenza)
		if err != nil {
			return nil, fmt.Errorf("data_scadenza non valida: %w", err)
		}
		scadenzaCambiata = !scadenza.Equal(lotto.DataScadenza)
		lotto.DataScadenza = scadenza
	}

	precedente := lotto.Stato
	switch {
	case req.Stato != nil:
		// Explicit manual override wins over recalculation.
		override := stato.Stato(*req.Stato)
		if !stato.Valido(override) {
			return nil, fmt.Errorf("stato non valido: %s", *req.Stato)
		}
		lotto.Stato = override
	case scadenzaCambiata || req.GiorniPermanenza != nil:
		lotto.Stato = stato.Calcola(lotto.DataScadenza, lotto.GiorniPermanenza, s.ora())
	}
	statoCambiato := lotto.Stato != precedente

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.SaveTx(tx, lotto); err != nil {
			return err
		}
		if statoCambiato {
			if err := s.logRepo.CreateTx(tx, &model.LogCambioStato{
				LottoID:         lotto.ID,
				StatoPrecedente: precedente,
				StatoNuovo:      lotto.Stato,
				AttoreID:        attoreID,
			}); err != nil {
				return err
			}
		}
		if s.caps.HasCategorie && req.Categorie != nil {
			categorie, err := s.categoriaRepo.EnsureTx(tx, *req.Categorie)
			if err != nil {
				return err
			}
			return s.categoriaRepo.ReplaceAssociazioniTx(tx, lotto, categorie)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statoCambiato {
		if n, err := s.notifiche.FanOutCambioStato(ctx, lotto, precedente, lotto.Stato); err != nil {
			log.Warn().Err(err).Int("inserite", n).
				Str("lotto_id", lotto.ID.String()).
				Msg("lotti: fan-out cambio stato incompleto")
		}
	}

	return lottoToResponse(lotto), nil
}

func (s *lottoService) Elimina(ctx context.Context, attoreID, id uuid.UUID) error {
	lotto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNonTrovato
		}
		return err
	}
	if err := s.verificaAccessoCentro(ctx, attoreID, lotto.CentroOrigineID); err != nil {
		return err
	}

	attive, err := s.prenRepo.CountAttiveByLotto(ctx, id)
	if err != nil {
		return err
	}
	if attive > 0 {
		return fmt.Errorf("%w: il lotto ha %d prenotazioni attive", ErrConflitto, attive)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if s.caps.HasCategorie {
			if err := s.categoriaRepo.DeleteAssociazioniTx(tx, lotto); err != nil {
				return err
			}
		}
		if err := s.prenRepo.DeleteByLottoTx(tx, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByLottoTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}

// Storico returns the status transition history of a lot, oldest first.
func (s *lottoService) Storico(ctx context.Context, id uuid.UUID) ([]dto.LogCambioStatoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNonTrovato
		}
		return nil, err
	}
	righe, err := s.logRepo.ListByLotto(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LogCambioStatoResponse, 0, len(righe))
	for _, r := range righe {
		out = append(out, dto.LogCambioStatoResponse{
			StatoPrecedente: string(r.StatoPrecedente),
			StatoNuovo:      string(r.StatoNuovo),
			AttoreID:        r.AttoreID.String(),
			Timestamp:       r.Timestamp,
		})
	}
	return out, nil
}

func lottoToResponse(l *model.Lotto) *dto.LottoResponse {
	return &dto.LottoResponse{
		ID:               l.ID.String(),
		Prodotto:         l.Prodotto,
		Quantita:         l.Quantita,
		UnitaMisura:      l.UnitaMisura,
		DataScadenza:     l.DataScadenza.Format(dto.DateLayout),
		GiorniPermanenza: l.GiorniPermanenza,
		CentroOrigineID:  l.CentroOrigineID.String(),
		Stato:            string(l.Stato),
		InseritoDa:       l.InseritoDa.String(),
		CreatoIl:         l.CreatoIl,
		AggiornatoIl:     l.AggiornatoIl,
	}
}
