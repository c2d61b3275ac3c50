package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/repository"
	"refood/internal/stato"
)

type StatisticheService interface {
	PerData(ctx context.Context, data string) (*dto.StatisticaResponse, error)
	Recenti(ctx context.Context, n int) ([]dto.StatisticaResponse, error)
	Correnti(ctx context.Context) (*dto.StatisticheCorrentiResponse, error)
}

type statisticheService struct {
	repo       repository.StatisticheRepository
	lottoRepo  repository.LottoRepository
	archivio   repository.ArchivioRepository
	attoreRepo repository.AttoreRepository
}

func NewStatisticheService(repo repository.StatisticheRepository, lottoRepo repository.LottoRepository, archivio repository.ArchivioRepository, attoreRepo repository.AttoreRepository) StatisticheService {
	return &statisticheService{repo: repo, lottoRepo: lottoRepo, archivio: archivio, attoreRepo: attoreRepo}
}

func (s *statisticheService) PerData(ctx context.Context, data string) (*dto.StatisticaResponse, error) {
	stat, err := s.repo.FindByData(ctx, data)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNonTrovato
		}
		return nil, fmt.Errorf("recupero statistiche: %w", err)
	}
	return statisticaToResponse(stat), nil
}

func (s *statisticheService) Recenti(ctx context.Context, n int) ([]dto.StatisticaResponse, error) {
	if n <= 0 || n > 90 {
		n = 30
	}
	stats, err := s.repo.Latest(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("recupero statistiche: %w", err)
	}
	out := make([]dto.StatisticaResponse, 0, len(stats))
	for i := range stats {
		out = append(out, *statisticaToResponse(&stats[i]))
	}
	return out, nil
}

// Correnti interroga le tabelle vive invece dell'ultimo snapshot, per la
// dashboard amministrativa.
func (s *statisticheService) Correnti(ctx context.Context) (*dto.StatisticheCorrentiResponse, error) {
	out := &dto.StatisticheCorrentiResponse{}
	var err error
	if out.LottiVerdi, err = s.lottoRepo.CountByStato(ctx, stato.Verde); err != nil {
		return nil, fmt.Errorf("conteggio lotti: %w", err)
	}
	if out.LottiArancioni, err = s.lottoRepo.CountByStato(ctx, stato.Arancione); err != nil {
		return nil, fmt.Errorf("conteggio lotti: %w", err)
	}
	if out.LottiRossi, err = s.lottoRepo.CountByStato(ctx, stato.Rosso); err != nil {
		return nil, fmt.Errorf("conteggio lotti: %w", err)
	}
	if out.LottiArchiviati, err = s.archivio.CountLotti(ctx); err != nil {
		return nil, fmt.Errorf("conteggio archivio: %w", err)
	}
	if out.Operatori, err = s.attoreRepo.CountByRuolo(ctx, model.RuoloOperatore); err != nil {
		return nil, fmt.Errorf("conteggio attori: %w", err)
	}
	if out.Amministratori, err = s.attoreRepo.CountByRuolo(ctx, model.RuoloAmministratore); err != nil {
		return nil, fmt.Errorf("conteggio attori: %w", err)
	}
	return out, nil
}

func statisticaToResponse(s *model.StatisticaGiornaliera) *dto.StatisticaResponse {
	return &dto.StatisticaResponse{
		Data:                   s.Data,
		LottiVerdi:             s.LottiVerdi,
		LottiArancioni:         s.LottiArancioni,
		LottiRossi:             s.LottiRossi,
		PrenotazioniAttive:     s.PrenotazioniAttive,
		PrenotazioniConsegnate: s.PrenotazioniConsegnate,
		PrenotazioniAnnullate:  s.PrenotazioniAnnullate,
		Operatori:              s.Operatori,
		Amministratori:         s.Amministratori,
	}
}
