package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/repository"
)

type CentroService interface {
	Crea(ctx context.Context, req dto.CreaCentroRequest) (*dto.CentroResponse, error)
	Ottieni(ctx context.Context, id uuid.UUID) (*dto.CentroResponse, error)
	List(ctx context.Context, tipo string) ([]dto.CentroResponse, error)
	AssociaAttore(ctx context.Context, centroID uuid.UUID, req dto.AssociaAttoreRequest) error
}

type centroService struct {
	repo       repository.CentroRepository
	attoreRepo repository.AttoreRepository
}

func NewCentroService(repo repository.CentroRepository, attoreRepo repository.AttoreRepository) CentroService {
	return &centroService{repo: repo, attoreRepo: attoreRepo}
}

func (s *centroService) Crea(ctx context.Context, req dto.CreaCentroRequest) (*dto.CentroResponse, error) {
	if _, err := s.repo.FindByNome(ctx, req.Nome); err == nil {
		return nil, fmt.Errorf("%w: esiste già un centro con questo nome", ErrConflitto)
	}

	c := &model.Centro{
		Nome:      req.Nome,
		Tipo:      req.Tipo,
		Indirizzo: req.Indirizzo,
		Telefono:  req.Telefono,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return centroToResponse(c), nil
}

func (s *centroService) Ottieni(ctx context.Context, id uuid.UUID) (*dto.CentroResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNonTrovato
		}
		return nil, err
	}
	return centroToResponse(c), nil
}

func (s *centroService) List(ctx context.Context, tipo string) ([]dto.CentroResponse, error) {
	centri, err := s.repo.List(ctx, tipo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CentroResponse, 0, len(centri))
	for i := range centri {
		out = append(out, *centroToResponse(&centri[i]))
	}
	return out, nil
}

func (s *centroService) AssociaAttore(ctx context.Context, centroID uuid.UUID, req dto.AssociaAttoreRequest) error {
	attoreID, err := uuid.Parse(req.AttoreID)
	if err != nil {
		return fmt.Errorf("attore_id non valido: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, centroID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: centro", ErrNonTrovato)
		}
		return err
	}
	if _, err := s.attoreRepo.FindByID(ctx, attoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: attore", ErrNonTrovato)
		}
		return err
	}
	return s.attoreRepo.Associa(ctx, &model.AttoreCentro{
		AttoreID:   attoreID,
		CentroID:   centroID,
		Ruolo:      req.Ruolo,
		SuperAdmin: req.SuperAdmin,
	})
}

func centroToResponse(c *model.Centro) *dto.CentroResponse {
	return &dto.CentroResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Tipo:      c.Tipo,
		Indirizzo: c.Indirizzo,
		Telefono:  c.Telefono,
		CreatoIl:  c.CreatoIl,
	}
}
