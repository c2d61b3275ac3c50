package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"refood/internal/config"
	"refood/internal/dto"
	"refood/internal/model"
	"refood/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreaAttore(ctx context.Context, req dto.CreaAttoreRequest) (*dto.AttoreResponse, error)
}

type authService struct {
	repo repository.AttoreRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.AttoreRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	attore, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("credenziali non valide")
	}
	if !attore.Attivo {
		return nil, errors.New("credenziali non valide")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(attore.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenziali non valide")
	}

	return s.buildTokens(ctx, attore)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token non valido o scaduto")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims non validi")
	}
	idStr, ok := claims["attore_id"].(string)
	if !ok {
		return nil, errors.New("token malformato")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errors.New("token malformato")
	}

	attore, err := s.repo.FindByID(ctx, id)
	if err != nil || !attore.Attivo {
		return nil, errors.New("attore non trovato o disattivato")
	}

	return s.buildTokens(ctx, attore)
}

func (s *authService) CreaAttore(ctx context.Context, req dto.CreaAttoreRequest) (*dto.AttoreResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email già registrata", ErrConflitto)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	attore := &model.Attore{
		Nome:         req.Nome,
		Email:        req.Email,
		PasswordHash: string(hash),
		Attivo:       true,
	}
	if err := s.repo.Create(ctx, attore); err != nil {
		return nil, err
	}
	return &dto.AttoreResponse{
		ID:     attore.ID.String(),
		Nome:   attore.Nome,
		Email:  attore.Email,
		Attivo: attore.Attivo,
	}, nil
}

func (s *authService) buildTokens(ctx context.Context, attore *model.Attore) (*dto.LoginResponse, error) {
	access, err := s.generateToken(attore, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(attore, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	centriID, err := s.repo.CentriDiAttore(ctx, attore.ID)
	if err != nil {
		return nil, err
	}
	centri := make([]string, 0, len(centriID))
	for _, id := range centriID {
		centri = append(centri, id.String())
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Attore: dto.AttoreResponse{
			ID:     attore.ID.String(),
			Nome:   attore.Nome,
			Email:  attore.Email,
			Attivo: attore.Attivo,
			Centri: centri,
		},
	}, nil
}

func (s *authService) generateToken(attore *model.Attore, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"attore_id": attore.ID.String(),
		"email":     attore.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
