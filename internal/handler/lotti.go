package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"refood/internal/apierror"
	"refood/internal/dto"
	"refood/internal/middleware"
	"refood/internal/service"
)

type LottiHandler struct{ svc service.LottoService }

func NewLottiHandler(svc service.LottoService) *LottiHandler {
	return &LottiHandler{svc: svc}
}

func (h *LottiHandler) Crea(c *gin.Context) {
	attoreID, ok := middleware.AttoreID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticazione richiesta"))
		return
	}
	var req dto.CreaLottoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crea(c.Request.Context(), attoreID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LottiHandler) Lista(c *gin.Context) {
	var filter dto.LottoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Errore nel recupero dei lotti"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LottiHandler) Disponibili(c *gin.Context) {
	var filter dto.DisponibiliFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.CentroID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("centro_id obbligatorio"))
		return
	}
	resp, err := h.svc.Disponibili(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LottiHandler) Ottieni(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID non valido"))
		return
	}
	resp, err := h.svc.Ottieni(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Storico restituisce le transizioni di stato registrate per il lotto,
// dalla piu' vecchia alla piu' recente.
func (h *LottiHandler) Storico(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID non valido"))
		return
	}
	resp, err := h.svc.Storico(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LottiHandler) Aggiorna(c *gin.Context) {
	attoreID, ok := middleware.AttoreID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticazione richiesta"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID non valido"))
		return
	}
	var req dto.AggiornaLottoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Aggiorna(c.Request.Context(), attoreID, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LottiHandler) Elimina(c *gin.Context) {
	attoreID, ok := middleware.AttoreID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticazione richiesta"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID non valido"))
		return
	}
	if err := h.svc.Elimina(c.Request.Context(), attoreID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
