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

type PrenotazioniHandler struct{ svc service.PrenotazioneService }

func NewPrenotazioniHandler(svc service.PrenotazioneService) *PrenotazioniHandler {
	return &PrenotazioniHandler{svc: svc}
}

func (h *PrenotazioniHandler) Crea(c *gin.Context) {
	attoreID, ok := middleware.AttoreID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Non autenticato"))
		return
	}
	var req dto.CreaPrenotazioneRequest
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

func (h *PrenotazioniHandler) Lista(c *gin.Context) {
	var filter dto.PrenotazioneFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametri di ricerca non validi"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrenotazioniHandler) CambiaStato(c *gin.Context) {
	attoreID, ok := middleware.AttoreID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Non autenticato"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID non valido"))
		return
	}
	var req dto.CambioStatoPrenotazioneRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiaStato(c.Request.Context(), attoreID, id, req.Stato)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
