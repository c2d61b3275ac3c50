package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"refood/internal/apierror"
	"refood/internal/dto"
	"refood/internal/service"
)

type CentriHandler struct{ svc service.CentroService }

func NewCentriHandler(svc service.CentroService) *CentriHandler {
	return &CentriHandler{svc: svc}
}

func (h *CentriHandler) Crea(c *gin.Context) {
	var req dto.CreaCentroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crea(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CentriHandler) Lista(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("tipo"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Errore nel recupero dei centri"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CentriHandler) Ottieni(c *gin.Context) {
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

func (h *CentriHandler) AssociaAttore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID non valido"))
		return
	}
	var req dto.AssociaAttoreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AssociaAttore(c.Request.Context(), id, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
