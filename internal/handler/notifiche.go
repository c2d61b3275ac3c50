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

type NotificheHandler struct{ svc service.NotificaService }

func NewNotificheHandler(svc service.NotificaService) *NotificheHandler {
	return &NotificheHandler{svc: svc}
}

func (h *NotificheHandler) Lista(c *gin.Context) {
	attoreID, ok := middleware.AttoreID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Non autenticato"))
		return
	}
	var filter dto.NotificaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametri di ricerca non validi"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), attoreID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificheHandler) MarcaLetta(c *gin.Context) {
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
	if err := h.svc.MarkLetta(c.Request.Context(), id, attoreID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificheHandler) MarcaTutteLette(c *gin.Context) {
	attoreID, ok := middleware.AttoreID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Non autenticato"))
		return
	}
	if err := h.svc.MarkTutteLette(c.Request.Context(), attoreID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
