package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"refood/internal/service"
)

type StatisticheHandler struct{ svc service.StatisticheService }

func NewStatisticheHandler(svc service.StatisticheService) *StatisticheHandler {
	return &StatisticheHandler{svc: svc}
}

// Recenti restituisce gli ultimi snapshot giornalieri, il piu' recente per primo.
func (h *StatisticheHandler) Recenti(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("giorni", "30"))
	resp, err := h.svc.Recenti(c.Request.Context(), n)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Correnti restituisce i conteggi vivi, senza attendere lo snapshot serale.
func (h *StatisticheHandler) Correnti(c *gin.Context) {
	resp, err := h.svc.Correnti(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StatisticheHandler) PerData(c *gin.Context) {
	resp, err := h.svc.PerData(c.Request.Context(), c.Param("data"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
