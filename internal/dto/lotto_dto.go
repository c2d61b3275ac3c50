package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for data_scadenza. The mobile client sends
// bare dates; hours are never significant for the lifecycle.
const DateLayout = "2006-01-02"

type CreaLottoRequest struct {
	Prodotto         string          `json:"prodotto" validate:"required"`
	Quantita         decimal.Decimal `json:"quantita" validate:"required,gt=0"`
	UnitaMisura      string          `json:"unita_misura"`
	DataScadenza     string          `json:"data_scadenza" validate:"required,datetime=2006-01-02"`
	GiorniPermanenza int             `json:"giorni_permanenza" validate:"min=0"`
	CentroOrigineID  string          `json:"centro_origine_id" validate:"required,uuid"`
	Categorie        []string        `json:"categorie"`
}

// AggiornaLottoRequest carries only the fields the client wants to touch.
// A nil Stato with a changed DataScadenza triggers recalculation; a non-nil
// Stato is an explicit manual override and wins.
type AggiornaLottoRequest struct {
	Prodotto         *string          `json:"prodotto"`
	Quantita         *decimal.Decimal `json:"quantita" validate:"omitempty,gt=0"`
	UnitaMisura      *string          `json:"unita_misura"`
	DataScadenza     *string          `json:"data_scadenza" validate:"omitempty,datetime=2006-01-02"`
	GiorniPermanenza *int             `json:"giorni_permanenza" validate:"omitempty,min=0"`
	Stato            *string          `json:"stato" validate:"omitempty,oneof=Verde Arancione Rosso"`
	Categorie        *[]string        `json:"categorie"`
}

type LottoResponse struct {
	ID               string          `json:"id"`
	Prodotto         string          `json:"prodotto"`
	Quantita         decimal.Decimal `json:"quantita"`
	UnitaMisura      string          `json:"unita_misura"`
	DataScadenza     string          `json:"data_scadenza"`
	GiorniPermanenza int             `json:"giorni_permanenza"`
	CentroOrigineID  string          `json:"centro_origine_id"`
	Stato            string          `json:"stato"`
	InseritoDa       string          `json:"inserito_da"`
	CreatoIl         time.Time       `json:"creato_il"`
	AggiornatoIl     time.Time       `json:"aggiornato_il"`
}

type LottoFilter struct {
	Stato    string `form:"stato"`
	CentroID string `form:"centro_id"`
	Prodotto string `form:"prodotto"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

// DisponibiliFilter selects lots bookable by a receiving center: the
// viewer's own lots and already-reserved lots are excluded, and ordering
// depends on the center type.
type DisponibiliFilter struct {
	CentroID string `form:"centro_id" validate:"required,uuid"`
	Limit    int    `form:"limit,default=50"`
}

// LogCambioStatoResponse is one entry of a lot's status history, newest last.
type LogCambioStatoResponse struct {
	StatoPrecedente string    `json:"stato_precedente"`
	StatoNuovo      string    `json:"stato_nuovo"`
	AttoreID        string    `json:"attore_id"`
	Timestamp       time.Time `json:"timestamp"`
}

type LottoListResponse struct {
	Lotti  []LottoResponse `json:"lotti"`
	Totale int64           `json:"totale"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}
