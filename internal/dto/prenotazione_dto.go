package dto

import "time"

type CreaPrenotazioneRequest struct {
	LottoID           string `json:"lotto_id" validate:"required,uuid"`
	CentroRiceventeID string `json:"centro_ricevente_id" validate:"required,uuid"`
	Note              string `json:"note"`
}

type CambioStatoPrenotazioneRequest struct {
	Stato string `json:"stato" validate:"required,oneof=Attiva Prenotato InTransito Consegnato Annullato"`
}

type PrenotazioneResponse struct {
	ID                string    `json:"id"`
	LottoID           string    `json:"lotto_id"`
	CentroRiceventeID string    `json:"centro_ricevente_id"`
	AttoreID          string    `json:"attore_id"`
	Stato             string    `json:"stato"`
	Note              string    `json:"note,omitempty"`
	CreatoIl          time.Time `json:"creato_il"`
	AggiornatoIl      time.Time `json:"aggiornato_il"`
}

type PrenotazioneFilter struct {
	LottoID  string `form:"lotto_id"`
	CentroID string `form:"centro_id"`
	Stato    string `form:"stato"`
}
