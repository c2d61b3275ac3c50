package dto

import "time"

type NotificaResponse struct {
	ID              string     `json:"id"`
	Tipo            string     `json:"tipo"`
	Titolo          string     `json:"titolo"`
	Messaggio       string     `json:"messaggio"`
	Letto           bool       `json:"letto"`
	RiferimentoID   *string    `json:"riferimento_id,omitempty"`
	RiferimentoTipo string     `json:"riferimento_tipo,omitempty"`
	CreatoIl        time.Time  `json:"creato_il"`
}

type NotificaFilter struct {
	SoloNonLette bool `form:"solo_non_lette"`
	Limit        int  `form:"limit,default=50"`
}

// NotificaListResponse carries the page of notifications plus the total
// unread count, so the client can badge without a second round trip.
type NotificaListResponse struct {
	Notifiche []NotificaResponse `json:"notifiche"`
	NonLette  int64              `json:"non_lette"`
}
