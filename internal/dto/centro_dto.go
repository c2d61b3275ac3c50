package dto

import "time"

type CreaCentroRequest struct {
	Nome      string `json:"nome" validate:"required"`
	Tipo      string `json:"tipo" validate:"required,oneof=Donatore CentroSociale CentroRiciclaggio"`
	Indirizzo string `json:"indirizzo"`
	Telefono  string `json:"telefono"`
}

type CentroResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Tipo      string    `json:"tipo"`
	Indirizzo string    `json:"indirizzo,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	CreatoIl  time.Time `json:"creato_il"`
}

type AssociaAttoreRequest struct {
	AttoreID   string `json:"attore_id" validate:"required,uuid"`
	Ruolo      string `json:"ruolo" validate:"required,oneof=Operatore Amministratore"`
	SuperAdmin bool   `json:"super_admin"`
}
