package service

import "errors"

// Sentinel errors let handlers map service failures onto the REST taxonomy
// (404/409/403) instead of flattening everything to 400.
var (
	ErrNonTrovato     = errors.New("risorsa non trovata")
	ErrConflitto      = errors.New("operazione in conflitto con lo stato corrente")
	ErrNonAutorizzato = errors.New("operazione non consentita per questo attore")
)
