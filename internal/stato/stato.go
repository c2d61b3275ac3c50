// Package stato implements the traffic-light freshness status of a lot.
// The calculation is pure: creation, manual update and the scheduled sweep
// all call the same function, so stored values and audit rows never diverge
// for identical inputs.
package stato

import "time"

// Stato is the freshness label of a lot.
type Stato string

const (
	Verde     Stato = "Verde"
	Arancione Stato = "Arancione"
	Rosso     Stato = "Rosso"

	// Nuovo is not a live status: it only appears as stato_precedente in the
	// audit row written at lot creation.
	Nuovo Stato = "Nuovo"
)

// Valido reports whether s is one of the three live statuses.
func Valido(s Stato) bool {
	return s == Verde || s == Arancione || s == Rosso
}

// Calcola maps (expiry date, permanence window, now) to a status:
//
//	Rosso     scadenza <= now
//	Arancione scadenza - giorniPermanenza <= now < scadenza
//	Verde     otherwise
//
// giorniPermanenza = 0 collapses the Arancione window: the lot jumps from
// Verde straight to Rosso at expiry. That matches the historical behavior
// and is intentional.
func Calcola(scadenza time.Time, giorniPermanenza int, now time.Time) Stato {
	if !scadenza.After(now) {
		return Rosso
	}
	soglia := scadenza.AddDate(0, 0, -giorniPermanenza)
	if !soglia.After(now) {
		return Arancione
	}
	return Verde
}
