package stato

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func giorno(d int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestCalcolaBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		scadenza time.Time
		giorni   int
		now      time.Time
		want     Stato
	}{
		{"scadenza futura oltre soglia", giorno(10), 7, giorno(0), Verde},
		{"soglia esatta", giorno(10), 7, giorno(3), Arancione},
		{"dentro la finestra arancione", giorno(10), 7, giorno(9), Arancione},
		{"scadenza esatta", giorno(10), 7, giorno(10), Rosso},
		{"scaduto", giorno(10), 7, giorno(42), Rosso},
		{"giorni zero: verde fino alla scadenza", giorno(5), 0, giorno(4), Verde},
		{"giorni zero: rosso alla scadenza", giorno(5), 0, giorno(5), Rosso},
		{"finestra piu larga della vita del lotto", giorno(2), 30, giorno(0), Arancione},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Calcola(tc.scadenza, tc.giorni, tc.now))
		})
	}
}

func TestCalcolaDeterministica(t *testing.T) {
	// Same inputs, same answer — the sweep must agree with the controller.
	for i := 0; i < 20; i++ {
		assert.Equal(t, Calcola(giorno(10), 7, giorno(4)), Calcola(giorno(10), 7, giorno(4)))
	}
}

func TestCalcolaTotale(t *testing.T) {
	for d := -5; d <= 15; d++ {
		got := Calcola(giorno(10), 7, giorno(d))
		assert.True(t, Valido(got), "giorno %d produced %q", d, got)
	}
}
