package dto

type StatisticaResponse struct {
	Data string `json:"data"`

	LottiVerdi     int64 `json:"lotti_verdi"`
	LottiArancioni int64 `json:"lotti_arancioni"`
	LottiRossi     int64 `json:"lotti_rossi"`

	PrenotazioniAttive     int64 `json:"prenotazioni_attive"`
	PrenotazioniConsegnate int64 `json:"prenotazioni_consegnate"`
	PrenotazioniAnnullate  int64 `json:"prenotazioni_annullate"`

	Operatori      int64 `json:"operatori"`
	Amministratori int64 `json:"amministratori"`
}

// StatisticheCorrentiResponse is the live dashboard rollup, computed on
// request rather than read from the daily snapshots.
type StatisticheCorrentiResponse struct {
	LottiVerdi      int64 `json:"lotti_verdi"`
	LottiArancioni  int64 `json:"lotti_arancioni"`
	LottiRossi      int64 `json:"lotti_rossi"`
	LottiArchiviati int64 `json:"lotti_archiviati"`

	Operatori      int64 `json:"operatori"`
	Amministratori int64 `json:"amministratori"`
}
