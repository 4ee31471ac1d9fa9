// Package test holds fixtures shared by the integration tests.
package test

import (
	"os"
	"path/filepath"
	"testing"
)

// Dataset is a small but complete facility dataset: enough structures, FAQ
// entries and useful numbers for the whole ask pipeline to run against.
const Dataset = `{
  "strutture": [
    {
      "nome": "Ospedale Orlandi di Bussolengo",
      "città": "Bussolengo",
      "indirizzo": "Via Ospedale 2",
      "telefono": "045 671 2111",
      "orari": "Lun-Sab 7:00-19:00, Dom 7:00-12:30",
      "orari_dettaglio": {"centro_prelievi": "Lun-Sab 7:00-10:30"},
      "servizi": ["Pronto Soccorso", "Radiologia", "Centro Prelievi"]
    },
    {
      "nome": "Ospedale Magalini di Villafranca",
      "città": "Villafranca di Verona",
      "indirizzo": "Via Ospedale 22",
      "telefono": "045 633 8111",
      "orari": "Lun-Ven 7:30-19:00",
      "servizi": ["Pronto Soccorso", "Cardiologia"]
    }
  ],
  "faq": [
    {
      "domanda": "Come si prenota una visita specialistica?",
      "risposta": "Chiamando il CUP al numero 045 807 1111.",
      "tags": ["cup", "prenotare una visita"]
    }
  ],
  "numeri_utili": {
    "emergenze": "118",
    "cup_prenotazioni": "045 807 1111"
  }
}`

// WriteDataset writes the fixture dataset into dir and returns its path.
func WriteDataset(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "dataset.json")
	if err := os.WriteFile(path, []byte(Dataset), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}
