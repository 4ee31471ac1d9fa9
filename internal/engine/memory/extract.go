package memory

import (
	"regexp"
	"strings"
)

// Facility name patterns. Listed from most to least specific; the first
// match wins. Character classes are spelled out because answers carry
// accented Italian names.
var facilityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Ospedale|Centro|Ambulatorio|Poliambulatorio)\s+(?:di\s+)?[\p{L}\p{N}_\s\-']+`),
	regexp.MustCompile(`(?i)(?:Ospedale|Centro)\s+[\p{L}\p{N}_\s\-']+\s+(?:di|a)\s+[\p{L}\p{N}_\s\-']+`),
	regexp.MustCompile(`(?i)[\p{L}\p{N}_\s\-']+\s+(?:di|a)\s+(?:Malcesine|Marzana|Bussolengo|Bovolone|Villafranca|San Bonifacio)`),
}

var collapseSpaces = regexp.MustCompile(`\s+`)

var knownServices = []string{
	"pronto soccorso", "radiologia", "laboratorio analisi",
	"centro prelievi", "fisioterapia", "riabilitazione",
	"cardiologia", "ortopedia", "pediatria", "geriatria",
	"breast unit", "farmacia", "cup", "prenotazioni",
}

var knownCities = []string{
	"Verona", "Malcesine", "Marzana", "Bussolengo",
	"San Bonifacio", "Villafranca", "Bovolone",
	"Villafranca di Verona",
}

// ExtractFacility pulls a facility name out of free text, or "" when
// none is recognizable.
func ExtractFacility(text string) string {
	for _, p := range facilityPatterns {
		if m := p.FindString(text); m != "" {
			return collapseSpaces.ReplaceAllString(strings.TrimSpace(m), " ")
		}
	}
	return ""
}

// ExtractService returns the first known service mentioned in the text.
func ExtractService(text string) string {
	lower := strings.ToLower(text)
	for _, s := range knownServices {
		if strings.Contains(lower, s) {
			return s
		}
	}
	return ""
}

// ExtractCity returns the first known city mentioned in the text.
func ExtractCity(text string) string {
	lower := strings.ToLower(text)
	for _, c := range knownCities {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}
