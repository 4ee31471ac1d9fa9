package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/sandevgo/sanibot/internal/core"
)

// Describe renders a facility as the text block fed to the model prompt.
// The intent steers which details get expanded.
func Describe(f *core.Facility, intent string) string {
	parts := []string{fmt.Sprintf("📍 %s a %s (%s)", f.Name, f.City, f.Address)}

	parts = append(parts, fmt.Sprintf("📞 Tel: %s", f.Phone))

	hours := f.Hours
	if hours == "" {
		hours = "N/D"
	}
	if intent == "orari" && len(f.HoursDetail) > 0 {
		parts = append(parts, fmt.Sprintf("🕐 Orari generali: %s", hours))
		for _, service := range sortedKeys(f.HoursDetail) {
			label := titleCase(strings.ReplaceAll(service, "_", " "))
			parts = append(parts, fmt.Sprintf("   • %s: %s", label, f.HoursDetail[service]))
		}
	} else {
		parts = append(parts, fmt.Sprintf("🕐 Orari: %s", hours))
	}

	if (intent == "servizi" || intent == "") && len(f.Services) > 0 {
		shown := f.Services
		if len(shown) > 5 {
			shown = shown[:5]
		}
		parts = append(parts, fmt.Sprintf("🏥 Servizi: %s", strings.Join(shown, ", ")))
		if rest := len(f.Services) - 5; rest > 0 {
			parts = append(parts, fmt.Sprintf("   ...e altri %d servizi", rest))
		}
	}

	if f.Access != nil {
		var flags []string
		if f.Access.DisabledParking {
			flags = append(flags, "♿ Parcheggio disabili")
		}
		if f.Access.Elevator {
			flags = append(flags, "🛗 Ascensore")
		}
		if f.Access.TactilePath {
			flags = append(flags, "🦯 Percorso tattile")
		}
		if len(flags) > 0 {
			parts = append(parts, fmt.Sprintf("Accessibilità: %s", strings.Join(flags, ", ")))
		}
	}

	if f.MapLink != "" {
		parts = append(parts, fmt.Sprintf("🗺️ Mappa: %s", f.MapLink))
	}
	if f.WebPage != "" {
		parts = append(parts, fmt.Sprintf("🌐 Info: %s", f.WebPage))
	}

	return strings.Join(parts, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
