package suggest

import (
	"strings"

	"github.com/sandevgo/sanibot/internal/core"
)

// Icon lookup is first match wins, so more specific keywords sit higher.
var icons = []struct {
	keyword string
	emoji   string
}{
	{"orari", "🕐"},
	{"prenot", "📅"},
	{"dove", "📍"},
	{"telefono", "📞"},
	{"document", "📄"},
	{"analisi", "💉"},
	{"emergenz", "🚨"},
	{"servizi", "🏥"},
}

// FormatForUI decorates plain suggestions with an icon and an action
// for clients that render tappable chips.
func FormatForUI(suggestions []string) []core.Suggestion {
	out := make([]core.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		icon := "❓"
		sLower := strings.ToLower(s)
		for _, entry := range icons {
			if strings.Contains(sLower, entry.keyword) {
				icon = entry.emoji
				break
			}
		}
		out = append(out, core.Suggestion{Text: s, Icon: icon, Action: "ask"})
	}
	return out
}
