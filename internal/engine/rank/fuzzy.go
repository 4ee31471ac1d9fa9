package rank

import (
	"sort"
	"strings"

	"github.com/sandevgo/sanibot/internal/catalog"
	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/internal/engine/intent"
	"github.com/sandevgo/sanibot/pkg/fuzzy"
)

// Field weights for direct fuzzy scoring.
const (
	nameWeight     = 2.0
	cityWeight     = 1.5
	servicesWeight = 1.0
)

// Keyword clusters that boost facilities actually offering the service
// asked about.
var boostClusters = map[string][]string{
	"pronto soccorso": {"pronto soccorso", "emergenza", "urgenza"},
	"prelievi":        {"prelievi", "analisi", "sangue", "laboratorio"},
	"radiologia":      {"radiologia", "radiografia", "rx", "tac"},
	"fisioterapia":    {"fisioterapia", "riabilitazione", "recupero"},
	"prenotazione":    {"prenot", "cup", "appuntamento"},
}

// Services that halve a facility's score when asked for but missing.
var requiredServices = []string{"pronto soccorso", "prelievi", "radiologia", "fisioterapia"}

var _ Ranker = (*Fuzzy)(nil)

// Fuzzy ranks facilities by string similarity of the question against
// name, city and services, with keyword and intent boosts on top.
type Fuzzy struct {
	catalog *catalog.Catalog
	score   Scorer
}

func NewFuzzy(cat *catalog.Catalog) *Fuzzy {
	return NewFuzzyScored(cat, fuzzy.Ratio)
}

func NewFuzzyScored(cat *catalog.Catalog, score Scorer) *Fuzzy {
	return &Fuzzy{catalog: cat, score: score}
}

func (f *Fuzzy) Name() string { return "fuzzy" }

func (f *Fuzzy) Rank(question, intentName string, limit int) []core.ScoredFacility {
	facilities := f.catalog.Snapshot().Facilities
	if len(facilities) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := strings.ToLower(question)
	scored := make([]core.ScoredFacility, 0, len(facilities))
	for _, fac := range facilities {
		scored = append(scored, core.ScoredFacility{
			Facility: fac,
			Score:    f.scoreFacility(q, intentName, &fac),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	// A dominant top match suppresses weaker secondary results.
	if scored[0].Score > dominantScore && limit > 2 {
		limit = 2
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	kept := scored[:0]
	for _, s := range scored {
		if s.Score > scoreFloor {
			kept = append(kept, s)
		}
	}
	return kept
}

func (f *Fuzzy) Context(question, intentName string) []string {
	if len(f.catalog.Snapshot().Facilities) == 0 {
		return []string{NoFacilities}
	}

	ranked := f.Rank(question, intentName, DefaultLimit)
	if len(ranked) == 0 {
		return []string{NoRelevantMatch}
	}

	out := make([]string, 0, len(ranked))
	for i := range ranked {
		out = append(out, catalog.Describe(&ranked[i].Facility, intentName))
	}
	return out
}

func (f *Fuzzy) scoreFacility(q, intentName string, fac *core.Facility) float64 {
	servicesText := strings.ToLower(strings.Join(fac.Services, " "))

	score := f.score(q, strings.ToLower(fac.Name)) * nameWeight
	score += f.score(q, strings.ToLower(fac.City)) * cityWeight
	score += f.score(q, servicesText) * servicesWeight

	for _, keywords := range boostClusters {
		if containsAny(q, keywords) && containsAny(servicesText, keywords) {
			score += 0.5
		}
	}

	switch intentName {
	case intent.Orari:
		if len(fac.HoursDetail) > 0 {
			score += 0.2
		}
	case intent.Emergenza:
		if strings.Contains(servicesText, "pronto soccorso") {
			score += 0.8
		}
	case intent.Prenotazione:
		if strings.Contains(servicesText, "cup") || strings.Contains(servicesText, "prenotazioni") {
			score += 0.3
		}
	}

	for _, svc := range requiredServices {
		if strings.Contains(q, svc) && !strings.Contains(servicesText, svc) {
			score *= 0.5
		}
	}

	return score
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
