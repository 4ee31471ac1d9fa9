package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/fuzzy"
)

// Minimum name similarity for a fuzzy FindByName hit.
const nameMatchThreshold = 0.6

// Snapshot is an immutable view of the facility dataset. Readers share it
// lock-free; reloads swap the whole pointer.
type Snapshot struct {
	Facilities    []core.Facility
	FAQs          []core.FAQ
	UsefulNumbers map[string]string
}

type Catalog struct {
	path string
	snap atomic.Pointer[Snapshot]
}

// Load reads the dataset file and returns a catalog bound to that path.
func Load(path string) (*Catalog, error) {
	snap, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}
	c := &Catalog{path: path}
	c.snap.Store(snap)
	return c, nil
}

// New wraps an already-built snapshot, detached from any file.
func New(snap *Snapshot) *Catalog {
	c := &Catalog{}
	c.snap.Store(snap)
	return c
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return Parse(data)
}

// envelope is the current dataset layout; older files carry a bare
// facility array instead.
type envelope struct {
	Facilities    []core.Facility   `json:"strutture"`
	FAQs          []core.FAQ        `json:"faq"`
	UsefulNumbers map[string]string `json:"numeri_utili"`
}

func Parse(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	if trimmed[0] == '[' {
		var facilities []core.Facility
		if err := json.Unmarshal(trimmed, &facilities); err != nil {
			return nil, fmt.Errorf("failed to parse dataset: %w", err)
		}
		return &Snapshot{Facilities: facilities}, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &Snapshot{
		Facilities:    env.Facilities,
		FAQs:          env.FAQs,
		UsefulNumbers: env.UsefulNumbers,
	}, nil
}

// Snapshot returns the current dataset view.
func (c *Catalog) Snapshot() *Snapshot {
	return c.snap.Load()
}

// Reload re-reads the bound file and swaps the snapshot on success.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return fmt.Errorf("catalog is not file-backed")
	}
	snap, err := loadSnapshot(c.path)
	if err != nil {
		return err
	}
	c.snap.Store(snap)
	return nil
}

// FindByName matches a facility by substring first, then falls back to
// fuzzy matching on the full name.
func (c *Catalog) FindByName(name string) (*core.Facility, bool) {
	nameLower := strings.ToLower(name)
	snap := c.Snapshot()

	for i := range snap.Facilities {
		if strings.Contains(strings.ToLower(snap.Facilities[i].Name), nameLower) {
			return &snap.Facilities[i], true
		}
	}

	var best *core.Facility
	bestScore := nameMatchThreshold
	for i := range snap.Facilities {
		score := fuzzy.Ratio(nameLower, strings.ToLower(snap.Facilities[i].Name))
		if score > bestScore {
			bestScore = score
			best = &snap.Facilities[i]
		}
	}
	return best, best != nil
}

// Services lists every distinct service across facilities, sorted.
func (c *Catalog) Services() []string {
	seen := make(map[string]struct{})
	for _, f := range c.Snapshot().Facilities {
		for _, s := range f.Services {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Cities lists every distinct city with a facility, sorted.
func (c *Catalog) Cities() []string {
	seen := make(map[string]struct{})
	for _, f := range c.Snapshot().Facilities {
		seen[f.City] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
