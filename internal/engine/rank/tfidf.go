package rank

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/sandevgo/sanibot/internal/catalog"
	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/internal/engine/intent"
)

const (
	maxFeatures = 1000

	// Chunks must clear this stricter floor to enter the prompt context.
	contextFloor = 0.2

	// At most this many chunks are joined into the context string.
	contextChunks = 2

	memoCapacity = 100
	memoKeyRunes = 50
)

const (
	chunkOverview = "completo"
	chunkHours    = "orario_dettaglio"
	chunkFAQ      = "faq"

	// Rank searches deeper than the requested limit so facility chunks
	// survive the FAQ filter and per-facility dedupe.
	rankSearchFactor = 3
)

// Tokens are lower-cased runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

type chunk struct {
	id       string
	text     string
	kind     string
	facility string
}

type sparseVec struct {
	idx []int
	val []float64
}

var _ Ranker = (*TFIDF)(nil)

// TFIDF ranks facility and FAQ chunks by cosine similarity of TF-IDF
// vectors. The index is rebuilt lazily whenever the catalog snapshot
// changes.
type TFIDF struct {
	catalog *catalog.Catalog

	mu       sync.Mutex
	snap     *catalog.Snapshot
	chunks   []chunk
	vocab    map[string]int
	idf      []float64
	rows     []sparseVec
	byName   map[string]core.Facility
	memo     map[string]string
	memoKeys []string
}

func NewTFIDF(cat *catalog.Catalog) *TFIDF {
	return &TFIDF{
		catalog: cat,
		memo:    make(map[string]string),
	}
}

func (t *TFIDF) Name() string { return "tfidf" }

func (t *TFIDF) Rank(question, intentName string, limit int) []core.ScoredFacility {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureIndex()

	if limit <= 0 {
		limit = DefaultLimit
	}

	hits := t.search(question, limit*rankSearchFactor)
	seen := make(map[string]struct{})
	var out []core.ScoredFacility
	for _, h := range hits {
		c := t.chunks[h.index]
		if c.facility == "" || h.score <= scoreFloor {
			continue
		}
		if _, dup := seen[c.facility]; dup {
			continue
		}
		fac, ok := t.byName[c.facility]
		if !ok {
			continue
		}
		seen[c.facility] = struct{}{}
		out = append(out, core.ScoredFacility{Facility: fac, Score: h.score})
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (t *TFIDF) Context(question, intentName string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureIndex()

	key := t.memoKey(question, intentName)
	if cached, ok := t.memo[key]; ok {
		return []string{cached}
	}

	k := DefaultLimit
	if intentName == intent.Orari || intentName == intent.Contatti {
		k = 2
	}

	hits := t.search(question, k)
	if len(hits) == 0 {
		return []string{NoRelevantContext}
	}

	var parts []string
	for _, h := range hits {
		if h.score > contextFloor {
			parts = append(parts, t.chunks[h.index].text)
		}
	}
	if len(parts) > contextChunks {
		parts = parts[:contextChunks]
	}
	context := strings.Join(parts, " ")

	t.memoize(key, context)
	return []string{context}
}

func (t *TFIDF) memoKey(question, intentName string) string {
	r := []rune(question)
	if len(r) > memoKeyRunes {
		r = r[:memoKeyRunes]
	}
	return intentName + ":" + string(r)
}

// memoize stores a context string, halving the memo when it fills up.
// Callers must hold t.mu.
func (t *TFIDF) memoize(key, context string) {
	if _, exists := t.memo[key]; !exists {
		t.memoKeys = append(t.memoKeys, key)
	}
	t.memo[key] = context

	if len(t.memo) > memoCapacity {
		drop := t.memoKeys[:memoCapacity/2]
		t.memoKeys = t.memoKeys[memoCapacity/2:]
		for _, k := range drop {
			delete(t.memo, k)
		}
	}
}

type hit struct {
	index int
	score float64
}

// search returns up to k chunks with cosine similarity of at least
// the relevance floor, best first. Callers must hold t.mu.
func (t *TFIDF) search(question string, k int) []hit {
	if len(t.rows) == 0 {
		return nil
	}

	qv := t.vectorize(tokenize(question))
	if len(qv.idx) == 0 {
		return nil
	}

	hits := make([]hit, 0, len(t.rows))
	for i := range t.rows {
		if s := dot(qv, t.rows[i]); s >= scoreFloor {
			hits = append(hits, hit{index: i, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// ensureIndex rebuilds the TF-IDF index when the catalog snapshot has
// been swapped. Callers must hold t.mu.
func (t *TFIDF) ensureIndex() {
	snap := t.catalog.Snapshot()
	if snap == t.snap && t.rows != nil {
		return
	}

	t.snap = snap
	t.chunks = buildChunks(snap)
	t.byName = make(map[string]core.Facility, len(snap.Facilities))
	for _, f := range snap.Facilities {
		t.byName[f.Name] = f
	}
	t.memo = make(map[string]string)
	t.memoKeys = nil

	docs := make([][]string, len(t.chunks))
	for i, c := range t.chunks {
		docs[i] = tokenize(c.text)
	}

	t.vocab = buildVocab(docs)
	t.idf = make([]float64, len(t.vocab))
	df := make([]int, len(t.vocab))
	for _, doc := range docs {
		seen := make(map[int]struct{})
		for _, term := range doc {
			if col, ok := t.vocab[term]; ok {
				seen[col] = struct{}{}
			}
		}
		for col := range seen {
			df[col]++
		}
	}
	n := float64(len(docs))
	for col := range t.idf {
		t.idf[col] = math.Log((1+n)/(1+float64(df[col]))) + 1
	}

	t.rows = make([]sparseVec, len(docs))
	for i, doc := range docs {
		t.rows[i] = t.vectorize(doc)
	}
}

// vectorize builds an L2-normalized TF-IDF vector from tokens.
func (t *TFIDF) vectorize(tokens []string) sparseVec {
	counts := make(map[int]float64)
	for _, term := range tokens {
		if col, ok := t.vocab[term]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return sparseVec{}
	}

	cols := make([]int, 0, len(counts))
	for col := range counts {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	v := sparseVec{idx: cols, val: make([]float64, len(cols))}
	var norm float64
	for i, col := range cols {
		w := counts[col] * t.idf[col]
		v.val[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range v.val {
			v.val[i] /= norm
		}
	}
	return v
}

func dot(a, b sparseVec) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.idx) && j < len(b.idx) {
		switch {
		case a.idx[i] == b.idx[j]:
			sum += a.val[i] * b.val[j]
			i++
			j++
		case a.idx[i] < b.idx[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// tokenize lower-cases the text and emits unigrams plus adjacent-pair
// bigrams, matching the indexing scheme end to end.
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(words)*2-1)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}

// buildVocab assigns a column to every term, capping the vocabulary at
// maxFeatures by total corpus count (ties favor the lexicographically
// smaller term).
func buildVocab(docs [][]string) map[string]int {
	total := make(map[string]int)
	for _, doc := range docs {
		for _, term := range doc {
			total[term]++
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	// Columns in lexicographic order for stable vectors.
	sort.Strings(terms)
	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

func buildChunks(snap *catalog.Snapshot) []chunk {
	var chunks []chunk

	for i := range snap.Facilities {
		f := &snap.Facilities[i]
		base := chunkID(f.Name)

		var b strings.Builder
		fmt.Fprintf(&b, "%s a %s. ", f.Name, f.City)
		fmt.Fprintf(&b, "Orari: %s. ", f.Hours)
		fmt.Fprintf(&b, "Telefono: %s. ", f.Phone)
		fmt.Fprintf(&b, "Indirizzo: %s. ", f.Address)
		if len(f.Services) > 0 {
			fmt.Fprintf(&b, "Servizi: %s. ", strings.Join(f.Services, ", "))
		}
		chunks = append(chunks, chunk{
			id:       base + "_main",
			text:     b.String(),
			kind:     chunkOverview,
			facility: f.Name,
		})

		for _, svc := range sortedDetailKeys(f.HoursDetail) {
			chunks = append(chunks, chunk{
				id:       base + "_" + svc,
				text:     fmt.Sprintf("%s: %s - %s", f.Name, strings.ReplaceAll(svc, "_", " "), f.HoursDetail[svc]),
				kind:     chunkHours,
				facility: f.Name,
			})
		}
	}

	for _, faq := range snap.FAQs {
		chunks = append(chunks, chunk{
			id:   chunkID(faq.Question),
			text: fmt.Sprintf("FAQ: %s Risposta: %s", faq.Question, faq.Answer),
			kind: chunkFAQ,
		})
	}

	return chunks
}

func chunkID(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}

func sortedDetailKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
