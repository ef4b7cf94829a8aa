package citycore

import (
	"math"
	"sort"
	"strings"
)

const tierCount = 3

// postingList maps a place id to the accumulated weight of a single
// (word, tier) entry.
type postingList map[int64]int64

// invEntry holds the per-tier posting lists for one word.
type invEntry struct {
	tiers [tierCount]postingList
}

func newInvEntry() *invEntry {
	e := &invEntry{}
	for t := range e.tiers {
		e.tiers[t] = make(postingList)
	}
	return e
}

// IndexOption configures a TieredInvertedIndex at construction time.
type IndexOption func(*indexConfig)

type indexConfig struct{}

// TieredInvertedIndex is a three-tier inverted index over place text,
// supporting coverage-first, weight-breaking any-k retrieval. Tier 0 is
// the name, tier 1 alternate names, tier 2 classification and
// administrative tags plus timezone path segments.
type TieredInvertedIndex struct {
	words     map[string]*invEntry
	df        map[string]int64
	documents map[int64]struct{}
}

// NewTieredInvertedIndex creates an empty index. Tiers are fixed at 3.
func NewTieredInvertedIndex(opts ...IndexOption) *TieredInvertedIndex {
	cfg := indexConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TieredInvertedIndex{
		words:     make(map[string]*invEntry),
		df:        make(map[string]int64),
		documents: make(map[int64]struct{}),
	}
}

func (idx *TieredInvertedIndex) entry(word string) *invEntry {
	e, ok := idx.words[word]
	if !ok {
		e = newInvEntry()
		idx.words[word] = e
	}
	return e
}

// addPosting accumulates weight into the (word, tier) posting for id. It
// does not touch df: the caller counts each distinct word once per place
// via its own seen set.
func (idx *TieredInvertedIndex) addPosting(word string, tier int, id int64, weight int64) {
	e := idx.entry(word)
	e.tiers[tier][id] += weight
}

// Insert tokenizes p into the three tiers and updates posting lists and df.
// A place id already present is a no-op.
func (idx *TieredInvertedIndex) Insert(p Place) {
	if _, ok := idx.documents[p.ID]; ok {
		return
	}
	idx.documents[p.ID] = struct{}{}

	seen := make(map[string]struct{})

	// Tier 0: name, weighted by population.
	for _, w := range strings.Fields(strings.ToLower(p.Name)) {
		idx.addPosting(w, 0, p.ID, p.Population)
		seen[w] = struct{}{}
	}

	// Tier 1: alternate names, weight 1.
	for _, alt := range p.AlternateNames {
		for _, w := range strings.Fields(strings.ToLower(alt)) {
			idx.addPosting(w, 1, p.ID, 1)
			seen[w] = struct{}{}
		}
	}

	// Tier 2: classification/administrative tags and timezone segments, weight 1.
	for _, w := range p.adminTags() {
		idx.addPosting(w, 2, p.ID, 1)
		seen[w] = struct{}{}
	}
	for _, w := range p.timezoneTags() {
		idx.addPosting(w, 2, p.ID, 1)
		seen[w] = struct{}{}
	}

	for w := range seen {
		idx.df[w]++
	}
}

// keyword is a query word paired with its idf score.
type keyword struct {
	word string
	idf  float64
}

// idf computes log10(|documents| / df[w]). Callers must only invoke this
// for words already present in idx.words, since Insert only ever
// increments df for a word once it adds a posting for it, guaranteeing
// df[w] >= 1.
func (idx *TieredInvertedIndex) idf(word string) float64 {
	return math.Log10(float64(len(idx.documents)) / float64(idx.df[word]))
}

// tierHit accumulates coverage and weighted score for one id within a tier.
type tierHit struct {
	id       int64
	coverage float64
	weighted float64
}

// Search parses query into lowercase whitespace-separated words, drops any
// word absent from the index, and returns up to k place ids in relevance
// order: tier 0 dominates tier 1 dominates tier 2; within a tier, ids are
// ordered descending by (coverage, weighted).
func (idx *TieredInvertedIndex) Search(query string, k int) []int64 {
	if k <= 0 || query == "" {
		return nil
	}

	var keywords []keyword
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if _, ok := idx.words[w]; ok {
			keywords = append(keywords, keyword{word: w, idf: idx.idf(w)})
		}
	}
	if len(keywords) == 0 {
		return nil
	}

	// Order by idf descending (rare words first). Scoring is commutative,
	// so this only affects aggregation order, not the final ranking.
	sort.Slice(keywords, func(i, j int) bool { return keywords[i].idf > keywords[j].idf })

	emitted := make(map[int64]struct{})
	var result []int64

	for tier := 0; tier < tierCount; tier++ {
		hits := make(map[int64]*tierHit)
		for _, kw := range keywords {
			e, ok := idx.words[kw.word]
			if !ok {
				continue
			}
			for id, weight := range e.tiers[tier] {
				h, ok := hits[id]
				if !ok {
					h = &tierHit{id: id}
					hits[id] = h
				}
				h.coverage += kw.idf
				h.weighted += float64(weight) * kw.idf
			}
		}

		ordered := make([]*tierHit, 0, len(hits))
		for _, h := range hits {
			ordered = append(ordered, h)
		}
		sort.Slice(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			if a.coverage != b.coverage {
				return a.coverage > b.coverage
			}
			if a.weighted != b.weighted {
				return a.weighted > b.weighted
			}
			return a.id < b.id
		})

		for _, h := range ordered {
			if _, already := emitted[h.id]; already {
				continue
			}
			emitted[h.id] = struct{}{}
			result = append(result, h.id)
			if len(result) >= k {
				return result
			}
		}
	}

	return result
}
