// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/halaqa-discovery/internal/logging"
)

// fakeSynonyms counts lookups and fails or panics for selected terms.
type fakeSynonyms struct {
	exact   map[string][]string
	partial map[string][]string
	fail    map[string]bool
	panics  map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeSynonyms) record(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[term]++
}

func (f *fakeSynonyms) callCount(term string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[term]
}

func (f *fakeSynonyms) Lookup(_ context.Context, term string) ([]string, error) {
	f.record(term)
	if f.panics[term] {
		panic("lookup exploded")
	}
	if f.fail[term] {
		return nil, errors.New("synonym store down")
	}
	return f.exact[term], nil
}

func (f *fakeSynonyms) LookupPartial(_ context.Context, term string) ([]string, error) {
	return f.partial[term], nil
}

type fakeHistory struct {
	results []string
	err     error

	mu         sync.Mutex
	calls      int
	lastPrefix string
	lastLimit  int
}

func (f *fakeHistory) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastPrefix = prefix
	f.lastLimit = limit
	return f.results, f.err
}

func newTestProcessor(t *testing.T, synonyms SynonymSource, history HistorySource) *Processor {
	t.Helper()
	p, err := New(DefaultConfig(), synonyms, history, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestProcess_OperatorExample(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t, StaticSynonyms{"quran": {"qur'an", "koran"}}, nil)
	pq := p.Process(context.Background(), `+quran -tafsir "five pillars"`)

	if !reflect.DeepEqual(pq.Operators.Inclusions, []string{"quran"}) {
		t.Errorf("inclusions = %q", pq.Operators.Inclusions)
	}
	if !reflect.DeepEqual(pq.Operators.Exclusions, []string{"tafsir"}) {
		t.Errorf("exclusions = %q", pq.Operators.Exclusions)
	}
	if !reflect.DeepEqual(pq.Operators.ExactPhrases, []string{"five pillars"}) {
		t.Errorf("phrases = %q", pq.Operators.ExactPhrases)
	}
	if !strings.Contains(pq.ExpandedQuery, "(quran OR qur'an OR koran)") {
		t.Errorf("expanded = %q", pq.ExpandedQuery)
	}
	if want := "'five' <-> 'pillars' & 'quran' & !'tafsir'"; pq.BooleanQuery != want {
		t.Errorf("boolean = %q, want %q", pq.BooleanQuery, want)
	}
	if !pq.Metadata.HasOperators || !pq.Metadata.HasSynonyms || !pq.Metadata.HasFuzzy {
		t.Errorf("metadata = %+v", pq.Metadata)
	}
	if pq.Metadata.Complexity != ComplexityMedium {
		t.Errorf("complexity = %s, want medium", pq.Metadata.Complexity)
	}
	if len(pq.DetectedCategories) == 0 || pq.DetectedCategories[0] != "quran" {
		t.Errorf("categories = %q", pq.DetectedCategories)
	}
	if len(pq.SearchTerms) != 0 {
		t.Errorf("search terms = %q, want none", pq.SearchTerms)
	}
	if pq.Language != LanguageEnglish {
		t.Errorf("language = %s", pq.Language)
	}
}

func TestProcess_PhraseWordsExcludedFromTerms(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t, nil, nil)
	for _, raw := range []string{`"alpha beta"`, `gamma "alpha beta" alpha`, `beta "alpha beta"`} {
		pq := p.Process(context.Background(), raw)
		if !reflect.DeepEqual(pq.Operators.ExactPhrases, []string{"alpha beta"}) {
			t.Errorf("%q: phrases = %q", raw, pq.Operators.ExactPhrases)
		}
		for _, term := range pq.SearchTerms {
			if term == "alpha" || term == "beta" {
				t.Errorf("%q: phrase word %q in search terms", raw, term)
			}
		}
	}
}

func TestProcess_NoPositiveTerms(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t, DefaultSynonyms(), nil)

	pq := p.Process(context.Background(), "-music")
	if pq.ExpandedQuery != "-music" {
		t.Errorf("expanded = %q, want original", pq.ExpandedQuery)
	}
	if pq.FuzzyQuery != nil {
		t.Errorf("fuzzy = %+v, want nil", pq.FuzzyQuery)
	}

	empty := p.Process(context.Background(), "")
	if empty.ExpandedQuery != "" || empty.BooleanQuery != "" || empty.Metadata.Complexity != ComplexitySimple {
		t.Errorf("empty query = %+v", empty)
	}
	if empty.DetectedCategories == nil || empty.SearchTerms == nil {
		t.Error("empty query should carry empty, non-nil lists")
	}
}

func TestProcess_SynonymFailureIsolation(t *testing.T) {
	t.Parallel()

	src := &fakeSynonyms{
		exact:  map[string][]string{"prayer": {"salah"}, "fasting": {"sawm"}},
		fail:   map[string]bool{"zakat": true},
		panics: map[string]bool{"hajj": true},
	}
	p := newTestProcessor(t, src, nil)

	pq := p.Process(context.Background(), "prayer zakat hajj fasting")
	want := "(prayer OR salah) AND zakat AND hajj AND (fasting OR sawm)"
	if pq.ExpandedQuery != want {
		t.Errorf("expanded = %q, want %q", pq.ExpandedQuery, want)
	}
	if pq.Metadata.Degraded {
		t.Error("a failing term must not degrade the whole query")
	}
}

func TestProcess_SynonymCache(t *testing.T) {
	t.Parallel()

	src := &fakeSynonyms{
		exact: map[string][]string{"prayer": {"salah"}},
		fail:  map[string]bool{"zakat": true},
	}
	p := newTestProcessor(t, src, nil)

	for i := 0; i < 3; i++ {
		p.Process(context.Background(), "prayer zakat")
	}
	if n := src.callCount("prayer"); n != 1 {
		t.Errorf("prayer looked up %d times, want 1", n)
	}
	if n := src.callCount("zakat"); n != 3 {
		t.Errorf("failed lookups should not be cached: zakat looked up %d times, want 3", n)
	}
}

func TestProcess_PartialFallback(t *testing.T) {
	t.Parallel()

	src := &fakeSynonyms{
		exact:   map[string][]string{"wudu": {"ablution"}},
		partial: map[string][]string{"wud": {"wudu", "Ablution", "wud", ""}},
	}
	p := newTestProcessor(t, src, nil)

	pq := p.Process(context.Background(), "wud")
	if want := []string{"wudu", "ablution"}; !reflect.DeepEqual(pq.Synonyms["wud"], want) {
		t.Errorf("synonyms = %q, want %q", pq.Synonyms["wud"], want)
	}
}

func TestProcess_Degrades(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t, nil, nil)
	p.categories = nil

	pq := p.Process(context.Background(), "prayer times in ramadan")
	if !pq.Metadata.Degraded {
		t.Fatal("expected degraded result")
	}
	if pq.ExpandedQuery != pq.OriginalQuery || pq.Metadata.Complexity != ComplexitySimple || len(pq.DetectedCategories) != 0 {
		t.Errorf("minimal result = %+v", pq)
	}
}

func TestProcess_Arabic(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t, nil, nil)
	pq := p.Process(context.Background(), "صلاة الفجر")
	if pq.Language != LanguageArabic {
		t.Errorf("language = %s", pq.Language)
	}
	if len(pq.DetectedCategories) == 0 || pq.DetectedCategories[0] != "prayer" {
		t.Errorf("categories = %q", pq.DetectedCategories)
	}
}

func TestOptimize(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t, nil, nil)

	pq := p.Process(context.Background(), "what is the ruling about fasting while travelling")
	if pq.Metadata.Complexity != ComplexityComplex {
		t.Fatalf("pre-optimize complexity = %s", pq.Metadata.Complexity)
	}
	opt := p.Optimize(pq)
	if want := []string{"ruling", "fasting", "while", "travelling"}; !reflect.DeepEqual(opt.SearchTerms, want) {
		t.Errorf("optimized terms = %q, want %q", opt.SearchTerms, want)
	}
	if opt.Metadata.Complexity != ComplexityMedium {
		t.Errorf("optimized complexity = %s, want medium", opt.Metadata.Complexity)
	}
	if len(pq.SearchTerms) != 6 {
		t.Error("Optimize modified its input")
	}

	long := p.Process(context.Background(), "t1 t2 t3 t4 t5 t6 t7 t8 t9 t10 t11 t12")
	if got := p.Optimize(long).SearchTerms; len(got) != 10 {
		t.Errorf("capped terms = %d, want 10", len(got))
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	t.Run("short prefix", func(t *testing.T) {
		t.Parallel()
		h := &fakeHistory{results: []string{"quran"}}
		p := newTestProcessor(t, nil, h)
		if got := p.Suggest(context.Background(), " q ", 5); len(got) != 0 || h.calls != 0 {
			t.Errorf("got %q after %d calls", got, h.calls)
		}
	})

	t.Run("dedup and limit", func(t *testing.T) {
		t.Parallel()
		h := &fakeHistory{results: []string{"quran tafsir", "Quran Tafsir", "quran recitation", "", "quran memorization"}}
		p := newTestProcessor(t, nil, h)
		got := p.Suggest(context.Background(), "QU", 2)
		if want := []string{"quran tafsir", "quran recitation"}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %q, want %q", got, want)
		}
		if h.lastPrefix != "qu" || h.lastLimit != 2 {
			t.Errorf("history called with (%q, %d)", h.lastPrefix, h.lastLimit)
		}
	})

	t.Run("limit defaults and caps", func(t *testing.T) {
		t.Parallel()
		h := &fakeHistory{}
		p := newTestProcessor(t, nil, h)
		p.Suggest(context.Background(), "qu", 0)
		if h.lastLimit != 10 {
			t.Errorf("default limit = %d", h.lastLimit)
		}
		p.Suggest(context.Background(), "qu", 1000)
		if h.lastLimit != 50 {
			t.Errorf("capped limit = %d", h.lastLimit)
		}
	})

	t.Run("history failure", func(t *testing.T) {
		t.Parallel()
		p := newTestProcessor(t, nil, &fakeHistory{err: errors.New("badger closed")})
		if got := p.Suggest(context.Background(), "qu", 5); got == nil || len(got) != 0 {
			t.Errorf("got %#v, want empty list", got)
		}
	})

	t.Run("no history", func(t *testing.T) {
		t.Parallel()
		p := newTestProcessor(t, nil, nil)
		if got := p.Suggest(context.Background(), "qu", 5); len(got) != 0 {
			t.Errorf("got %q", got)
		}
	})
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.FuzzyThreshold = 0
	if _, err := New(cfg, nil, nil, logging.NewTestLogger(io.Discard)); err == nil {
		t.Error("expected error")
	}
}
