// Package screen runs the end-to-end screening pipeline: classify the
// document, pick the validation sets its type calls for, and retrieve the
// most relevant rule passages for each set.
package screen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tradesift/tradesift/internal/appconfig"
	"github.com/tradesift/tradesift/internal/doctype"
	"github.com/tradesift/tradesift/internal/retrieval"
	"github.com/tradesift/tradesift/internal/rules"
)

// SetResult is the retrieval outcome for one validation set.
type SetResult struct {
	// Rules is the rule filename the set was scored against.
	Rules string `json:"rules"`
	// Passages holds the ranked rule chunk texts, most relevant first.
	Passages []string `json:"passages"`
	// Context is the assembled, whitespace-normalized context block.
	Context string `json:"context"`
	// ChunksUsed is how many deduplicated passages Context includes.
	ChunksUsed int `json:"chunksUsed"`
}

// Report is the outcome of one screening run. Results follow the manifest
// order of the validation sets regardless of retrieval completion order.
type Report struct {
	Filename  string            `json:"filename"`
	Detection doctype.Detection `json:"detection"`
	Results   []SetResult       `json:"results"`
	// Missing lists rule files the manifest references but the corpus could
	// not load. Screening proceeds without them.
	Missing   []string `json:"missingRules,omitempty"`
	ElapsedMS int64    `json:"elapsedMs"`
}

// Screener wires the detector, the rules corpus, and memoized retrieval
// into one pipeline. Construct it once and reuse it; retrieval results are
// cached across runs.
type Screener struct {
	cfg    *appconfig.Config
	corpus *rules.Corpus
	memo   *retrieval.Memo

	// Status, when set, receives progress lines during a run.
	Status retrieval.StatusFunc
}

// New builds a Screener over an already loaded corpus.
func New(cfg *appconfig.Config, corpus *rules.Corpus) *Screener {
	return &Screener{
		cfg:    cfg,
		corpus: corpus,
		memo:   retrieval.NewMemo(cfg.CacheCapacity()),
	}
}

// Open loads the manifest and rule corpus named by the configuration and
// returns a Screener over them.
func Open(cfg *appconfig.Config) (*Screener, error) {
	manifest, err := rules.LoadManifest(cfg.RulesManifestPath())
	if err != nil {
		return nil, fmt.Errorf("load rules manifest: %w", err)
	}
	corpus, err := rules.LoadCorpus(cfg.RulesDirPath(), manifest)
	if err != nil {
		return nil, fmt.Errorf("load rules corpus: %w", err)
	}
	return New(cfg, corpus), nil
}

// Corpus exposes the loaded rule corpus for listing and diagnostics.
func (s *Screener) Corpus() *rules.Corpus { return s.corpus }

// Screen classifies content, fans retrieval out over the matching
// validation sets on a bounded worker pool, and reassembles the per-set
// results in manifest order. A document with no confident type match is
// screened against the general rules only. Cancelling ctx stops the fan-out
// and returns the error with whatever completed.
func (s *Screener) Screen(ctx context.Context, filename, content string) (Report, error) {
	start := time.Now()

	det := doctype.Detect(content)
	s.statusf("document type: %s (score %d)", det.Type, det.Score)

	sets := s.corpus.SetsFor(det.Type)
	report := Report{
		Filename:  filename,
		Detection: det,
		Missing:   s.corpus.Missing(),
	}
	if len(sets) == 0 {
		report.ElapsedMS = time.Since(start).Milliseconds()
		return report, nil
	}
	s.statusf("screening against %d validation sets", len(sets))

	type indexed struct {
		idx    int
		result SetResult
		err    error
	}

	jobs := make(chan int)
	out := make(chan indexed, len(sets))

	workers := s.cfg.Workers(len(sets))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result, err := s.screenSet(content, sets[idx])
				out <- indexed{idx: idx, result: result, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range sets {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(out)

	results := make([]SetResult, len(sets))
	done := make([]bool, len(sets))
	for r := range out {
		if r.err != nil {
			s.statusf("set %s failed: %v", sets[r.idx].Filename, r.err)
			continue
		}
		results[r.idx] = r.result
		done[r.idx] = true
	}
	for i := range sets {
		if done[i] {
			report.Results = append(report.Results, results[i])
		}
	}

	report.ElapsedMS = time.Since(start).Milliseconds()
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// screenSet retrieves the top passages for one validation set and assembles
// their context block. Each set is scored on its own: chunk rarity is
// measured within the set's rule file, the way reviewers read one rulebook
// at a time.
func (s *Screener) screenSet(content string, set rules.RuleSet) (SetResult, error) {
	passages, err := s.memo.TopKRules(
		content,
		[]string{set.Text},
		[]string{set.Filename},
		retrieval.Options{
			ChunkSize: s.cfg.ChunkWindow(),
			TopK:      s.cfg.TopKChunks(),
			Status:    s.Status,
		},
	)
	if err != nil {
		return SetResult{}, err
	}

	contextText, used := retrieval.AssembleContext(passages, s.cfg.ContextLimit(), s.cfg.ContextFallback())
	return SetResult{
		Rules:      set.Filename,
		Passages:   passages,
		Context:    contextText,
		ChunksUsed: used,
	}, nil
}

func (s *Screener) statusf(format string, args ...any) {
	if s.Status != nil {
		s.Status(format, args...)
	}
}
