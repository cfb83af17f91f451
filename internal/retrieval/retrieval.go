// Package retrieval implements TF-IDF vector-space retrieval over chunked
// rule corpora. There is no persistent index: every call rebuilds term
// weights over the rule chunks plus the query document, so chunk rarity is
// always measured against the document actually being checked. The scoring
// path is pure and deterministic, which keeps concurrent callers safe
// without locking.
package retrieval

// StatusFunc receives diagnostic progress lines from a retrieval call.
type StatusFunc func(format string, args ...any)

// Options control one retrieval call.
type Options struct {
	// ChunkSize is the token window applied to each rule text;
	// DefaultChunkSize when zero or negative.
	ChunkSize int
	// TopK is the number of chunks to return. Zero returns nothing; values
	// above the chunk count return everything ranked.
	TopK int
	// Status, when set, receives diagnostic lines such as the contributing
	// rule filenames. Scoring never depends on it.
	Status StatusFunc
}

// Retrieve chunks every rule text (tagged with its parallel filename),
// builds one shared IDF table over all chunks plus the query document,
// scores each chunk by cosine similarity against the query vector, and
// returns the top chunks in descending score order. An empty ruleTexts
// slice fails fast to an empty result.
func Retrieve(docText string, ruleTexts, ruleFilenames []string, opts Options) ([]RankedChunk, error) {
	if len(ruleTexts) == 0 {
		return nil, nil
	}
	arena, err := NewArena(ruleTexts, ruleFilenames, opts.ChunkSize)
	if err != nil {
		return nil, err
	}
	return arena.Retrieve(docText, opts.TopK, opts.Status), nil
}

// TopKRules returns the k highest-scoring rule chunk texts for docText,
// most relevant first. ruleTexts and ruleFilenames are parallel slices;
// filenames ride along for provenance and diagnostics only.
func TopKRules(docText string, ruleTexts, ruleFilenames []string, k int) ([]string, error) {
	return topKTexts(docText, ruleTexts, ruleFilenames, Options{TopK: k})
}

func topKTexts(docText string, ruleTexts, ruleFilenames []string, opts Options) ([]string, error) {
	ranked, err := Retrieve(docText, ruleTexts, ruleFilenames, opts)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(ranked))
	for i, rc := range ranked {
		texts[i] = rc.Chunk.Text
	}
	return texts, nil
}
