package retrieval

import "fmt"

// DefaultChunkSize is the rule-chunk window applied when a caller does not
// override it.
const DefaultChunkSize = 200

// Arena holds the chunked, tokenized form of a fixed rules corpus so
// repeated calls against the same corpus skip re-chunking and
// re-tokenizing. It is immutable after construction and safe for concurrent
// use. Scoring semantics match a fresh Retrieve call exactly: the IDF table
// is still rebuilt per query.
type Arena struct {
	chunkSize int
	chunks    []Chunk
	tokens    [][]string
}

// NewArena chunks every rule text with its parallel filename and
// pre-tokenizes the result. ruleTexts and ruleFilenames must have equal
// length.
func NewArena(ruleTexts, ruleFilenames []string, chunkSize int) (*Arena, error) {
	if len(ruleTexts) != len(ruleFilenames) {
		return nil, fmt.Errorf("rule texts and filenames must be parallel: %d texts, %d filenames", len(ruleTexts), len(ruleFilenames))
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	arena := &Arena{chunkSize: chunkSize}
	for i, text := range ruleTexts {
		for _, window := range ChunkText(text, chunkSize) {
			arena.chunks = append(arena.chunks, Chunk{
				Text:  window,
				File:  ruleFilenames[i],
				Index: len(arena.chunks),
			})
			arena.tokens = append(arena.tokens, Tokenize(window))
		}
	}
	return arena, nil
}

// Len reports the number of chunks held by the arena.
func (a *Arena) Len() int { return len(a.chunks) }

// ChunkSize reports the token window the arena was built with.
func (a *Arena) ChunkSize() int { return a.chunkSize }

// Retrieve scores every arena chunk against docText and returns the top k,
// highest similarity first. An empty arena or k <= 0 yields an empty
// result.
func (a *Arena) Retrieve(docText string, k int, status StatusFunc) []RankedChunk {
	if len(a.chunks) == 0 {
		return nil
	}

	docTokens := Tokenize(docText)
	docs := make([][]string, 0, len(a.tokens)+1)
	docs = append(docs, a.tokens...)
	docs = append(docs, docTokens)

	idf := InverseDocumentFrequency(docs)
	queryVec := Vector(docTokens, idf)

	selected := clampTopK(scoreChunks(queryVec, a.chunks, a.tokens, idf), k)
	if status != nil && len(selected) > 0 {
		files := make([]string, len(selected))
		for i, rc := range selected {
			files[i] = rc.Chunk.File
		}
		status("top %d relevant rule chunks identified from: %v", len(selected), files)
	}
	return selected
}
