package retrieval

import "sort"

// scoreChunks computes each candidate's cosine similarity against the query
// vector and sorts descending by score, breaking ties by original chunk
// index so equal scores never reorder between calls.
func scoreChunks(queryVec map[string]float64, chunks []Chunk, chunkTokens [][]string, idf map[string]float64) []RankedChunk {
	ranked := make([]RankedChunk, 0, len(chunks))
	for i, c := range chunks {
		vec := Vector(chunkTokens[i], idf)
		ranked = append(ranked, RankedChunk{
			Chunk: c,
			Score: CosineSimilarity(queryVec, vec),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Chunk.Index < ranked[j].Chunk.Index
	})

	return ranked
}

// clampTopK bounds k to [0, len(ranked)] and returns the leading slice.
// k at or above the candidate count returns every candidate ranked.
func clampTopK(ranked []RankedChunk, k int) []RankedChunk {
	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
