package retrieval

// Chunk is one window of rule text tagged with the file it came from.
// Index is the chunk's position in corpus order and doubles as the
// deterministic tie-break key during ranking.
type Chunk struct {
	Text  string
	File  string
	Index int
}

// RankedChunk is a chunk plus its similarity score against the query document.
type RankedChunk struct {
	Chunk Chunk
	Score float64
}
