package retrieval

import "strings"

// ChunkText tokenizes text and partitions the tokens into consecutive
// non-overlapping windows of chunkSize, rejoining each window with single
// spaces. The final window may be shorter. Larger windows mean fewer chunks
// to score per call; 200 suits dense rule prose, 400 coarse corpora.
func ChunkText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return nil
	}
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(tokens); i += chunkSize {
		end := i + chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[i:end], " "))
	}
	return chunks
}
