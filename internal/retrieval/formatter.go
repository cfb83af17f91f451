package retrieval

import "strings"

// DedupeChunks drops repeated chunk texts (compared after trimming) while
// preserving first-seen order. Retrieval over overlapping rule sets often
// surfaces the same passage twice; downstream context should carry it once.
func DedupeChunks(chunks []string) []string {
	seen := make(map[string]struct{}, len(chunks))
	deduped := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		key := strings.TrimSpace(chunk)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, chunk)
	}
	return deduped
}

// NormalizeWhitespace collapses whitespace runs to single spaces and trims
// the ends. This shrinks prompt context without changing semantics.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// AssembleContext joins deduplicated chunks into one normalized context
// block. When the block exceeds charLimit, it falls back to the first
// fallbackChunks deduplicated chunks without re-scoring. Returns the block
// and the number of chunks included. charLimit <= 0 disables the cap.
func AssembleContext(chunks []string, charLimit, fallbackChunks int) (string, int) {
	deduped := DedupeChunks(chunks)
	text := NormalizeWhitespace(strings.Join(deduped, "\n\n"))
	used := len(deduped)

	if charLimit > 0 && len(text) > charLimit && fallbackChunks > 0 && fallbackChunks < used {
		text = NormalizeWhitespace(strings.Join(deduped[:fallbackChunks], "\n\n"))
		used = fallbackChunks
	}
	return text, used
}
