package retrieval

import (
	"math"
	"sort"
)

// TermFrequency maps each token to its relative frequency within the list
// (count / total). Over nonempty input the values sum to 1.0 up to float
// rounding. Empty input yields an empty map.
func TermFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	if len(tokens) == 0 {
		return tf
	}
	for _, tok := range tokens {
		tf[tok]++
	}
	total := float64(len(tokens))
	for tok := range tf {
		tf[tok] /= total
	}
	return tf
}

// InverseDocumentFrequency computes ln(N/(1+df)) for every distinct token
// across docs, where N is the number of documents and df counts documents
// containing the token. A token present in all N documents gets
// ln(N/(N+1)) < 0, which down-weights universally common terms relative to
// rarer ones. That negative weight is load-bearing for score compatibility.
func InverseDocumentFrequency(docs [][]string) map[string]float64 {
	idf := make(map[string]float64)
	if len(docs) == 0 {
		return idf
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(docs))
	for tok, count := range df {
		idf[tok] = math.Log(n / (1 + float64(count)))
	}
	return idf
}

// Vector builds the sparse TF-IDF vector for a token list: weight =
// tf(token) * idf(token) for each token present, with repeats collapsing to
// a single key. Tokens absent from idf contribute zero weight rather than
// erroring.
func Vector(tokens []string, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(tokens))
	tf := TermFrequency(tokens)
	for _, tok := range tokens {
		vec[tok] = tf[tok] * idf[tok]
	}
	return vec
}

// CosineSimilarity scores two sparse vectors: the dot product over their
// shared keys divided by the product of their full magnitudes (each over
// all of its own keys, not just the intersection). Returns 0.0 when either
// magnitude is zero.
func CosineSimilarity(a, b map[string]float64) float64 {
	denom := magnitude(a) * magnitude(b)
	if denom == 0 {
		return 0.0
	}

	dot := 0.0
	for _, key := range sortedKeys(a) {
		if bv, ok := b[key]; ok {
			dot += a[key] * bv
		}
	}
	return dot / denom
}

func magnitude(v map[string]float64) float64 {
	sum := 0.0
	for _, key := range sortedKeys(v) {
		sum += v[key] * v[key]
	}
	return math.Sqrt(sum)
}

// sortedKeys fixes the float accumulation order so identical inputs always
// produce bit-identical scores regardless of map iteration order.
func sortedKeys(v map[string]float64) []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
