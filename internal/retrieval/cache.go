package retrieval

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
)

// Memo is a bounded LRU cache in front of TopKRules. The scoring path is
// pure, so identical inputs are idempotent and a hit can be served without
// re-scoring. A nil Memo or zero capacity calls straight through.
type Memo struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

type memoEntry struct {
	key   string
	rules []string
}

// NewMemo returns a memo bounded to capacity entries. capacity <= 0 yields
// a pass-through memo that never caches.
func NewMemo(capacity int) *Memo {
	if capacity <= 0 {
		return &Memo{}
	}
	return &Memo{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// TopKRules serves the top-k rule chunk texts through the cache, keyed by a
// hash of the query, the corpus, and the options that shape scoring. Hits
// skip scoring entirely, so opts.Status only fires on misses.
func (m *Memo) TopKRules(docText string, ruleTexts, ruleFilenames []string, opts Options) ([]string, error) {
	if m == nil || m.capacity <= 0 {
		return topKTexts(docText, ruleTexts, ruleFilenames, opts)
	}

	key := memoKey(docText, ruleTexts, ruleFilenames, opts)
	if rules, ok := m.lookup(key); ok {
		return rules, nil
	}

	rules, err := topKTexts(docText, ruleTexts, ruleFilenames, opts)
	if err != nil {
		return nil, err
	}
	// Store a private copy so the entry stays intact if the caller mutates
	// the returned slice.
	cached := make([]string, len(rules))
	copy(cached, rules)
	m.store(key, cached)
	return rules, nil
}

// Len reports the number of cached entries.
func (m *Memo) Len() int {
	if m == nil || m.order == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memo) lookup(key string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return nil, false
	}
	m.order.MoveToFront(elem)

	entry := elem.Value.(*memoEntry)
	rules := make([]string, len(entry.rules))
	copy(rules, entry.rules)
	return rules, true
}

func (m *Memo) store(key string, rules []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.order.MoveToFront(elem)
		elem.Value.(*memoEntry).rules = rules
		return
	}

	m.items[key] = m.order.PushFront(&memoEntry{key: key, rules: rules})
	for m.order.Len() > m.capacity {
		oldest := m.order.Back()
		if oldest == nil {
			break
		}
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(*memoEntry).key)
	}
}

// memoKey hashes the input tuple with length and count prefixes so adjacent
// fields can never collide by concatenation. The chunk size is normalized
// before hashing so the zero value and an explicit default share an entry.
func memoKey(docText string, ruleTexts, ruleFilenames []string, opts Options) string {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	h := sha256.New()
	field := func(s string) {
		fmt.Fprintf(h, "%d:", len(s))
		io.WriteString(h, s)
	}

	field(docText)
	fmt.Fprintf(h, "texts=%d:", len(ruleTexts))
	for _, text := range ruleTexts {
		field(text)
	}
	fmt.Fprintf(h, "files=%d:", len(ruleFilenames))
	for _, name := range ruleFilenames {
		field(name)
	}
	fmt.Fprintf(h, "chunk=%d:k=%d", chunkSize, opts.TopK)

	return hex.EncodeToString(h.Sum(nil))
}
