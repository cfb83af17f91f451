package retrieval

import (
	"reflect"
	"testing"
)

func TestChunkText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		chunkSize int
		want      []string
	}{
		{
			name:      "partitions into fixed windows",
			text:      "one two three four five six seven",
			chunkSize: 3,
			want:      []string{"one two three", "four five six", "seven"},
		},
		{
			name:      "single window when text fits",
			text:      "short rule text",
			chunkSize: 50,
			want:      []string{"short rule text"},
		},
		{
			name:      "normalizes case and punctuation",
			text:      "Bill of Lading: original, endorsed.",
			chunkSize: 4,
			want:      []string{"bill of lading original", "endorsed"},
		},
		{
			name:      "empty text has no chunks",
			text:      "   ",
			chunkSize: 10,
			want:      nil,
		},
		{
			name:      "non-positive window has no chunks",
			text:      "some text",
			chunkSize: 0,
			want:      nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ChunkText(tt.text, tt.chunkSize); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ChunkText(%q,%d)=%v want %v", tt.text, tt.chunkSize, got, tt.want)
			}
		})
	}
}
