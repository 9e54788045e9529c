package knowledge

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
)

func newTestIngester(t *testing.T) (*Ingester, *Store) {
	t.Helper()
	store := NewStore(embedding.NewLocalEmbedder(64, "local-hash-v1"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewIngester(store, logger), store
}

func TestSplitPassages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "empty text",
			text: "",
			want: 0,
		},
		{
			name: "short fragment dropped",
			text: "Too short.",
			want: 0,
		},
		{
			name: "single paragraph",
			text: "Adults should drink roughly two liters of water per day to stay properly hydrated.",
			want: 1,
		},
		{
			name: "short paragraphs merged",
			text: strings.Repeat("Sleep seven to nine hours every night for recovery.\n\n", 4),
			want: 1,
		},
		{
			name: "long text split at paragraph boundaries",
			text: strings.Repeat("Regular aerobic exercise improves cardiovascular health and helps regulate sleep patterns over time.\n\n", 12),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitPassages(tt.text)
			assert.Len(t, got, tt.want)
			for _, p := range got {
				assert.GreaterOrEqual(t, len(p), minPassageLen)
			}
		})
	}
}

func TestIngestFile(t *testing.T) {
	ingester, store := newTestIngester(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	content := "Consistent bedtimes strengthen the circadian rhythm and improve sleep quality over weeks.\n\n" +
		"Morning sunlight exposure helps anchor the body's internal clock and boosts daytime energy."
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := ingester.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Source)
	assert.Positive(t, result.Passages)
	assert.Equal(t, result.Passages, store.Len())
}

func TestIngestFileMissing(t *testing.T) {
	ingester, _ := newTestIngester(t)

	_, err := ingester.IngestFile(context.Background(), "/nonexistent/notes.txt")
	assert.Error(t, err)
}

func TestIngestURL(t *testing.T) {
	ingester, store := newTestIngester(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<nav>Site navigation links</nav>
			<p>Staying hydrated supports concentration, energy levels, and healthy digestion throughout the day.</p>
			<p>Strength training twice a week preserves muscle mass and supports long-term metabolic health.</p>
		</body></html>`)
	}))
	defer srv.Close()

	result, err := ingester.IngestURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Positive(t, result.Passages)
	assert.Equal(t, result.Passages, store.Len())

	// only paragraph text was ingested
	passages, err := store.Search(context.Background(), "hydration", store.Len())
	require.NoError(t, err)
	for _, p := range passages {
		assert.NotContains(t, p, "navigation")
	}
}

func TestIngestURLNotFound(t *testing.T) {
	ingester, _ := newTestIngester(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := ingester.IngestURL(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestIngestRoutesBySource(t *testing.T) {
	ingester, store := newTestIngester(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path,
		[]byte("Daily walks of thirty minutes or more measurably lower resting heart rate over time."), 0o644))

	_, err := ingester.Ingest(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
