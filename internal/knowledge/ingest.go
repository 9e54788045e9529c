package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

const (
	// maxPassageLen caps merged paragraph passages. Longer texts are
	// split at paragraph boundaries to keep embeddings focused.
	maxPassageLen = 500

	// minPassageLen drops fragments too short to carry meaning.
	minPassageLen = 40

	fetchTimeout = 30 * time.Second
)

// Ingester adds supplemental health content to the passage store.
// Sources are plain-text files or web articles; HTML is reduced to its
// paragraph text before chunking.
type Ingester struct {
	store  *Store
	client *http.Client
	logger *slog.Logger
}

// IngestResult reports what one source contributed.
type IngestResult struct {
	Source   string `json:"source"`
	Passages int    `json:"passages"`
}

func NewIngester(store *Store, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{
		store:  store,
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// Ingest routes a source to file or URL ingestion.
func (i *Ingester) Ingest(ctx context.Context, source string) (*IngestResult, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return i.IngestURL(ctx, source)
	}
	return i.IngestFile(ctx, source)
}

// IngestFile reads a plain-text file and stores its passages.
func (i *Ingester) IngestFile(ctx context.Context, path string) (*IngestResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.RETRIEVAL_STORE_FAILED, "failed to read source file", err)
	}
	return i.IngestText(ctx, string(raw), path)
}

// IngestURL fetches a web page, extracts its paragraph text, and stores
// the passages.
func (i *Ingester) IngestURL(ctx context.Context, url string) (*IngestResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, types.WrapError(types.RETRIEVAL_STORE_FAILED, "invalid source URL", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, types.WrapRetryableError(types.RETRIEVAL_STORE_FAILED, "failed to fetch source URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewError(types.RETRIEVAL_STORE_FAILED,
			fmt.Sprintf("source URL returned status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, types.WrapError(types.RETRIEVAL_STORE_FAILED, "failed to parse source HTML", err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return i.IngestText(ctx, strings.Join(paragraphs, "\n\n"), url)
}

// IngestText chunks raw text into passages and stores them. Text shorter
// than the minimum passage length contributes nothing.
func (i *Ingester) IngestText(ctx context.Context, text, source string) (*IngestResult, error) {
	passages := splitPassages(text)
	if len(passages) == 0 {
		i.logger.Warn("source produced no passages", "source", source)
		return &IngestResult{Source: source}, nil
	}

	if err := i.store.Add(ctx, passages); err != nil {
		return nil, err
	}

	i.logger.Info("ingested source", "source", source, "passages", len(passages))
	return &IngestResult{Source: source, Passages: len(passages)}, nil
}

// splitPassages splits text at blank lines, merging adjacent paragraphs
// up to the passage cap and dropping fragments below the minimum length.
func splitPassages(text string) []string {
	var passages []string
	var current strings.Builder

	flush := func() {
		p := strings.TrimSpace(current.String())
		current.Reset()
		if len(p) >= minPassageLen {
			passages = append(passages, p)
		}
	}

	for _, block := range strings.Split(text, "\n\n") {
		para := strings.TrimSpace(block)
		if para == "" {
			continue
		}
		para = strings.Join(strings.Fields(para), " ")

		if current.Len() > 0 && current.Len()+len(para) > maxPassageLen {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(para)

		if current.Len() >= maxPassageLen {
			flush()
		}
	}
	flush()

	return passages
}
