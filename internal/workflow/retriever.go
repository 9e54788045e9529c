package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/erandawijewantha/personalized-health-coach/internal/ontology"
)

const (
	// maxQueryTerms caps the search terms extracted from the analysis.
	maxQueryTerms = 5

	// maxContextItems caps the assembled context to avoid prompt bloat.
	maxContextItems = 10

	// knowledgeTopK is how many passages the knowledge search returns.
	knowledgeTopK = 3

	// maxRelationsPerDirection caps listed ontology neighbors per line.
	maxRelationsPerDirection = 3
)

// fallbackQueryTerms is used when term extraction fails.
var fallbackQueryTerms = []string{"hydration", "sleep", "exercise"}

// KnowledgeSearcher is the retrieval surface of the knowledge store.
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// Retriever runs the second pipeline stage: extract search terms from
// the analysis, query knowledge and ontology in parallel, and assemble
// the context entries for the recommender. Retrieval failures degrade
// to missing context, they never abort the run.
type Retriever struct {
	client Completer
	store  KnowledgeSearcher
	graph  *ontology.Graph
	logger *slog.Logger
	topK   int
}

// RetrieverOption configures optional retriever behavior.
type RetrieverOption func(*Retriever)

// WithTopK overrides how many knowledge passages a search returns.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// NewRetriever creates a retriever over the given knowledge store and
// concept graph.
func NewRetriever(client Completer, store KnowledgeSearcher, graph *ontology.Graph, logger *slog.Logger, opts ...RetrieverOption) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Retriever{client: client, store: store, graph: graph, logger: logger, topK: knowledgeTopK}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve executes Reason -> Act -> Observe on the state.
func (r *Retriever) Retrieve(ctx context.Context, state *State) error {
	r.logger.Info("retriever started", "user_id", state.UserID)

	terms := r.reason(ctx, state)
	state.trace("[Retriever-Reason] Query terms: " + strings.Join(terms, ", "))

	docs, relations := r.act(ctx, terms)
	state.trace(fmt.Sprintf("[Retriever-Act] Retrieved %d knowledge docs, ontology data", len(docs)))

	state.RetrievedContext = buildContext(docs, terms, relations)
	state.trace(fmt.Sprintf("[Retriever-Observe] Filtered to %d relevant items", len(state.RetrievedContext)))

	r.logger.Info("retriever completed", "user_id", state.UserID)
	return nil
}

func (r *Retriever) reason(ctx context.Context, state *State) []string {
	response, err := r.client.CompleteText(ctx, retrieverReasonPrompt(state.Analysis, state.Query))
	if err != nil {
		r.logger.Error("term extraction failed, using fallback terms", "error", err)
		return fallbackQueryTerms
	}

	var terms []string
	for _, raw := range strings.Split(response, ",") {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" {
			continue
		}
		terms = append(terms, term)
		if len(terms) == maxQueryTerms {
			break
		}
	}

	if len(terms) == 0 {
		return fallbackQueryTerms
	}
	return terms
}

// conceptRelations holds the ontology neighborhoods for one term.
type conceptRelations struct {
	influences   []string
	influencedBy []string
}

// act queries the knowledge store and the ontology concurrently. Either
// source failing yields an empty result for that source only.
func (r *Retriever) act(ctx context.Context, terms []string) ([]string, map[string]conceptRelations) {
	var (
		docs      []string
		relations map[string]conceptRelations
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := strings.Join(terms, " ")
		found, err := r.store.Search(ctx, query, r.topK)
		if err != nil {
			r.logger.Error("knowledge search failed", "error", err)
			return nil
		}
		docs = found
		return nil
	})

	g.Go(func() error {
		relations = r.queryOntology(terms)
		return nil
	})

	// Goroutines never return errors; failures are downgraded above.
	_ = g.Wait()

	return docs, relations
}

func (r *Retriever) queryOntology(terms []string) map[string]conceptRelations {
	relations := make(map[string]conceptRelations, len(terms))
	for _, term := range terms {
		if !r.graph.Contains(term) {
			continue
		}
		relations[term] = conceptRelations{
			influences:   r.graph.Successors(term),
			influencedBy: r.graph.Predecessors(term),
		}
	}
	return relations
}

// buildContext assembles the ordered context entries: knowledge passages
// first, then ontology lines per term in query order.
func buildContext(docs []string, terms []string, relations map[string]conceptRelations) []string {
	context := make([]string, 0, len(docs))

	for _, doc := range docs {
		context = append(context, "[Knowledge] "+doc)
	}

	for _, term := range terms {
		rel, ok := relations[term]
		if !ok {
			continue
		}
		if len(rel.influences) > 0 {
			context = append(context, fmt.Sprintf("[Ontology] %s affects: %s",
				term, strings.Join(firstN(rel.influences, maxRelationsPerDirection), ", ")))
		}
		if len(rel.influencedBy) > 0 {
			context = append(context, fmt.Sprintf("[Ontology] %s influenced by: %s",
				term, strings.Join(firstN(rel.influencedBy, maxRelationsPerDirection), ", ")))
		}
	}

	if len(context) > maxContextItems {
		context = context[:maxContextItems]
	}
	return context
}
