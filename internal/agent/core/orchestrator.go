package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ydovzhyk/insight-agent/config"
	"github.com/ydovzhyk/insight-agent/internal/helpers"
	"github.com/ydovzhyk/insight-agent/internal/memory"
	"github.com/ydovzhyk/insight-agent/internal/telemetry"
	"github.com/ydovzhyk/insight-agent/provider"
	"github.com/ydovzhyk/insight-agent/provider/models"
	"github.com/ydovzhyk/insight-agent/tools/semantic"
	semanticmodels "github.com/ydovzhyk/insight-agent/tools/semantic/models"
	"github.com/ydovzhyk/insight-agent/tools/web_fetch"
	"github.com/ydovzhyk/insight-agent/tools/web_search"
	searchmodels "github.com/ydovzhyk/insight-agent/tools/web_search/models"
)

// Orchestrator wires the retrieval fan-out to the synthesizer: it gathers
// evidence from the search, semantic and memory providers concurrently,
// fetches page text for every candidate URL, and hands the merged evidence
// to the generation provider. Providers are constructed once at startup
// and shared across requests; the orchestrator holds no per-request state.
type Orchestrator struct {
	llm      provider.Provider
	searcher web_search.WebSearcher
	semantic semantic.ContentProvider
	fetcher  web_fetch.WebFetcher
	gate     *memory.Gate

	logger    *log.Logger
	telemetry *telemetry.Telemetry

	answerModel  string
	streamModel  string
	auxModel     string
	fetchWorkers int

	now func() time.Time
}

func NewOrchestrator(cfg *config.Config, llm provider.Provider, searcher web_search.WebSearcher, contents semantic.ContentProvider, fetcher web_fetch.WebFetcher, gate *memory.Gate, logger *log.Logger, tele *telemetry.Telemetry) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	}
	return &Orchestrator{
		llm:          llm,
		searcher:     searcher,
		semantic:     contents,
		fetcher:      fetcher,
		gate:         gate,
		logger:       logger,
		telemetry:    tele,
		answerModel:  cfg.LLM.AnswerModel,
		streamModel:  cfg.LLM.StreamModel,
		auxModel:     cfg.LLM.AuxiliaryModel,
		fetchWorkers: cfg.Fetch.Workers,
		now:          time.Now,
	}
}

// gathered holds everything the fan-out produced for one request.
type gathered struct {
	exactURL string
	records  []memory.Record
	memText  string
	search   searchmodels.Response
	semantic semanticmodels.Response
	evidence []EvidenceItem
	docs     []FetchedDocument
}

// gather runs the initial provider fan-out concurrently, then aggregates
// and fetches. Search and semantic failures degrade to empty results; the
// memory gate is fail-soft on its own. Fetching starts only after every
// contributing call has resolved, and synthesis input is complete once
// gather returns.
func (o *Orchestrator) gather(ctx context.Context, userID, prompt string) gathered {
	g := gathered{exactURL: helpers.FirstURL(prompt)}

	query := prompt
	if g.exactURL != "" {
		query = g.exactURL
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		g.records = o.gate.Lookup(ctx, prompt, userID)
	}()

	if o.searcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := o.searcher.Search(ctx, query)
			o.telemetry.RecordProviderCall("search", err)
			if err != nil {
				o.logger.Printf("search error: %v", err)
				return
			}
			g.search = resp
		}()
	}

	if o.semantic != nil && g.exactURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := o.semantic.Contents(ctx, []string{g.exactURL})
			o.telemetry.RecordProviderCall("semantic", err)
			if err != nil {
				o.logger.Printf("semantic contents error: %v", err)
				return
			}
			g.semantic = resp
		}()
	}

	wg.Wait()

	g.memText = memory.Join(g.records)
	g.evidence = CollectEvidence(prompt, g.exactURL, &g.search, &g.semantic, g.records)
	g.docs = FetchDocuments(ctx, o.fetcher, g.evidence, o.fetchWorkers)
	return g
}

// memoryNotes runs the relevance filter over recalled memory. The filter is
// skipped when there is no memory; once memory is known to exist, a filter
// failure propagates rather than silently dropping it.
func (o *Orchestrator) memoryNotes(ctx context.Context, prompt string, g gathered) (string, error) {
	if g.memText == memory.NoMemorySentinel {
		return g.memText, nil
	}
	filtered, err := o.filterMemory(ctx, prompt, g.memText)
	if err != nil {
		return "", fmt.Errorf("memory filter: %w", err)
	}
	return filtered, nil
}

// Answer runs the blocking path: fan-out, fetch, synthesize, persist,
// reply. The memory write happens before returning but its failure never
// blocks the reply.
func (o *Orchestrator) Answer(ctx context.Context, userID, prompt string) (string, error) {
	reqID := uuid.NewString()[:8]
	t0 := time.Now()

	g := o.gather(ctx, userID, prompt)
	o.logger.Printf("[%s] gathered %d evidence urls (%d docs) for user %s", reqID, len(g.evidence), len(g.docs), userID)

	notes, err := o.memoryNotes(ctx, prompt, g)
	if err != nil {
		return "", err
	}

	msgs := []models.Message{{Role: "user", Content: buildSourceMessage(prompt, notes, g)}}
	reply, err := o.llm.Complete(ctx, analystSystemPrompt(o.now()), msgs, models.Options{
		Model:       o.answerModel,
		Temperature: 0.7,
	})
	o.telemetry.RecordProviderCall("llm", err)
	if err != nil {
		return "", fmt.Errorf("synthesis: %w", err)
	}

	o.gate.Remember(ctx, userID, prompt, reply)
	o.logger.Printf("[%s] answered in %s", reqID, time.Since(t0).Round(time.Millisecond))
	return reply, nil
}

// StreamEvent is one unit of a streamed answer: a token, or a terminal
// error. The channel closes after the last event.
type StreamEvent struct {
	Token string
	Err   error
}

// AnswerStream runs the streaming path. The returned channel starts
// yielding tokens as the model produces them; the full text accumulates in
// the background and is persisted after the stream drains. Generation and
// persistence run on a context detached from the request, so a client
// disconnect stops token delivery but the turn is still completed and
// remembered - a partial read on the client side does not waste the
// exchange.
func (o *Orchestrator) AnswerStream(ctx context.Context, userID, prompt string) (<-chan StreamEvent, error) {
	reqID := uuid.NewString()[:8]

	g := o.gather(ctx, userID, prompt)
	o.logger.Printf("[%s] gathered %d evidence urls for user %s (stream)", reqID, len(g.evidence), userID)

	notes, err := o.memoryNotes(ctx, prompt, g)
	if err != nil {
		return nil, err
	}

	msgs := []models.Message{{Role: "user", Content: buildSourceMessage(prompt, notes, g)}}
	genCtx := context.WithoutCancel(ctx)
	stream, err := o.llm.CompleteStream(genCtx, searchSystemPrompt(o.now()), msgs, models.Options{
		Model:       o.streamModel,
		Temperature: 0.4,
	})
	o.telemetry.RecordProviderCall("llm", err)
	if err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}

	events := make(chan StreamEvent)
	go func() {
		defer close(events)
		defer stream.Close()

		var full strings.Builder
		for {
			tok, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				o.logger.Printf("[%s] stream error: %v", reqID, err)
				select {
				case events <- StreamEvent{Err: err}:
				case <-ctx.Done():
				}
				break
			}
			full.WriteString(tok)
			select {
			case events <- StreamEvent{Token: tok}:
			case <-ctx.Done():
				// Client gone; keep draining so the turn still persists.
			}
		}

		if full.Len() > 0 {
			// Detached: the write starts only after the stream drained,
			// but the response lifecycle never waits on it.
			go o.gate.Remember(genCtx, userID, prompt, full.String())
		}
	}()
	return events, nil
}

// buildSourceMessage assembles the user message handed to the synthesizer:
// the request itself plus every piece of gathered source data. Error and
// empty documents are excluded from the page-text section.
func buildSourceMessage(prompt, memoryNotes string, g gathered) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User request: %q\n\n", prompt)
	b.WriteString("Here is all available source data. Use it all to form your response:\n\n")

	fmt.Fprintf(&b, "Memory Notes:\n%s\n\n", memoryNotes)
	fmt.Fprintf(&b, "Search Summary:\n%s\n\n", g.search.Answer)

	if len(g.semantic.Results) > 0 {
		if enc, err := json.MarshalIndent(g.semantic.Results[0], "", "  "); err == nil {
			fmt.Fprintf(&b, "Semantic Result (1st item):\n%s\n\n", enc)
		}
	}

	b.WriteString("Extracted Page Texts:\n")
	n := 0
	for _, doc := range g.docs {
		if !doc.Usable() {
			continue
		}
		n++
		fmt.Fprintf(&b, "#%d - %s\n[Visit](%s)\n\n%s\n\n", n, doc.Title, doc.URL, doc.Text)
	}
	return b.String()
}
