package core

import (
	"github.com/ydovzhyk/insight-agent/internal/helpers"
	"github.com/ydovzhyk/insight-agent/internal/memory"
	semanticmodels "github.com/ydovzhyk/insight-agent/tools/semantic/models"
	searchmodels "github.com/ydovzhyk/insight-agent/tools/web_search/models"
)

// collector accumulates URLs in first-seen order with set membership.
type collector struct {
	seen  map[string]struct{}
	items []EvidenceItem
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) add(url string) {
	if url == "" {
		return
	}
	if _, dup := c.seen[url]; dup {
		return
	}
	c.seen[url] = struct{}{}
	c.items = append(c.items, EvidenceItem{URL: url, Title: url})
}

func (c *collector) scan(text string) {
	for _, url := range helpers.ExtractURLs(text) {
		c.add(url)
	}
}

// CollectEvidence unions every URL found across the query text, the exact
// URL (if any), the search results, the semantic results and the user's
// memory fragments into one deduplicated evidence list. Pure union: no
// ranking or filtering, relevance is the synthesizer's job. Image and
// favicon fields are scanned on purpose — they can be meaningful links,
// not just asset references.
func CollectEvidence(prompt, exactURL string, search *searchmodels.Response, semantic *semanticmodels.Response, memories []memory.Record) []EvidenceItem {
	c := newCollector()

	c.scan(prompt)
	c.add(exactURL)

	if search != nil {
		for _, r := range search.Results {
			c.scan(r.Content)
			c.scan(r.RawContent)
			c.scan(r.Title)
			c.scan(r.URL)
		}
	}

	if semantic != nil {
		for _, r := range semantic.Results {
			c.scan(r.Text)
			c.scan(r.Summary)
			c.scan(r.Title)
			c.scan(r.URL)
			c.scan(r.Image)
			c.scan(r.Favicon)
		}
	}

	for _, m := range memories {
		c.scan(m.Memory)
	}

	return c.items
}
