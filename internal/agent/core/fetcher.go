package core

import (
	"context"
	"sync"

	"github.com/ydovzhyk/insight-agent/tools/web_fetch"
)

// FetchDocuments retrieves full text for every evidence item through the
// extraction provider, fanning out over a bounded worker pool. Each fetch
// is isolated: one failing URL yields an error document and never touches
// its siblings. One attempt per URL; partial failure is the normal case.
func FetchDocuments(ctx context.Context, fetcher web_fetch.WebFetcher, items []EvidenceItem, workers int) []FetchedDocument {
	if len(items) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 8
	}
	if workers > len(items) {
		workers = len(items)
	}

	docs := make([]FetchedDocument, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				docs[i] = fetchOne(ctx, fetcher, items[i])
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return docs
}

func fetchOne(ctx context.Context, fetcher web_fetch.WebFetcher, item EvidenceItem) FetchedDocument {
	res, err := fetcher.Exec(ctx, item.URL)
	if err != nil {
		return FetchedDocument{URL: item.URL, Title: item.Title, Text: FetchErrorSentinel, Status: FetchError}
	}
	title := res.Title
	if title == "" {
		title = item.Title
	}
	if res.Text == "" {
		// An empty extraction is a failed fetch; the sentinel keeps it
		// distinguishable from a transport error.
		return FetchedDocument{URL: item.URL, Title: title, Text: NoTextSentinel, Status: FetchError}
	}
	return FetchedDocument{URL: item.URL, Title: title, Text: res.Text, Status: FetchOK}
}
