package models

// Response is the normalized output of a web search provider.
type Response struct {
	Answer  string   `json:"answer"`
	Results []Result `json:"results"`
}

// Result is one search hit.
type Result struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Content    string `json:"content"`
	RawContent string `json:"raw_content,omitempty"`
}
