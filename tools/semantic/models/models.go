package models

// Response is the normalized output of a semantic content provider.
type Response struct {
	Results []Result `json:"results"`
}

// Result is the semantic extraction of one URL.
type Result struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Text          string `json:"text"`
	Summary       string `json:"summary"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Image         string `json:"image,omitempty"`
	Favicon       string `json:"favicon,omitempty"`
}
