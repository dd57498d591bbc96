package core

// EvidenceItem is one candidate URL gathered from the providers or the
// query itself, eligible to be fetched and cited. Title defaults to the URL
// when no provider supplied a better label.
type EvidenceItem struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// FetchStatus marks whether extraction of one URL succeeded.
type FetchStatus string

const (
	FetchOK    FetchStatus = "ok"
	FetchError FetchStatus = "error"
)

// Sentinel texts carried by documents whose extraction returned nothing or
// failed. Error documents stay in the list so failure is visible, but are
// excluded from synthesis input.
const (
	NoTextSentinel     = "[NO TEXT]"
	FetchErrorSentinel = "[ERROR FETCHING]"
)

// FetchedDocument is the extraction result for one EvidenceItem.
type FetchedDocument struct {
	URL    string      `json:"url"`
	Title  string      `json:"title"`
	Text   string      `json:"text"`
	Status FetchStatus `json:"status"`
}

// Usable reports whether the document carries real text worth handing to
// the synthesizer.
func (d FetchedDocument) Usable() bool {
	return d.Status == FetchOK && d.Text != "" && d.Text != NoTextSentinel
}
