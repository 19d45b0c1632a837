package omdb

// Envelope carries the fields every OMDb response has
type Envelope struct {
	Response string `json:"Response"` // "True" or "False"
	Error    string `json:"Error,omitempty"`
}

// Failed reports a logical negative response
func (e Envelope) Failed() bool {
	return e.Response == "False"
}

// SearchResponse is the body of an `s=` search
type SearchResponse struct {
	Envelope
	Search       []Title `json:"Search"`
	TotalResults string  `json:"totalResults"` // decimal string, e.g. "372"
}

// Title is a search hit
type Title struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// DetailResponse is the body of an `i=` lookup with plot=full
type DetailResponse struct {
	Envelope
	Title
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	IMDbRating string `json:"imdbRating"`
}
