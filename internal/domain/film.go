package domain

// Link is one external link attached to a film.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Film represents a row of the films relation. Optional columns are pointers.
type Film struct {
	Code        string
	Title       string
	Year        *int
	Score       *int
	Director    *string
	Starring    *string
	Genre       *string
	Runtime     *int
	BoxOffice   *float64
	Synopsis    *string
	MpaaRating  *string
	ReleaseDate *string
	// Links holds the raw serialized link list exactly as stored.
	Links *string
}
