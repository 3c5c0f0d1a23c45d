package artic

// Artwork is one record from the artworks listing. All fields are display-only.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ArtistDisplay string `json:"artist_display"`
	Inscriptions  string `json:"inscriptions"`
	DateStart     *int   `json:"date_start"`
	DateEnd       *int   `json:"date_end"`
}

// Pagination is the pagination block of a listing response.
type Pagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// Page is one server-delivered batch of artworks.
type Page struct {
	Data       []Artwork  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// DefaultFields is the projection requested when none is configured.
var DefaultFields = []string{
	"id",
	"title",
	"place_of_origin",
	"artist_display",
	"inscriptions",
	"date_start",
	"date_end",
}
