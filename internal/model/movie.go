package model

// Movie is a locally curated catalog entry. The whole catalog lives in a
// single JSON array file; ids are monotonic integers starting above 100000.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Year        int      `json:"year"`
	Country     string   `json:"country"`
	Genre       string   `json:"genre"`
	Actors      []string `json:"actors"`
	Poster      string   `json:"poster"`
	Trailer     string   `json:"trailer"`
	Video       string   `json:"video"`
	Gallery     []string `json:"gallery"`
	Type        string   `json:"type"`
	CreatedBy   string   `json:"created_by"`
	CreatedAt   string   `json:"created_at"`
}
