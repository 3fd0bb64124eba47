package models

// Movie is the single catalog entity. The id is assigned by the store and is
// never supplied by clients; every other field comes from the ingestion file
// or a create/update request.
type Movie struct {
	ID               int64
	Title            string
	Director         string
	ReleaseDate      string
	OriginalLanguage string
	Distributor      string
	Description      string
	Price            float64
	Genre            string
	Rating           string
	Score            float64
}

// DirectorAverage is one entry of the top-directors aggregation: the
// arithmetic mean of Score over all of that director's movies.
type DirectorAverage struct {
	Director     string
	AverageScore float64
}
