package v1

import (
	"github.com/filmoteca/movie-catalog/internal/models"
	srvErrors "github.com/filmoteca/movie-catalog/pkg/errors"
)

var errAllFieldsRequired = srvErrors.NewValidationError("all movie fields are required")

// NewMovieFromModel converts a models.Movie to an API Movie.
func NewMovieFromModel(m models.Movie) Movie {
	return Movie{
		ID:               m.ID,
		Title:            m.Title,
		Director:         m.Director,
		ReleaseDate:      m.ReleaseDate,
		OriginalLanguage: m.OriginalLanguage,
		Distributor:      m.Distributor,
		Description:      m.Description,
		Price:            m.Price,
		Genre:            m.Genre,
		Rating:           m.Rating,
		Score:            m.Score,
	}
}

// NewMovieSummaryFromModel projects a models.Movie to the id-less summary.
func NewMovieSummaryFromModel(m models.Movie) MovieSummary {
	return MovieSummary{
		Title:            m.Title,
		Director:         m.Director,
		ReleaseDate:      m.ReleaseDate,
		OriginalLanguage: m.OriginalLanguage,
		Distributor:      m.Distributor,
		Description:      m.Description,
		Price:            m.Price,
		Genre:            m.Genre,
		Rating:           m.Rating,
		Score:            m.Score,
	}
}

// ToModel builds a models.Movie from a validated request. Call Validate
// first; ToModel assumes every field is present.
func (r *MovieRequest) ToModel() models.Movie {
	return models.Movie{
		Title:            *r.Title,
		Director:         *r.Director,
		ReleaseDate:      *r.ReleaseDate,
		OriginalLanguage: *r.OriginalLanguage,
		Distributor:      *r.Distributor,
		Description:      *r.Description,
		Price:            float64(*r.Price),
		Genre:            *r.Genre,
		Rating:           *r.Rating,
		Score:            float64(*r.Score),
	}
}
