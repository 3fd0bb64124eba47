package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/filmoteca/movie-catalog/api/v1"
	"github.com/filmoteca/movie-catalog/internal/models"
)

// ListMovies returns every movie projected to its descriptive fields
// (GET /movies)
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.catalog.List(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, "list movies", err)
		return
	}

	summaries := make([]v1.MovieSummary, 0, len(movies))
	for _, m := range movies {
		summaries = append(summaries, v1.NewMovieSummaryFromModel(m))
	}
	c.JSON(http.StatusOK, summaries)
}

// GetMoviesByGenre returns the movies matching the genre exactly
// (GET /movies/genre/:genre)
func (h *Handler) GetMoviesByGenre(c *gin.Context) {
	movies, err := h.catalog.MoviesByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		abortWithServiceError(c, "movies by genre", err)
		return
	}
	c.JSON(http.StatusOK, toAPIMovies(movies))
}

// GetMoviesByMinRating returns movies whose classification code is
// lexicographically >= the threshold
// (GET /movies/rating/:rating)
func (h *Handler) GetMoviesByMinRating(c *gin.Context) {
	movies, err := h.catalog.MoviesWithMinRating(c.Request.Context(), c.Param("rating"))
	if err != nil {
		abortWithServiceError(c, "movies by rating", err)
		return
	}
	c.JSON(http.StatusOK, toAPIMovies(movies))
}

// GetMoviesByDirector returns the movies matching the director exactly
// (GET /movies/director/:director)
func (h *Handler) GetMoviesByDirector(c *gin.Context) {
	movies, err := h.catalog.MoviesByDirector(c.Request.Context(), c.Param("director"))
	if err != nil {
		abortWithServiceError(c, "movies by director", err)
		return
	}
	c.JSON(http.StatusOK, toAPIMovies(movies))
}

// GetMoviesUnderPrice returns movies priced strictly below the threshold
// (GET /movies/price/:price)
func (h *Handler) GetMoviesUnderPrice(c *gin.Context) {
	price, err := strconv.ParseFloat(c.Param("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a number"})
		return
	}

	movies, err := h.catalog.MoviesUnderPrice(c.Request.Context(), price)
	if err != nil {
		abortWithServiceError(c, "movies by price", err)
		return
	}
	c.JSON(http.StatusOK, toAPIMovies(movies))
}

// GetMoviesByReleaseYear returns movies whose release date contains the year
// (GET /movies/release/:year)
func (h *Handler) GetMoviesByReleaseYear(c *gin.Context) {
	movies, err := h.catalog.MoviesReleasedIn(c.Request.Context(), c.Param("year"))
	if err != nil {
		abortWithServiceError(c, "movies by release year", err)
		return
	}
	c.JSON(http.StatusOK, toAPIMovies(movies))
}

// GetTopDirectors returns the 10 directors with the best average score
// (GET /directors/best)
func (h *Handler) GetTopDirectors(c *gin.Context) {
	averages, err := h.catalog.TopDirectors(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, "top directors", err)
		return
	}

	result := make([]v1.DirectorAverage, 0, len(averages))
	for _, a := range averages {
		result = append(result, v1.DirectorAverage{
			Director:     a.Director,
			AverageScore: a.AverageScore,
		})
	}
	c.JSON(http.StatusOK, result)
}

// SearchMovies returns movies whose title or description contains the
// keyword, case-insensitively
// (GET /movies/search/:keyword)
func (h *Handler) SearchMovies(c *gin.Context) {
	movies, err := h.catalog.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		abortWithServiceError(c, "search movies", err)
		return
	}
	c.JSON(http.StatusOK, toAPIMovies(movies))
}

// GetAveragePrice returns the mean price over the catalog, 2 decimals
// (GET /movies/average-price)
func (h *Handler) GetAveragePrice(c *gin.Context) {
	avg, err := h.catalog.AveragePrice(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, "average price", err)
		return
	}
	c.JSON(http.StatusOK, v1.AveragePriceResponse{AveragePrice: avg})
}

// GetBestMoviesByDirector returns each director's best movie, sorted by
// score descending
// (GET /movies/best-rating)
func (h *Handler) GetBestMoviesByDirector(c *gin.Context) {
	movies, err := h.catalog.BestMovieByDirector(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, "best movie by director", err)
		return
	}
	c.JSON(http.StatusOK, toAPIMovies(movies))
}

// CreateMovie inserts a new movie; the store assigns the id
// (POST /movies)
func (h *Handler) CreateMovie(c *gin.Context) {
	m, ok := bindMovieRequest(c)
	if !ok {
		return
	}

	if err := h.catalog.Create(c.Request.Context(), m); err != nil {
		abortWithServiceError(c, "create movie", err)
		return
	}
	c.JSON(http.StatusOK, v1.MessageResponse{Message: "movie created successfully"})
}

// UpdateMovie overwrites every field of the movie with the given id
// (PUT /movies/:id)
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, ok := bindMovieRequest(c)
	if !ok {
		return
	}
	m.ID = id

	if err := h.catalog.Replace(c.Request.Context(), m); err != nil {
		abortWithServiceError(c, "update movie", err)
		return
	}
	c.JSON(http.StatusOK, v1.MessageResponse{Message: "movie updated successfully"})
}

// DeleteMovie removes the movie with the given id
// (DELETE /movies/:id)
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.Remove(c.Request.Context(), id); err != nil {
		abortWithServiceError(c, "delete movie", err)
		return
	}
	c.JSON(http.StatusOK, v1.MessageResponse{Message: "movie deleted successfully"})
}

func bindMovieRequest(c *gin.Context) (models.Movie, bool) {
	var req v1.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return models.Movie{}, false
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Movie{}, false
	}
	return req.ToModel(), true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

func toAPIMovies(movies []models.Movie) []v1.Movie {
	result := make([]v1.Movie, 0, len(movies))
	for _, m := range movies {
		result = append(result, v1.NewMovieFromModel(m))
	}
	return result
}
