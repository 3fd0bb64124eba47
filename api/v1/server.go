package v1

import "github.com/gin-gonic/gin"

// ServerInterface lists the handlers for every route of the catalog API.
type ServerInterface interface {
	// (GET /movies)
	ListMovies(c *gin.Context)
	// (GET /movies/genre/:genre)
	GetMoviesByGenre(c *gin.Context)
	// (GET /movies/rating/:rating)
	GetMoviesByMinRating(c *gin.Context)
	// (GET /movies/director/:director)
	GetMoviesByDirector(c *gin.Context)
	// (GET /movies/price/:price)
	GetMoviesUnderPrice(c *gin.Context)
	// (GET /movies/release/:year)
	GetMoviesByReleaseYear(c *gin.Context)
	// (GET /directors/best)
	GetTopDirectors(c *gin.Context)
	// (GET /movies/search/:keyword)
	SearchMovies(c *gin.Context)
	// (GET /movies/average-price)
	GetAveragePrice(c *gin.Context)
	// (GET /movies/best-rating)
	GetBestMoviesByDirector(c *gin.Context)
	// (POST /movies)
	CreateMovie(c *gin.Context)
	// (PUT /movies/:id)
	UpdateMovie(c *gin.Context)
	// (DELETE /movies/:id)
	DeleteMovie(c *gin.Context)
}

// RegisterHandlers wires the catalog routes onto the router. Paths are kept
// unprefixed for compatibility with existing clients.
func RegisterHandlers(r gin.IRouter, si ServerInterface) {
	r.GET("/movies", si.ListMovies)
	r.GET("/movies/genre/:genre", si.GetMoviesByGenre)
	r.GET("/movies/rating/:rating", si.GetMoviesByMinRating)
	r.GET("/movies/director/:director", si.GetMoviesByDirector)
	r.GET("/movies/price/:price", si.GetMoviesUnderPrice)
	r.GET("/movies/release/:year", si.GetMoviesByReleaseYear)
	r.GET("/directors/best", si.GetTopDirectors)
	r.GET("/movies/search/:keyword", si.SearchMovies)
	r.GET("/movies/average-price", si.GetAveragePrice)
	r.GET("/movies/best-rating", si.GetBestMoviesByDirector)
	r.POST("/movies", si.CreateMovie)
	r.PUT("/movies/:id", si.UpdateMovie)
	r.DELETE("/movies/:id", si.DeleteMovie)
}
