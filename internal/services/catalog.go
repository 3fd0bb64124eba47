package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/filmoteca/movie-catalog/internal/models"
	"github.com/filmoteca/movie-catalog/internal/store"
	"github.com/filmoteca/movie-catalog/internal/util"
	srvErrors "github.com/filmoteca/movie-catalog/pkg/errors"
)

const topDirectorsLimit = 10

// Catalog is the query engine. Every read performs one scan against the
// store and computes its result on the returned snapshot; snapshots are
// never cached or shared between requests.
type Catalog struct {
	store        *store.Store
	storeTimeout time.Duration
}

func NewCatalogService(st *store.Store, storeTimeout time.Duration) *Catalog {
	return &Catalog{store: st, storeTimeout: storeTimeout}
}

// List returns the full collection in scan order.
func (c *Catalog) List(ctx context.Context) ([]models.Movie, error) {
	return c.scan(ctx, "list movies")
}

func (c *Catalog) MoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	return c.scan(ctx, "scan movies by genre", store.ByGenre(genre))
}

func (c *Catalog) MoviesByDirector(ctx context.Context, director string) ([]models.Movie, error) {
	return c.scan(ctx, "scan movies by director", store.ByDirector(director))
}

// MoviesWithMinRating returns movies whose classification code is
// lexicographically >= rating. The comparison is on the string, not on any
// semantic ordering of the codes.
func (c *Catalog) MoviesWithMinRating(ctx context.Context, rating string) ([]models.Movie, error) {
	return c.scan(ctx, "scan movies by rating", store.ByMinRating(rating))
}

func (c *Catalog) MoviesUnderPrice(ctx context.Context, price float64) ([]models.Movie, error) {
	return c.scan(ctx, "scan movies by price", store.ByMaxPrice(price))
}

func (c *Catalog) MoviesReleasedIn(ctx context.Context, year string) ([]models.Movie, error) {
	return c.scan(ctx, "scan movies by release year", store.ByReleaseYear(year))
}

// Search matches keyword case-insensitively against Title and Description; a
// movie matches when either field contains it. The store cannot evaluate
// case-insensitive OR-combined text predicates, so the match runs on the
// full snapshot.
func (c *Catalog) Search(ctx context.Context, keyword string) ([]models.Movie, error) {
	movies, err := c.scan(ctx, "search movies")
	if err != nil {
		return nil, err
	}

	keyword = strings.ToLower(keyword)
	matches := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), keyword) ||
			strings.Contains(strings.ToLower(m.Description), keyword) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// AveragePrice returns the mean price over the whole collection, rounded to
// 2 decimals. An empty collection yields an EmptyCatalogError instead of a
// division by zero.
func (c *Catalog) AveragePrice(ctx context.Context) (float64, error) {
	movies, err := c.scan(ctx, "average price")
	if err != nil {
		return 0, err
	}
	if len(movies) == 0 {
		return 0, srvErrors.NewEmptyCatalogError()
	}

	var total float64
	for _, m := range movies {
		total += m.Price
	}
	return util.Round(total / float64(len(movies))), nil
}

// TopDirectors groups the collection by director, computes the mean score of
// each group and returns the 10 best, sorted by average descending. Equal
// averages are ordered by director name ascending so the result is
// deterministic.
func (c *Catalog) TopDirectors(ctx context.Context) ([]models.DirectorAverage, error) {
	movies, err := c.scan(ctx, "top directors")
	if err != nil {
		return nil, err
	}

	type group struct {
		total float64
		count int
	}
	groups := make(map[string]*group)
	for _, m := range movies {
		g, ok := groups[m.Director]
		if !ok {
			g = &group{}
			groups[m.Director] = g
		}
		g.total += m.Score
		g.count++
	}

	averages := make([]models.DirectorAverage, 0, len(groups))
	for director, g := range groups {
		averages = append(averages, models.DirectorAverage{
			Director:     director,
			AverageScore: g.total / float64(g.count),
		})
	}

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].AverageScore != averages[j].AverageScore {
			return averages[i].AverageScore > averages[j].AverageScore
		}
		return averages[i].Director < averages[j].Director
	})

	if len(averages) > topDirectorsLimit {
		averages = averages[:topDirectorsLimit]
	}
	return averages, nil
}

// BestMovieByDirector keeps, for each director, the single movie with the
// strictly greatest score; on equal scores the first movie in scan order
// wins. The result is sorted by score descending, director ascending.
func (c *Catalog) BestMovieByDirector(ctx context.Context) ([]models.Movie, error) {
	movies, err := c.scan(ctx, "best movie by director")
	if err != nil {
		return nil, err
	}

	best := make(map[string]models.Movie)
	for _, m := range movies {
		current, ok := best[m.Director]
		if !ok || m.Score > current.Score {
			best[m.Director] = m
		}
	}

	result := make([]models.Movie, 0, len(best))
	for _, m := range best {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Director < result[j].Director
	})
	return result, nil
}

// Create inserts a new movie; the store assigns the id.
func (c *Catalog) Create(ctx context.Context, m models.Movie) error {
	ctx, cancel := context.WithTimeout(ctx, c.storeTimeout)
	defer cancel()

	_, err := c.store.Movies().Insert(ctx, m)
	return c.mapStoreErr("create movie", err)
}

// Replace overwrites every descriptive field of the movie identified by
// m.ID. There are no partial updates.
func (c *Catalog) Replace(ctx context.Context, m models.Movie) error {
	ctx, cancel := context.WithTimeout(ctx, c.storeTimeout)
	defer cancel()

	return c.mapStoreErr("update movie", c.store.Movies().Update(ctx, m))
}

// Remove deletes the movie with the given id.
func (c *Catalog) Remove(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, c.storeTimeout)
	defer cancel()

	return c.mapStoreErr("delete movie", c.store.Movies().Delete(ctx, id))
}

func (c *Catalog) scan(ctx context.Context, op string, opts ...store.ScanOption) ([]models.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, c.storeTimeout)
	defer cancel()

	movies, err := c.store.Movies().Scan(ctx, opts...)
	if err != nil {
		return nil, c.mapStoreErr(op, err)
	}
	return movies, nil
}

func (c *Catalog) mapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return srvErrors.NewTimeoutError(op, err)
	}
	return err
}
