package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/filmoteca/movie-catalog/internal/models"
	srvErrors "github.com/filmoteca/movie-catalog/pkg/errors"
)

// MovieStore holds the movies collection. There are no secondary indexes:
// every read is a table scan, optionally narrowed by the attribute
// comparisons a ScanOption pushes into the WHERE clause.
type MovieStore struct {
	db *sql.DB
}

func NewMovieStore(db *sql.DB) *MovieStore {
	return &MovieStore{db: db}
}

var movieColumns = []string{
	"id",
	"title",
	"director",
	"release_date",
	"original_language",
	"distributor",
	"description",
	"price",
	"genre",
	"rating",
	"score",
}

// Insert stores a new movie. The id is drawn from the store's own sequence;
// whatever m.ID holds is ignored. Returns the assigned id.
func (s *MovieStore) Insert(ctx context.Context, m models.Movie) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, queryInsertMovie,
		m.Title,
		m.Director,
		m.ReleaseDate,
		m.OriginalLanguage,
		m.Distributor,
		m.Description,
		m.Price,
		m.Genre,
		m.Rating,
		m.Score,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Scan retrieves a snapshot of the collection. Options narrow the scan with
// simple attribute comparisons; with no options the full table is returned,
// in scan order.
func (s *MovieStore) Scan(ctx context.Context, opts ...ScanOption) ([]models.Movie, error) {
	builder := sq.Select(movieColumns...).From("movies")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Director,
			&m.ReleaseDate,
			&m.OriginalLanguage,
			&m.Distributor,
			&m.Description,
			&m.Price,
			&m.Genre,
			&m.Rating,
			&m.Score,
		)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}

	return movies, rows.Err()
}

// Update overwrites every descriptive field of the movie identified by m.ID.
// Returns a ResourceNotFoundError when no row matched.
func (s *MovieStore) Update(ctx context.Context, m models.Movie) error {
	res, err := s.db.ExecContext(ctx, queryUpdateMovie,
		m.Title,
		m.Director,
		m.ReleaseDate,
		m.OriginalLanguage,
		m.Distributor,
		m.Description,
		m.Price,
		m.Genre,
		m.Rating,
		m.Score,
		m.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return srvErrors.NewResourceNotFoundError("movie", m.ID)
	}
	return nil
}

// Delete removes the movie with the given id. Returns a
// ResourceNotFoundError when no row matched.
func (s *MovieStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, queryDeleteMovie, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return srvErrors.NewResourceNotFoundError("movie", id)
	}
	return nil
}

type ScanOption func(sq.SelectBuilder) sq.SelectBuilder

func ByGenre(genre string) ScanOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"genre": genre})
	}
}

func ByDirector(director string) ScanOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"director": director})
	}
}

// ByMinRating compares the classification code as a string, so ordering is
// lexicographic ("R" >= "PG-13", "G" < "PG-13"). This mirrors the upstream
// contract of the endpoint and is pinned by tests.
func ByMinRating(rating string) ScanOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"rating": rating})
	}
}

func ByMaxPrice(price float64) ScanOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Lt{"price": price})
	}
}

// ByReleaseYear matches the year as a substring of the free-text release
// date, not as a parsed calendar year.
func ByReleaseYear(year string) ScanOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Like{"release_date": "%" + year + "%"})
	}
}
