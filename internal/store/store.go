package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db     *sql.DB
	movies *MovieStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:     db,
		movies: NewMovieStore(db),
	}
}

func (s *Store) Movies() *MovieStore {
	return s.movies
}

func (s *Store) Close() error {
	return s.db.Close()
}
