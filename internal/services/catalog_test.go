package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/filmoteca/movie-catalog/internal/models"
	"github.com/filmoteca/movie-catalog/internal/services"
	"github.com/filmoteca/movie-catalog/internal/store"
	"github.com/filmoteca/movie-catalog/internal/store/migrations"
	srvErrors "github.com/filmoteca/movie-catalog/pkg/errors"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Services Suite")
}

const storeTimeout = 5 * time.Second

var _ = Describe("Catalog", func() {
	var (
		ctx     context.Context
		db      *sql.DB
		st      *store.Store
		catalog *services.Catalog
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		st = store.NewStore(db)
		catalog = services.NewCatalogService(st, storeTimeout)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	insert := func(m models.Movie) {
		_, err := st.Movies().Insert(ctx, m)
		Expect(err).NotTo(HaveOccurred())
	}

	newMovie := func(title, director string, price, score float64) models.Movie {
		return models.Movie{
			Title:            title,
			Director:         director,
			ReleaseDate:      "2020-01-01",
			OriginalLanguage: "English",
			Distributor:      "Acme Pictures",
			Description:      "About " + title,
			Price:            price,
			Genre:            "Drama",
			Rating:           "PG-13",
			Score:            score,
		}
	}

	Context("Search", func() {
		// Given movies with the keyword in the title or in the description
		// When we search case-insensitively
		// Then a movie matches when either field contains the keyword
		It("should match title or description case-insensitively", func() {
			a := newMovie("Inception", "Nolan", 12.5, 8.8)
			a.Description = "A thief."
			insert(a)

			b := newMovie("Cars", "Lasseter", 7.5, 7.2)
			b.Description = "INCEPTION of speed."
			insert(b)

			c := newMovie("Alien", "Scott", 9.99, 8.5)
			c.Description = "In space."
			insert(c)

			matches, err := catalog.Search(ctx, "inception")
			Expect(err).NotTo(HaveOccurred())

			titles := make([]string, 0, len(matches))
			for _, m := range matches {
				titles = append(titles, m.Title)
			}
			Expect(titles).To(ConsistOf("Inception", "Cars"))
		})

		It("should return an empty list when nothing matches", func() {
			insert(newMovie("Cars", "Lasseter", 7.5, 7.2))

			matches, err := catalog.Search(ctx, "zebra")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(BeEmpty())
		})
	})

	Context("AveragePrice", func() {
		// Given a non-empty collection
		// When we compute the average price
		// Then average × count equals the price sum within rounding tolerance
		It("should return the mean rounded to 2 decimals", func() {
			prices := []float64{12.5, 9.99, 7.5}
			var sum float64
			for i, p := range prices {
				insert(newMovie(fmt.Sprintf("Movie %d", i), "Someone", p, 7.0))
				sum += p
			}

			avg, err := catalog.AveragePrice(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(avg).To(Equal(10.0))
			Expect(avg * float64(len(prices))).To(BeNumerically("~", sum, 0.005*float64(len(prices))))
		})

		// Given an empty collection
		// When we compute the average price
		// Then we get an explicit EmptyCatalogError, not NaN
		It("should return EmptyCatalogError on an empty catalog", func() {
			_, err := catalog.AveragePrice(ctx)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsEmptyCatalogError(err)).To(BeTrue())
		})
	})

	Context("TopDirectors", func() {
		It("should average each director's scores", func() {
			insert(newMovie("A1", "Almodovar", 10, 7.0))
			insert(newMovie("A2", "Almodovar", 10, 9.0))
			insert(newMovie("B1", "Bong", 10, 8.5))

			top, err := catalog.TopDirectors(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(top).To(HaveLen(2))
			Expect(top[0].Director).To(Equal("Bong"))
			Expect(top[0].AverageScore).To(Equal(8.5))
			Expect(top[1].Director).To(Equal("Almodovar"))
			Expect(top[1].AverageScore).To(Equal(8.0))
		})

		It("should return at most 10 entries sorted non-increasing", func() {
			for i := range 13 {
				insert(newMovie(fmt.Sprintf("M%d", i), fmt.Sprintf("Director %02d", i), 10, float64(i)))
			}

			top, err := catalog.TopDirectors(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(top).To(HaveLen(10))
			for i := 1; i < len(top); i++ {
				Expect(top[i].AverageScore).To(BeNumerically("<=", top[i-1].AverageScore))
			}
		})

		// Given two directors with identical averages
		// When we rank them
		// Then the tie breaks on director name ascending
		It("should break ties by director name ascending", func() {
			insert(newMovie("Z1", "Zhao", 10, 8.0))
			insert(newMovie("A1", "Anderson", 10, 8.0))

			top, err := catalog.TopDirectors(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(top).To(HaveLen(2))
			Expect(top[0].Director).To(Equal("Anderson"))
			Expect(top[1].Director).To(Equal("Zhao"))
		})

		It("should return an empty list for an empty catalog", func() {
			top, err := catalog.TopDirectors(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(top).To(BeEmpty())
		})
	})

	Context("BestMovieByDirector", func() {
		// Given directors A (scores 7 and 9) and B (score 5)
		// When we pick each director's best movie
		// Then we get A's 9 and B's 5, sorted descending by score
		It("should keep one movie per director, the highest scored", func() {
			insert(newMovie("A low", "A", 10, 7))
			insert(newMovie("A high", "A", 10, 9))
			insert(newMovie("B only", "B", 10, 5))

			best, err := catalog.BestMovieByDirector(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(best).To(HaveLen(2))
			Expect(best[0].Director).To(Equal("A"))
			Expect(best[0].Score).To(Equal(9.0))
			Expect(best[1].Director).To(Equal("B"))
			Expect(best[1].Score).To(Equal(5.0))
		})

		// Given a director with two equally scored movies
		// When we pick the best
		// Then the comparison is strict, so the first in scan order wins
		It("should keep the first-seen movie on score ties", func() {
			insert(newMovie("First", "A", 10, 8))
			insert(newMovie("Second", "A", 10, 8))

			best, err := catalog.BestMovieByDirector(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(best).To(HaveLen(1))
			Expect(best[0].Title).To(Equal("First"))
		})

		It("should include every distinct director exactly once", func() {
			insert(newMovie("M1", "A", 10, 7))
			insert(newMovie("M2", "B", 10, 6))
			insert(newMovie("M3", "C", 10, 9))
			insert(newMovie("M4", "A", 10, 5))

			best, err := catalog.BestMovieByDirector(ctx)
			Expect(err).NotTo(HaveOccurred())

			directors := make([]string, 0, len(best))
			for _, m := range best {
				directors = append(directors, m.Director)
			}
			Expect(directors).To(ConsistOf("A", "B", "C"))
		})
	})

	Context("Filter queries", func() {
		It("should pass the rating threshold through to the scan", func() {
			g := newMovie("Cars", "Lasseter", 7.5, 7.2)
			g.Rating = "G"
			insert(g)

			r := newMovie("Alien", "Scott", 9.99, 8.5)
			r.Rating = "R"
			insert(r)

			movies, err := catalog.MoviesWithMinRating(ctx, "PG-13")
			Expect(err).NotTo(HaveOccurred())
			Expect(movies).To(HaveLen(1))
			Expect(movies[0].Rating).To(Equal("R"))
		})

		It("should filter by release year substring", func() {
			m := newMovie("Inception", "Nolan", 12.5, 8.8)
			m.ReleaseDate = "2010-07-16"
			insert(m)

			movies, err := catalog.MoviesReleasedIn(ctx, "2010")
			Expect(err).NotTo(HaveOccurred())
			Expect(movies).To(HaveLen(1))

			movies, err = catalog.MoviesReleasedIn(ctx, "1999")
			Expect(err).NotTo(HaveOccurred())
			Expect(movies).To(BeEmpty())
		})
	})

	Context("Mutations", func() {
		It("should create a movie visible to a subsequent scan", func() {
			Expect(catalog.Create(ctx, newMovie("New", "Someone", 11.0, 7.7))).To(Succeed())

			movies, err := catalog.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(movies).To(HaveLen(1))
			Expect(movies[0].Title).To(Equal("New"))
		})

		It("should report NotFound when replacing a missing id", func() {
			m := newMovie("Ghost", "Nobody", 5.0, 6.0)
			m.ID = 42

			err := catalog.Replace(ctx, m)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should report NotFound when removing a missing id", func() {
			err := catalog.Remove(ctx, 42)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})
})
