package services_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/filmoteca/movie-catalog/internal/services"
	"github.com/filmoteca/movie-catalog/internal/store"
	"github.com/filmoteca/movie-catalog/internal/store/migrations"
)

const csvHeader = "Title,Director,ReleaseDate,OriginalLanguage,Distributor,Description,Price,Genre,Rating,Score\n"

var _ = Describe("Loader", func() {
	var (
		ctx    context.Context
		db     *sql.DB
		st     *store.Store
		loader *services.Loader
		dir    string
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		st = store.NewStore(db)
		loader = services.NewLoader(st, 4)
		dir = GinkgoT().TempDir()
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	writeCSV := func(content string) string {
		path := filepath.Join(dir, "movies.csv")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	Context("CSV", func() {
		// Given a well-formed CSV file
		// When the load completes
		// Then every row is already persisted: writes are awaited, not
		// fire-and-forget
		It("should persist all rows before returning", func() {
			path := writeCSV(csvHeader +
				"Inception,Nolan,2010-07-16,English,Warner,A thief.,12.5,Sci-Fi,PG-13,8.8\n" +
				"Alien,Scott,1979-05-25,English,Fox,In space.,9.99,Horror,R,8.5\n" +
				"Cars,Lasseter,2006-06-09,English,Disney,Speed.,7.5,Animation,G,7.2\n")

			report, err := loader.Load(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Rows).To(Equal(3))
			Expect(report.Inserted).To(Equal(3))
			Expect(report.Failed).To(BeZero())

			movies, err := st.Movies().Scan(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(movies).To(HaveLen(3))
		})

		It("should coerce Price and Score to floats", func() {
			path := writeCSV(csvHeader +
				"Inception,Nolan,2010-07-16,English,Warner,A thief.,12.5,Sci-Fi,PG-13,8.8\n")

			_, err := loader.Load(ctx, path)
			Expect(err).NotTo(HaveOccurred())

			movies, err := st.Movies().Scan(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(movies).To(HaveLen(1))
			Expect(movies[0].Price).To(Equal(12.5))
			Expect(movies[0].Score).To(Equal(8.8))
		})

		// Given a row with a non-numeric price
		// When we load the file
		// Then the row is skipped and counted, and the rest still loads
		It("should skip malformed rows without aborting", func() {
			path := writeCSV(csvHeader +
				"Broken,Nobody,2000-01-01,English,Acme,Bad.,not-a-price,Drama,PG,7.0\n" +
				"Alien,Scott,1979-05-25,English,Fox,In space.,9.99,Horror,R,8.5\n")

			report, err := loader.Load(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Rows).To(Equal(2))
			Expect(report.Inserted).To(Equal(1))
			Expect(report.Failed).To(Equal(1))
		})

		It("should accept header columns in any order", func() {
			path := writeCSV(
				"Score,Title,Director,ReleaseDate,OriginalLanguage,Distributor,Description,Genre,Rating,Price\n" +
					"8.8,Inception,Nolan,2010-07-16,English,Warner,A thief.,Sci-Fi,PG-13,12.5\n")

			report, err := loader.Load(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Inserted).To(Equal(1))

			movies, err := st.Movies().Scan(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(movies[0].Title).To(Equal("Inception"))
			Expect(movies[0].Price).To(Equal(12.5))
		})

		It("should fail on a missing column", func() {
			path := writeCSV("Title,Director\nInception,Nolan\n")

			_, err := loader.Load(ctx, path)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("missing column"))
		})

		It("should report an empty file as zero rows", func() {
			path := writeCSV("")

			report, err := loader.Load(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Rows).To(BeZero())
		})
	})

	Context("XLSX", func() {
		It("should load rows from the first sheet", func() {
			f := excelize.NewFile()
			sheet := f.GetSheetName(0)
			rows := [][]any{
				{"Title", "Director", "ReleaseDate", "OriginalLanguage", "Distributor", "Description", "Price", "Genre", "Rating", "Score"},
				{"Inception", "Nolan", "2010-07-16", "English", "Warner", "A thief.", "12.5", "Sci-Fi", "PG-13", "8.8"},
				{"Alien", "Scott", "1979-05-25", "English", "Fox", "In space.", "9.99", "Horror", "R", "8.5"},
			}
			for i, row := range rows {
				cell, err := excelize.CoordinatesToCellName(1, i+1)
				Expect(err).NotTo(HaveOccurred())
				Expect(f.SetSheetRow(sheet, cell, &row)).To(Succeed())
			}
			path := filepath.Join(dir, "movies.xlsx")
			Expect(f.SaveAs(path)).To(Succeed())
			Expect(f.Close()).To(Succeed())

			report, err := loader.Load(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Inserted).To(Equal(2))

			movies, err := st.Movies().Scan(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(movies).To(HaveLen(2))
		})
	})
})
