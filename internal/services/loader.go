package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/filmoteca/movie-catalog/internal/models"
	"github.com/filmoteca/movie-catalog/internal/store"
)

// Loader performs the one-time bulk load of a tabular file into the store.
// Inserts fan out to a bounded worker pool and Load returns only after every
// write has been acknowledged, so a completed load means the rows are
// persisted. Row failures are logged and counted, never retried.
type Loader struct {
	store   *store.Store
	workers int
}

func NewLoader(st *store.Store, workers int) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{store: st, workers: workers}
}

// LoadReport summarizes one bulk load.
type LoadReport struct {
	Rows     int
	Inserted int
	Failed   int
	Duration time.Duration
}

var movieColumns = []string{
	"Title",
	"Director",
	"ReleaseDate",
	"OriginalLanguage",
	"Distributor",
	"Description",
	"Price",
	"Genre",
	"Rating",
	"Score",
}

// Load reads the file at path (CSV, or XLSX by extension) and inserts one
// movie per data row. The first row must be a header naming the ten movie
// columns.
func (l *Loader) Load(ctx context.Context, path string) (*LoadReport, error) {
	log := zap.S().Named("loader")
	start := time.Now()

	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &LoadReport{Duration: time.Since(start)}, nil
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}
	data := rows[1:]

	jobs := make(chan []string)
	var inserted, failed atomic.Int64
	var wg sync.WaitGroup

	for range l.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				m, err := movieFromRow(index, row)
				if err != nil {
					log.Warnw("skipping malformed row", "error", err)
					failed.Add(1)
					continue
				}
				if _, err := l.store.Movies().Insert(ctx, m); err != nil {
					log.Errorw("failed to insert row", "title", m.Title, "error", err)
					failed.Add(1)
					continue
				}
				inserted.Add(1)
			}
		}()
	}

	var cancelled error
	for _, row := range data {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
		case jobs <- row:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()

	report := &LoadReport{
		Rows:     len(data),
		Inserted: int(inserted.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(start),
	}
	log.Infow("data loaded",
		"rows", report.Rows,
		"inserted", report.Inserted,
		"failed", report.Failed,
		"duration", report.Duration,
	)
	return report, cancelled
}

func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(f.GetSheetName(0))
}

// columnIndex maps each movie column to its position in the header row.
// Header names are matched case-insensitively; all ten must be present.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	index := make(map[string]int, len(movieColumns))
	for _, col := range movieColumns {
		pos, ok := positions[strings.ToLower(col)]
		if !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
		index[col] = pos
	}
	return index, nil
}

func movieFromRow(index map[string]int, row []string) (models.Movie, error) {
	field := func(col string) string {
		pos := index[col]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	price, err := strconv.ParseFloat(field("Price"), 64)
	if err != nil {
		return models.Movie{}, fmt.Errorf("invalid price %q: %w", field("Price"), err)
	}
	score, err := strconv.ParseFloat(field("Score"), 64)
	if err != nil {
		return models.Movie{}, fmt.Errorf("invalid score %q: %w", field("Score"), err)
	}

	return models.Movie{
		Title:            field("Title"),
		Director:         field("Director"),
		ReleaseDate:      field("ReleaseDate"),
		OriginalLanguage: field("OriginalLanguage"),
		Distributor:      field("Distributor"),
		Description:      field("Description"),
		Price:            price,
		Genre:            field("Genre"),
		Rating:           field("Rating"),
		Score:            score,
	}, nil
}
