package v1

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a float64 that also accepts JSON strings ("12.5"), since the
// upstream clients of this API send Price and Score either way. Values are
// always stored as numbers.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Movie is a raw catalog item as returned by the filter endpoints.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"Title"`
	Director         string  `json:"Director"`
	ReleaseDate      string  `json:"ReleaseDate"`
	OriginalLanguage string  `json:"OriginalLanguage"`
	Distributor      string  `json:"Distributor"`
	Description      string  `json:"Description"`
	Price            float64 `json:"Price"`
	Genre            string  `json:"Genre"`
	Rating           string  `json:"Rating"`
	Score            float64 `json:"Score"`
}

// MovieSummary is the projection used by the list endpoint: the ten
// descriptive fields with the id dropped.
type MovieSummary struct {
	Title            string  `json:"Title"`
	Director         string  `json:"Director"`
	ReleaseDate      string  `json:"ReleaseDate"`
	OriginalLanguage string  `json:"OriginalLanguage"`
	Distributor      string  `json:"Distributor"`
	Description      string  `json:"Description"`
	Price            float64 `json:"Price"`
	Genre            string  `json:"Genre"`
	Rating           string  `json:"Rating"`
	Score            float64 `json:"Score"`
}

// MovieRequest is the create/update body. Fields are pointers so validation
// can tell an absent field from a provided zero value: a Price of 0 is
// valid, a missing Price is not.
type MovieRequest struct {
	Title            *string `json:"Title"`
	Director         *string `json:"Director"`
	ReleaseDate      *string `json:"ReleaseDate"`
	OriginalLanguage *string `json:"OriginalLanguage"`
	Distributor      *string `json:"Distributor"`
	Description      *string `json:"Description"`
	Price            *Number `json:"Price"`
	Genre            *string `json:"Genre"`
	Rating           *string `json:"Rating"`
	Score            *Number `json:"Score"`
}

// Validate checks that all ten fields are provided and the string fields are
// non-empty. The message deliberately does not name the offending field.
func (r *MovieRequest) Validate() error {
	strFields := []*string{
		r.Title,
		r.Director,
		r.ReleaseDate,
		r.OriginalLanguage,
		r.Distributor,
		r.Description,
		r.Genre,
		r.Rating,
	}
	for _, f := range strFields {
		if f == nil || *f == "" {
			return errAllFieldsRequired
		}
	}
	if r.Price == nil || r.Score == nil {
		return errAllFieldsRequired
	}
	return nil
}

type DirectorAverage struct {
	Director     string  `json:"Director"`
	AverageScore float64 `json:"AverageScore"`
}

type AveragePriceResponse struct {
	AveragePrice float64 `json:"AveragePrice"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
