package footballdata

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/richard-senior/footstats/pkg/util"
)

var (
	// ErrMissingColumns is returned when a season file lacks columns a caller requires
	ErrMissingColumns = errors.New("missing required columns")
	// ErrMissingField is returned when a row has no usable value for a required field
	ErrMissingField = errors.New("missing required field")
)

// Table is a season file held in memory as header plus raw rows
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadTable parses CSV data. Rows may be ragged: absent trailing cells read as missing.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV")
	}
	if len(records) == 0 {
		return &Table{index: map[string]int{}}, nil
	}

	headers := records[0]
	// Clean up first header if it has a BOM
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")

	t := &Table{
		Header: headers,
		Rows:   records[1:],
		index:  make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if _, seen := t.index[h]; !seen && h != "" {
			t.index[h] = i
		}
	}
	return t, nil
}

// ReadTableFile opens and parses a season file
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return t, nil
}

// HasColumns reports whether every named column is present in the header
func (t *Table) HasColumns(columns ...string) bool {
	return len(t.MissingColumns(columns...)) == 0
}

// MissingColumns lists the named columns absent from the header
func (t *Table) MissingColumns(columns ...string) []string {
	return lo.Filter(columns, func(c string, _ int) bool {
		_, ok := t.index[c]
		return !ok
	})
}

// Field returns the trimmed value of a column in a row. ok is false when the
// column is absent, the row is too short or the cell is blank.
func (t *Table) Field(row []string, column string) (string, bool) {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	if v == "" || strings.EqualFold(v, "nan") {
		return "", false
	}
	return v, true
}

func (t *Table) stringField(row []string, column string) (string, error) {
	v, ok := t.Field(row, column)
	if !ok {
		return "", errors.Wrap(ErrMissingField, column)
	}
	return v, nil
}

func (t *Table) intField(row []string, column string) (int, error) {
	v, ok := t.Field(row, column)
	if !ok {
		return 0, errors.Wrap(ErrMissingField, column)
	}
	n, err := util.GetAsInteger(v)
	if err != nil {
		return 0, errors.Wrapf(ErrMissingField, "%s: %v", column, err)
	}
	return n, nil
}

func (t *Table) oddsField(row []string, column string) (decimal.Decimal, error) {
	v, ok := t.Field(row, column)
	if !ok {
		return decimal.Zero, errors.Wrap(ErrMissingField, column)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrMissingField, "%s: %v", column, err)
	}
	return d, nil
}

// ParseResultRow reads every field the classification needs from a row.
// Any absent or unparsable field yields an error wrapping ErrMissingField.
func (t *Table) ParseResultRow(row []string) (*Match, error) {
	var (
		m   Match
		err error
	)
	if m.HomeTeam, err = t.stringField(row, ColHomeTeam); err != nil {
		return nil, err
	}
	if m.AwayTeam, err = t.stringField(row, ColAwayTeam); err != nil {
		return nil, err
	}
	if m.HomeGoals, err = t.intField(row, ColFTHG); err != nil {
		return nil, err
	}
	if m.AwayGoals, err = t.intField(row, ColFTAG); err != nil {
		return nil, err
	}
	ftr, err := t.stringField(row, ColFTR)
	if err != nil {
		return nil, err
	}
	m.Result = Result(ftr)
	if m.HalfTimeHomeGoals, err = t.intField(row, ColHTHG); err != nil {
		return nil, err
	}
	if m.HalfTimeAwayGoals, err = t.intField(row, ColHTAG); err != nil {
		return nil, err
	}
	if m.HomeOdds, err = t.oddsField(row, ColHomeOdds); err != nil {
		return nil, err
	}
	if m.DrawOdds, err = t.oddsField(row, ColDrawOdds); err != nil {
		return nil, err
	}
	if m.AwayOdds, err = t.oddsField(row, ColAwayOdds); err != nil {
		return nil, err
	}
	m.Date, _ = t.Field(row, ColDate)
	return &m, nil
}

// ParseScoreRow reads only the teams and full-time score of a row
func (t *Table) ParseScoreRow(row []string) (*Match, error) {
	var (
		m   Match
		err error
	)
	if m.HomeTeam, err = t.stringField(row, ColHomeTeam); err != nil {
		return nil, err
	}
	if m.AwayTeam, err = t.stringField(row, ColAwayTeam); err != nil {
		return nil, err
	}
	if m.HomeGoals, err = t.intField(row, ColFTHG); err != nil {
		return nil, err
	}
	if m.AwayGoals, err = t.intField(row, ColFTAG); err != nil {
		return nil, err
	}
	m.Date, _ = t.Field(row, ColDate)
	// optional extras are kept when present so that archived rows stay complete
	if v, ok := t.Field(row, ColFTR); ok {
		m.Result = Result(v)
	}
	if n, err := t.intField(row, ColHTHG); err == nil {
		m.HalfTimeHomeGoals = n
	}
	if n, err := t.intField(row, ColHTAG); err == nil {
		m.HalfTimeAwayGoals = n
	}
	if d, err := t.oddsField(row, ColHomeOdds); err == nil {
		m.HomeOdds = d
	}
	if d, err := t.oddsField(row, ColDrawOdds); err == nil {
		m.DrawOdds = d
	}
	if d, err := t.oddsField(row, ColAwayOdds); err == nil {
		m.AwayOdds = d
	}
	return &m, nil
}
