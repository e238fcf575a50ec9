package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/yeremiapane/mealbox-app/normalize"
)

// RowSource yields legacy rows in file order and returns io.EOF when done.
type RowSource interface {
	Next() (normalize.RawRow, error)
}

type legacyField int

const (
	fieldDate legacyField = iota
	fieldSerial
	fieldAddress
	fieldName
	fieldPhone
	fieldFood
	fieldRice
	fieldComments
	fieldEmail
)

// headerAliases maps a squashed header (lower case, letters and digits
// only) to the field it fills.
var headerAliases = map[string]legacyField{
	"date":            fieldDate,
	"orderdate":       fieldDate,
	"sno":             fieldSerial,
	"slno":            fieldSerial,
	"serial":          fieldSerial,
	"serialno":        fieldSerial,
	"serialnumber":    fieldSerial,
	"address":         fieldAddress,
	"deliveryaddress": fieldAddress,
	"name":            fieldName,
	"fullname":        fieldName,
	"customername":    fieldName,
	"phone":           fieldPhone,
	"phoneno":         fieldPhone,
	"phonenumber":     fieldPhone,
	"mobile":          fieldPhone,
	"typeoffood":      fieldFood,
	"foodtype":        fieldFood,
	"food":            fieldFood,
	"typeofrice":      fieldRice,
	"ricetype":        fieldRice,
	"rice":            fieldRice,
	"comments":        fieldComments,
	"comment":         fieldComments,
	"notes":           fieldComments,
	"email":           fieldEmail,
	"emailaddress":    fieldEmail,
}

// LegacyReader reads a CSV export of the legacy order sheet. Columns are
// matched by header name; unknown columns are ignored and missing ones
// read as empty strings.
type LegacyReader struct {
	r       *csv.Reader
	columns map[legacyField]int
}

func NewLegacyReader(r io.Reader) (*LegacyReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("legacy file has no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[legacyField]int)
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if f, ok := headerAliases[squashHeader(h)]; ok {
			if _, dup := columns[f]; !dup {
				columns[f] = i
			}
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("legacy file header has no known columns")
	}
	return &LegacyReader{r: cr, columns: columns}, nil
}

func (lr *LegacyReader) Next() (normalize.RawRow, error) {
	record, err := lr.r.Read()
	if err != nil {
		return normalize.RawRow{}, err
	}
	get := func(f legacyField) string {
		i, ok := lr.columns[f]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return normalize.RawRow{
		Date:     get(fieldDate),
		SerialNo: get(fieldSerial),
		Address:  get(fieldAddress),
		FullName: get(fieldName),
		Phone:    get(fieldPhone),
		FoodType: get(fieldFood),
		RiceType: get(fieldRice),
		Comments: get(fieldComments),
		Email:    get(fieldEmail),
	}, nil
}

func squashHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SliceSource serves rows already held in memory.
type SliceSource struct {
	rows []normalize.RawRow
	pos  int
}

func NewSliceSource(rows []normalize.RawRow) *SliceSource {
	return &SliceSource{rows: rows}
}

func (s *SliceSource) Next() (normalize.RawRow, error) {
	if s.pos >= len(s.rows) {
		return normalize.RawRow{}, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}
