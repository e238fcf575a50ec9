package normalize

import (
	"strings"

	"github.com/yeremiapane/mealbox-app/utils"
)

// RawRow is one spreadsheet line as strings. Missing columns are "".
type RawRow struct {
	Date     string
	SerialNo string
	Address  string
	FullName string
	Phone    string
	FoodType string
	RiceType string
	Comments string
	Email    string
}

// IsBlank reports whether every cell is empty.
func (r RawRow) IsBlank() bool {
	for _, v := range []string{r.Date, r.SerialNo, r.Address, r.FullName, r.Phone, r.FoodType, r.RiceType, r.Comments, r.Email} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Row holds the normalized fields of a RawRow except the date, which
// depends on rows seen earlier and is resolved by the importer.
type Row struct {
	SerialNo       string
	ItemName       string
	Quantity       int
	BuildingNumber string
	Phone          string
	FirstName      string
	LastName       string
	Email          string
	Comments       string
}

// NormalizeRow applies every field transform. Errors are of kind ParseSkip.
func NormalizeRow(raw RawRow) (Row, error) {
	phone, err := NormalizePhone(raw.Phone)
	if err != nil {
		return Row{}, err
	}

	item, qty, err := ParseFoodType(raw.FoodType)
	if err != nil {
		return Row{}, err
	}

	first, last := SplitName(raw.FullName)

	return Row{
		SerialNo:       strings.TrimSpace(raw.SerialNo),
		ItemName:       item,
		Quantity:       qty,
		BuildingNumber: BuildingNumber(raw.Address),
		Phone:          phone,
		FirstName:      first,
		LastName:       last,
		Email:          strings.TrimSpace(raw.Email),
		Comments:       JoinComments(raw.RiceType, raw.Comments),
	}, nil
}

func errParse(format string, args ...interface{}) error {
	return utils.ParseSkip(format, args...)
}
