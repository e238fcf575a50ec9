package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/mealbox-app/models"
)

// NonVegMarkers identify a non-vegetarian item by substring of the
// lower-cased item name.
var NonVegMarkers = []string{"nonveg", "non-veg", "non veg", "chicken", "mutton", "fish"}

const specialKeyword = "special"

// Rule is one entry of an ordered keyword table. The first rule whose
// Match returns true wins.
type Rule struct {
	Name  string
	Match func(lowerName string) bool
}

type CategoryRule struct {
	Rule
	Category models.Category
}

type PriceTier struct {
	Rule
	Price decimal.Decimal
}

func isSpecial(n string) bool { return strings.Contains(n, specialKeyword) }

func isNonVeg(n string) bool {
	for _, m := range NonVegMarkers {
		if strings.Contains(n, m) {
			return true
		}
	}
	return false
}

func isVeg(n string) bool { return strings.Contains(n, "veg") }

// CategoryRules infer the category of a menu item created by the importer.
var CategoryRules = []CategoryRule{
	{Rule{"non-veg special", func(n string) bool { return isSpecial(n) && isNonVeg(n) }}, models.CategoryNonVegSpecial},
	{Rule{"special", isSpecial}, models.CategoryVegSpecial},
	{Rule{"non-veg", isNonVeg}, models.CategoryNonVeg},
	{Rule{"veg", isVeg}, models.CategoryVeg},
}

// FallbackCategory applies when no category rule matches.
const FallbackCategory = models.CategoryGeneral

// PriceTiers are business defaults for items the importer creates. They are
// not derived from the pricing table.
var PriceTiers = []PriceTier{
	{Rule{"special", isSpecial}, decimal.RequireFromString("15.00")},
	{Rule{"non-veg", isNonVeg}, decimal.RequireFromString("13.00")},
	{Rule{"veg", isVeg}, decimal.RequireFromString("11.00")},
}

var FlatDefaultPrice = decimal.RequireFromString("10.00")

func InferCategory(name string) models.Category {
	lower := strings.ToLower(name)
	for _, r := range CategoryRules {
		if r.Match(lower) {
			return r.Category
		}
	}
	return FallbackCategory
}

func DefaultPrice(name string) decimal.Decimal {
	lower := strings.ToLower(name)
	for _, t := range PriceTiers {
		if t.Match(lower) {
			return t.Price
		}
	}
	return FlatDefaultPrice
}
