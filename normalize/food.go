package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var quantityPattern = regexp.MustCompile(`\(\s*(\d+)\s*\)`)

// TextRule rewrites one spelling variant into its canonical form.
type TextRule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// FoodNameRules run in order over the food description after the
// quantity has been removed.
var FoodNameRules = []TextRule{
	{Name: "non-veg spelling", Pattern: regexp.MustCompile(`(?i)non[\s_-]*veg`), Replace: "NonVeg"},
	{Name: "collapse spacing", Pattern: regexp.MustCompile(`\s+`), Replace: ""},
}

// ParseFoodType splits "Veg Comfort Box (2)" into ("VegComfortBox", 2).
// Quantity defaults to 1 when no parenthesized integer is present.
func ParseFoodType(raw string) (string, int, error) {
	quantity := 1
	if m := quantityPattern.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return "", 0, errParse("invalid quantity in %q", raw)
		}
		quantity = n
	}

	name := quantityPattern.ReplaceAllString(raw, "")
	name = strings.TrimSpace(name)
	for _, rule := range FoodNameRules {
		name = rule.Pattern.ReplaceAllString(name, rule.Replace)
	}
	if name == "" {
		return "", 0, errParse("empty food type %q", raw)
	}
	return name, quantity, nil
}
