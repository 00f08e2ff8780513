// Package vocab maps between display category names and the budget
// service's category codes.
//
// The forward direction may collapse several display categories onto one
// code. The reverse direction is total: codes without an entry resolve to
// the fallback category. Both tables are fixed; transaction and goal history
// replay depends on them staying stable across sessions.
package vocab

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
)

// Service category codes.
const (
	CodeRent          = "rent"
	CodeFood          = "food"
	CodeTransport     = "transport"
	CodeEntertainment = "entertainment"
	CodeMisc          = "misc"
	CodeSavings       = "savings"
)

// FallbackCategory is the display category unmapped codes resolve to.
const FallbackCategory = "Utilities"

var toCode = map[string]string{
	"Housing":       CodeRent,
	"Food":          CodeFood,
	"Transport":     CodeTransport,
	"Entertainment": CodeEntertainment,
	"Utilities":     CodeMisc,
	"Shopping":      CodeMisc,
	"Health":        CodeMisc,
	"Savings":       CodeSavings,
}

var toName = map[string]string{
	CodeRent:          "Housing",
	CodeFood:          "Food",
	CodeTransport:     "Transport",
	CodeEntertainment: "Entertainment",
	CodeMisc:          "Utilities",
	CodeSavings:       "Savings",
}

// ToServiceCode returns the service code for a display category name.
func ToServiceCode(name string) (string, error) {
	code, ok := toCode[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownCategory, name)
	}
	return code, nil
}

// ToDisplayName returns the display category for a service code, or
// FallbackCategory when the code is unmapped.
func ToDisplayName(code string) string {
	if name, ok := toName[code]; ok {
		return name
	}
	return FallbackCategory
}

// CategoryIDForCode resolves a service code to a seed category id.
func CategoryIDForCode(code string) string {
	name := ToDisplayName(code)
	for _, c := range model.DefaultCategories() {
		if c.Name == name {
			return c.ID
		}
	}
	return model.CategoryUtilities
}

// CodeForCategoryID returns the service code of the seed category with the given id.
func CodeForCategoryID(id string) (string, error) {
	cats := model.DefaultCategories()
	idx := model.FindCategory(cats, id)
	if idx < 0 {
		return "", fmt.Errorf("%w: id %q", common.ErrInvalidCategory, id)
	}
	return ToServiceCode(cats[idx].Name)
}

// CategoryIDForName returns the seed id of a display category, matching
// names case-insensitively.
func CategoryIDForName(name string) (string, error) {
	for _, c := range model.DefaultCategories() {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownCategory, name)
}

// Names returns the eight display names in seed order.
func Names() []string {
	cats := model.DefaultCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}
