package models

import (
	"errors"
	"fmt"
)

// SeasonType classifies a season by length and elimination depth
type SeasonType string

const (
	SeasonTypeShort    SeasonType = "Short"
	SeasonTypeMedium   SeasonType = "Medium"
	SeasonTypeComplete SeasonType = "Complete"
)

// ErrUnknownSeasonType is returned for a tag outside the catalog. Season input is
// checked with IsValid first, so reaching this is a wiring bug.
var ErrUnknownSeasonType = errors.New("unknown season type")

// SeasonTypeSpec is the catalog entry for a season type
type SeasonTypeSpec struct {
	DurationMonths  int `json:"duration"`
	SelectionLevels int `json:"processes"`
}

var seasonTypeCatalog = map[SeasonType]SeasonTypeSpec{
	SeasonTypeShort:    {DurationMonths: 4, SelectionLevels: 3},
	SeasonTypeMedium:   {DurationMonths: 6, SelectionLevels: 5},
	SeasonTypeComplete: {DurationMonths: 12, SelectionLevels: 7},
}

// ResolveSeasonType returns the duration and selection levels bound to a season type
func ResolveSeasonType(t SeasonType) (SeasonTypeSpec, error) {
	spec, ok := seasonTypeCatalog[t]
	if !ok {
		return SeasonTypeSpec{}, fmt.Errorf("%w: %q", ErrUnknownSeasonType, string(t))
	}
	return spec, nil
}

// IsValid reports whether the tag is one of the catalog types
func (t SeasonType) IsValid() bool {
	_, ok := seasonTypeCatalog[t]
	return ok
}
