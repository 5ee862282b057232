package cafe

import (
	"math"
	"strings"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/imaging"
)

// Input carries the admin form. Blank strings mean "not given".
type Input struct {
	Name        string
	Description string
	Location    string
	ImageURL    string
	Lat         *float64
	Lng         *float64
	Logo        *imaging.File
}

func (in Input) hasLogo() bool {
	return in.Logo != nil && len(in.Logo.Data) > 0
}

func validateCoordinates(lat, lng *float64) error {
	if !finite(lat) || !finite(lng) {
		return httperr.ErrBusinessMsg("invalid_coordinates", "Latitude and longitude must be numbers.")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return httperr.ErrBusinessMsg("invalid_coordinates", "Latitude must be between -90 and 90.")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return httperr.ErrBusinessMsg("invalid_coordinates", "Longitude must be between -180 and 180.")
	}
	return nil
}

func finite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

// fallback returns v trimmed, or prev when v is blank.
func fallback(v, prev string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return prev
}
