package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Place is a resolved address emitted to entity-creation forms
type Place struct {
	ID        string          `json:"id,omitempty"`
	Address   string          `json:"address"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Raw       json.RawMessage `json:"-"`
}

// CoordinatesLabel is the "lat, lon" literal used when no address is known
func CoordinatesLabel(lat, lon float64) string {
	return fmt.Sprintf("%s, %s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64))
}
