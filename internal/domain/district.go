package domain

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
)

//go:embed districts.json rivers.json
var referenceFS embed.FS

// District is a static administrative region with fixed coordinates and a
// precomputed flood-proneness coefficient.
type District struct {
	NameBN           string  `json:"name_bn"`
	NameEN           string  `json:"name_en"`
	Division         string  `json:"division"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	FloodCoefficient float64 `json:"flood_coefficient"`
}

// River is a major river represented by a single coordinate.
type River struct {
	NameBN string  `json:"name_bn"`
	NameEN string  `json:"name_en"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// LoadDistricts parses the embedded 64-district reference table.
func LoadDistricts() ([]District, error) {
	data, err := referenceFS.ReadFile("districts.json")
	if err != nil {
		return nil, fmt.Errorf("read districts table: %w", err)
	}
	var districts []District
	if err := json.Unmarshal(data, &districts); err != nil {
		return nil, fmt.Errorf("parse districts table: %w", err)
	}
	return districts, nil
}

// LoadRivers parses the embedded major-river reference table.
func LoadRivers() ([]River, error) {
	data, err := referenceFS.ReadFile("rivers.json")
	if err != nil {
		return nil, fmt.Errorf("read rivers table: %w", err)
	}
	var rivers []River
	if err := json.Unmarshal(data, &rivers); err != nil {
		return nil, fmt.Errorf("parse rivers table: %w", err)
	}
	return rivers, nil
}

// defaultDistrict is returned when the table is empty and geocoding found
// nothing, so callers always receive a value.
var defaultDistrict = District{
	NameBN:           "ঢাকা",
	NameEN:           "Dhaka",
	Division:         "Dhaka",
	Lat:              23.8103,
	Lon:              90.4125,
	FloodCoefficient: 0.45,
}

// Geocoder resolves coordinates to administrative place names.
type Geocoder interface {
	// ReverseGeocode converts coordinates to a district-level place name.
	// An empty result with nil error means no match.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodeResult, error)
}

// GeocodeResult holds the address fields a reverse-geocoding provider
// returned for a coordinate.
type GeocodeResult struct {
	District string // district-level name, Bengali when available
	State    string
	Country  string
}

// Resolver maps coordinates to the nearest known district. An optional
// reverse geocoder is consulted first; any geocoding failure falls through to
// the nearest-neighbor search.
type Resolver struct {
	districts []District
	byName    map[string]int
	geocoder  Geocoder
	logger    *slog.Logger
}

// NewResolver builds a resolver over the district table. Pass a nil geocoder
// to use nearest-neighbor search only.
func NewResolver(districts []District, geocoder Geocoder, logger *slog.Logger) *Resolver {
	byName := make(map[string]int, len(districts)*2)
	for i, d := range districts {
		byName[d.NameBN] = i
		byName[d.NameEN] = i
	}
	return &Resolver{
		districts: districts,
		byName:    byName,
		geocoder:  geocoder,
		logger:    logger,
	}
}

// Districts returns the full reference table.
func (r *Resolver) Districts() []District {
	return r.districts
}

// Lookup finds a district by its Bengali or English name.
func (r *Resolver) Lookup(name string) (District, bool) {
	i, ok := r.byName[name]
	if !ok {
		return District{}, false
	}
	return r.districts[i], true
}

// Resolve maps a coordinate to a district. Callers must validate coordinate
// ranges before calling. Resolve never fails: an unusable geocoder answer is
// swallowed, an empty table yields the default district.
func (r *Resolver) Resolve(ctx context.Context, lat, lon float64) District {
	if r.geocoder != nil {
		result, err := r.geocoder.ReverseGeocode(ctx, lat, lon)
		switch {
		case err != nil:
			r.logger.Warn("reverse geocoding failed, falling back to nearest district",
				"lat", lat, "lon", lon, "error", err)
		case result.District != "":
			if d, ok := r.Lookup(result.District); ok {
				return d
			}
			r.logger.Debug("geocoded name not in district table",
				"name", result.District, "lat", lat, "lon", lon)
		}
	}
	return r.Nearest(lat, lon)
}

// Nearest returns the district whose stored coordinate is closest by planar
// Euclidean distance. Ties resolve to the first entry in table order, which
// is implementation-defined. Returns the default district for an empty table.
func (r *Resolver) Nearest(lat, lon float64) District {
	if len(r.districts) == 0 {
		return defaultDistrict
	}
	best := 0
	bestDist := math.Inf(1)
	for i, d := range r.districts {
		dist := euclidean(lat, lon, d.Lat, d.Lon)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return r.districts[best]
}

// NearestRiver returns the closest river from the table and its planar
// distance in degrees. Returns false when the table is empty.
func NearestRiver(rivers []River, lat, lon float64) (River, float64, bool) {
	if len(rivers) == 0 {
		return River{}, 0, false
	}
	best := 0
	bestDist := math.Inf(1)
	for i, riv := range rivers {
		dist := euclidean(lat, lon, riv.Lat, riv.Lon)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return rivers[best], bestDist, true
}

// euclidean is the planar distance in degrees, deliberately not geodesic.
func euclidean(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Hypot(lat1-lat2, lon1-lon2)
}
