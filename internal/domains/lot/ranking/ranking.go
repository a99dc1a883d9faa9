// Package ranking orders parking lots for a user, either by distance from a
// position or by relevance to a free-text query. Nothing here does I/O.
package ranking

import (
	"math"
	"parkflow/internal/domains/lot/model"
	"slices"
	"strings"
)

const (
	earthRadiusKm = 6371.0

	DefaultSuggestionLimit = 5
)

type Position struct {
	Lat float64
	Lng float64
}

type Ranked struct {
	Lot        model.Lot
	DistanceKm float64
}

type SearchResult struct {
	Lots  []model.Lot
	Focus *model.Lot
}

// Distance is the great-circle distance in kilometres.
func Distance(a, b Position) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ByDistance returns lots with coordinates sorted nearest first. Lots at the
// same distance keep their input order.
func ByDistance(user Position, lots []model.Lot) []Ranked {
	ranked := make([]Ranked, 0, len(lots))

	for _, lot := range lots {
		if !lot.HasPosition() {
			continue
		}

		ranked = append(ranked, Ranked{
			Lot:        lot,
			DistanceKm: Distance(user, Position{Lat: lot.Latitude.Float64, Lng: lot.Longitude.Float64}),
		})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})

	return ranked
}

// ByQuery moves lots whose name or address contains query to the front and
// picks the lot the map should focus on.
func ByQuery(query string, lots []model.Lot) SearchResult {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return SearchResult{Lots: slices.Clone(lots)}
	}

	matches := make([]model.Lot, 0, len(lots))
	rest := make([]model.Lot, 0, len(lots))

	for _, lot := range lots {
		if contains(lot.Name, needle) || contains(lot.Address, needle) {
			matches = append(matches, lot)
		} else {
			rest = append(rest, lot)
		}
	}

	result := SearchResult{Lots: append(matches, rest...)}

	for i := range matches {
		if strings.ToLower(matches[i].Name) == needle || strings.ToLower(matches[i].Address) == needle {
			focus := matches[i]
			result.Focus = &focus

			return result
		}
	}

	if len(matches) > 0 {
		focus := matches[0]
		result.Focus = &focus
	}

	return result
}

// Suggestions lists distinct addresses for the search box, in input order.
func Suggestions(query string, lots []model.Lot, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	seen := make(map[string]struct{}, len(lots))
	out := make([]string, 0, limit)

	for _, lot := range lots {
		if len(out) == limit {
			break
		}

		if lot.Address == "" {
			continue
		}

		if _, ok := seen[lot.Address]; ok {
			continue
		}

		if needle != "" && !contains(lot.Address, needle) {
			continue
		}

		seen[lot.Address] = struct{}{}
		out = append(out, lot.Address)
	}

	return out
}

func contains(value, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(value), lowerNeedle)
}
