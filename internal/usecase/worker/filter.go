package worker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	domainUser "skillconnect/internal/domain/user"

	"github.com/umahmood/haversine"
)

const defaultRadiusKm = 10.0

// geoPoint is a parsed "lat,lon" pair
type geoPoint struct {
	coord haversine.Coord
}

func parseNear(value string) (*geoPoint, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("near must be \"lat,lon\"")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid latitude in near")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid longitude in near")
	}
	return &geoPoint{coord: haversine.Coord{Lat: lat, Lon: lon}}, nil
}

// distanceKm is the great-circle distance to loc
func (p *geoPoint) distanceKm(loc *domainUser.Location) float64 {
	_, km := haversine.Distance(p.coord, haversine.Coord{Lat: loc.Latitude, Lon: loc.Longitude})
	return km
}

func matchesSearch(u *domainUser.User, term string) bool {
	if strings.Contains(strings.ToLower(u.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(string(u.Worker.Category)), term) {
		return true
	}
	for _, skill := range u.Worker.Skills {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

func matchesLocation(u *domainUser.User, term string) bool {
	loc := u.Worker.Location
	if loc == nil {
		return false
	}
	return strings.Contains(strings.ToLower(loc.City), term) ||
		strings.Contains(strings.ToLower(loc.State), term)
}

// sortByRating orders by rating, then review count, both descending
func sortByRating(workers []*domainUser.User) {
	sort.SliceStable(workers, func(i, j int) bool {
		a, b := workers[i].Worker, workers[j].Worker
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ReviewCount > b.ReviewCount
	})
}
