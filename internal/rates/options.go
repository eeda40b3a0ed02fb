package rates

import (
	"sort"
	"sync"

	"hotelrates/server/internal/models"
	"hotelrates/server/internal/normalize"
)

// facetResult is one branch's captured outcome; the join inspects it only
// after every branch has finished.
type facetResult[T any] struct {
	values T
	err    error
}

func fetchFacet[T any](wg *sync.WaitGroup, out *facetResult[T], fetch func() (T, error)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		out.values, out.err = fetch()
	}()
}

// FilterOptions assembles the facet-value bundle for the filter UI. The seven
// fetches run concurrently and independently; a failed facet degrades to an
// empty list (devices to ["desktop"]) without touching the others, so the
// bundle itself never fails.
func (s *Service) FilterOptions() models.FilterOptions {
	var (
		wg         sync.WaitGroup
		otas       facetResult[[]string]
		devices    facetResult[[]string]
		los        facetResult[[]int]
		capacities facetResult[[]string]
		roomTypes  facetResult[[]string]
		mealTypes  facetResult[[]string]
	)

	fetchFacet(&wg, &otas, s.store.DistinctOTAs)
	fetchFacet(&wg, &devices, s.store.DistinctDevices)
	fetchFacet(&wg, &los, s.store.DistinctLengthsOfStay)
	fetchFacet(&wg, &capacities, s.store.DistinctCapacities)
	fetchFacet(&wg, &roomTypes, s.store.DistinctRoomTypes)
	fetchFacet(&wg, &mealTypes, s.store.DistinctMealTypes)
	wg.Wait()

	options := models.FilterOptions{
		OTAs:          s.facetStrings("otas", otas),
		Devices:       s.facetStrings("devices", devices),
		LengthsOfStay: []int{},
		Guests:        []int{},
		RoomTypes:     s.facetStrings("roomTypes", roomTypes),
		MealTypes:     s.facetStrings("mealTypes", mealTypes),
		// Not backed by data yet.
		Compsets: []string{},
	}

	if los.err != nil {
		s.facetFailed("lengthsOfStay", los.err)
	} else if los.values != nil {
		options.LengthsOfStay = los.values
	}

	if capacities.err != nil {
		s.facetFailed("guests", capacities.err)
	} else {
		options.Guests = guestValues(capacities.values)
	}

	if devices.err != nil {
		options.Devices = []string{"desktop"}
	}

	return options
}

// facetFailed records one degraded facet fetch.
func (s *Service) facetFailed(name string, err error) {
	s.logger.WithError(err).Warnf("Failed to fetch %s options", name)
	if s.registry != nil {
		s.registry.FacetFailures.WithLabelValues(name).Inc()
	}
}

func (s *Service) facetStrings(name string, r facetResult[[]string]) []string {
	if r.err != nil {
		s.facetFailed(name, r.err)
		return []string{}
	}
	if r.values == nil {
		return []string{}
	}
	return r.values
}

// guestValues derives the guest facet from capacity texts: first integer per
// text, deduplicated, ascending.
func guestValues(capacities []string) []int {
	seen := make(map[int]bool)
	values := []int{}
	for _, c := range capacities {
		text := c
		n := normalize.GuestsFromCapacity(&text)
		if !seen[n] {
			seen[n] = true
			values = append(values, n)
		}
	}
	sort.Ints(values)
	return values
}
