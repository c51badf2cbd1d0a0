package services

import (
	"delivery-itinerary-service/internal/domain"
	"sort"
)

// Flatten turns itineraries into travel-leg records, vehicles in ascending id order.
// Each job leads to the next job of the same vehicle; the last job's leg
// ends where it starts.
func Flatten(itineraries map[int]*domain.Itinerary) []domain.MapRecord {
	ids := make([]int, 0, len(itineraries))
	n := 0
	for id, it := range itineraries {
		ids = append(ids, id)
		n += len(it.Jobs)
	}
	sort.Ints(ids)

	records := make([]domain.MapRecord, 0, n)
	for _, id := range ids {
		jobs := itineraries[id].Jobs
		for i, job := range jobs {
			closing := i+1 == len(jobs)
			dest := job.Coord
			if !closing {
				dest = jobs[i+1].Coord
			}
			records = append(records, domain.MapRecord{
				VehicleID:   id,
				OrderID:     job.OrderID,
				Origin:      job.Coord,
				Destination: dest,
				Closing:     closing,
			})
		}
	}
	return records
}
