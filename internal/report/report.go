// Package report renders a Summary as human-readable text.
package report

import (
	"delivery-itinerary-service/internal/services"
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteSummary prints the run totals followed by one block per vehicle.
func WriteSummary(w io.Writer, s *services.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Output Summary:")
	if s.RunID != "" {
		fmt.Fprintf(tw, "\tRun:\t%s\n", s.RunID)
	}
	if err := s.Err(); err != nil {
		fmt.Fprintf(tw, "\tSolve status:\t%v\n", err)
	}
	fmt.Fprintf(tw, "\tTotal Available Orders:\t%d\n", s.AvailableOrders)
	fmt.Fprintf(tw, "\tTotal Orders Assigned:\t%d\n", s.AssignedCount)
	fmt.Fprintf(tw, "\tTotal Orders Unassigned:\t%d\n", s.UnassignedCount)

	fmt.Fprintln(tw, "Vehicle Job Details:")
	fmt.Fprintf(tw, "\tVehicles Available:\t%d\n", s.VehiclesAvailable)
	fmt.Fprintf(tw, "\tVehicles Assigned:\t%d\n", s.VehiclesUsed)

	for _, id := range s.VehicleIDs() {
		it := s.Itineraries[id]
		fmt.Fprintf(tw, "Vehicle %d (truck %d):\n", it.VehicleID, it.VehicleIndex)
		fmt.Fprintf(tw, "\tWindow:\t%s .. %s\n", it.ActualStart, it.ActualEnd)
		fmt.Fprintf(tw, "\tDistance (km):\t%.2f\n", it.DistanceTraveled)
		fmt.Fprintf(tw, "\tTravel (min):\t%.2f\n", it.TimeTraveled)
		fmt.Fprintf(tw, "\tWork (min):\t%d of %d available\n", it.WorkTime, it.AvailableMinutes)
		for _, j := range it.Jobs {
			fmt.Fprintf(tw, "\t  order %d\t%s\t%s -> %s\n", j.OrderID, j.Type, j.ActualBegin, j.ActualEnd)
		}
	}

	for _, f := range s.Failures {
		fmt.Fprintf(tw, "Skipped truck %d:\t%s\n", f.VehicleIndex, f.Reason)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
