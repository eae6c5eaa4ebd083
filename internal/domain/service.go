package domain

import "strings"

// Service is a read-only snapshot of a catalog entry.
type Service struct {
	ID              string
	Name            string
	Price           float64
	DurationMinutes int
}

// CompositeService aggregates several selected services into one virtual
// service: duration and price are the sums of the components, the identity
// is the concatenation of component ids. The composite is used for slot
// sizing only; persisted bookings stay one record per component.
func CompositeService(services []Service) Service {
	if len(services) == 1 {
		return services[0]
	}

	ids := make([]string, len(services))
	names := make([]string, len(services))
	composite := Service{}

	for i, svc := range services {
		ids[i] = svc.ID
		names[i] = svc.Name
		composite.Price += svc.Price
		composite.DurationMinutes += svc.DurationMinutes
	}

	composite.ID = strings.Join(ids, "+")
	composite.Name = strings.Join(names, " + ")
	return composite
}

// SlotSpan returns how many grid cells an appointment of the given duration
// consumes: ceil(duration / interval). Duration does not have to be an exact
// multiple of the interval.
func SlotSpan(durationMinutes, intervalMinutes int) int {
	if intervalMinutes <= 0 {
		return 0
	}
	return (durationMinutes + intervalMinutes - 1) / intervalMinutes
}
