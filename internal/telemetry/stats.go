package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period            string            `json:"period"`
	EventCounts       map[EventType]int `json:"event_counts"`
	CycleTicks        int               `json:"cycle_ticks"`
	Activations       int               `json:"activations"`
	Purchases         int               `json:"purchases"`
	PayoutsDelivered  int               `json:"payouts_delivered"`
	PayoutTotal       float64           `json:"payout_total"`
	ResourcesPerTick  float64           `json:"resources_per_tick"`
	ActivationsByCard map[string]int    `json:"activations_by_card"`
}

// CalculateStats computes balance stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:            since.Format("2006-01-02"),
		EventCounts:       make(map[EventType]int),
		ActivationsByCard: make(map[string]int),
	}

	var resourcesTotal float64
	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventCycleTick:
			stats.CycleTicks++
			if res, ok := metadata["resources"].(float64); ok {
				resourcesTotal += res
			}
		case EventCardActivated:
			stats.Activations++
			if name, ok := metadata["card"].(string); ok {
				stats.ActivationsByCard[name]++
			}
		case EventCardPurchased:
			stats.Purchases++
		case EventPayoutDelivered:
			stats.PayoutsDelivered++
			if amt, ok := metadata["amount"].(float64); ok {
				stats.PayoutTotal += amt
			}
		}
	}

	if stats.CycleTicks > 0 {
		stats.ResourcesPerTick = resourcesTotal / float64(stats.CycleTicks)
	}

	return stats, nil
}
