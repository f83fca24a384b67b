package telemetry

import "time"

type EventType string

const (
	EventCycleTick       EventType = "cycle_tick"
	EventCardActivated   EventType = "card_activated"
	EventCardPlaced      EventType = "card_placed"
	EventCardRemoved     EventType = "card_removed"
	EventCardPurchased   EventType = "card_purchased"
	EventChoiceResolved  EventType = "choice_resolved"
	EventPayoutDelivered EventType = "payout_delivered"
	EventShopRestocked   EventType = "shop_restocked"
	EventSaveExported    EventType = "save_exported"
	EventSaveImported    EventType = "save_imported"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
