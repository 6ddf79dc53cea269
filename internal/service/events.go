package service

import (
	"encoding/json"

	ws "material-store/internal/websocket"
)

// Invalidation events pushed to connected dashboards after successful writes.
// Clients re-fetch the affected projection; the payload carries no row data.
const (
	EventPurchaseChanged     = "purchase_requests_changed"
	EventDistributionChanged = "distribution_requests_changed"
	EventVerificationChanged = "verification_requests_changed"
	EventStockChanged        = "stock_changed"
)

type changeEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

func notify(hub *ws.Hub, events ...string) {
	if hub == nil {
		return
	}
	for _, event := range events {
		payload, err := json.Marshal(changeEvent{Event: event})
		if err != nil {
			continue
		}
		hub.Broadcast <- payload
	}
}
