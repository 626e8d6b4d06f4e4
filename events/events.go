package events

import (
	"github.com/ethereum/go-ethereum/event"
	"github.com/wandermap/traveld/types/travel"
)

// TravelDataUpdated fires whenever the provider finishes a recompute,
// whether from a cold load or a filter-config update. The payload is the
// freshly derived data; subscribers (the debug websocket, mostly) must
// treat it as read-only.
var TravelDataUpdated = event.FeedOf[*travel.TravelData]{}

// FilterConfigUpdated fires when an operator replaces the active
// filter configuration.
var FilterConfigUpdated = event.FeedOf[*travel.FilterConfig]{}
