package accommodation

import "trip-planner-go/internal/cache"

func KeyPrefix() cache.Key { return cache.NewKey("accommodations") }

func ListsKey() cache.Key { return cache.NewKey("accommodations", "list") }

func ListKey(itineraryID string) cache.Key {
	return cache.NewKey("accommodations", "list", "itinerary", itineraryID)
}

func DetailKey(id string) cache.Key { return cache.NewKey("accommodations", "detail", id) }
