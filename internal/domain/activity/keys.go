package activity

import "trip-planner-go/internal/cache"

func KeyPrefix() cache.Key { return cache.NewKey("activities") }

func ListsKey() cache.Key { return cache.NewKey("activities", "list") }

func StopListKey(stopID string) cache.Key {
	return cache.NewKey("activities", "list", "stop", stopID)
}

func ItineraryListKey(itineraryID string) cache.Key {
	return cache.NewKey("activities", "list", "itinerary", itineraryID)
}

func DetailKey(id string) cache.Key { return cache.NewKey("activities", "detail", id) }
