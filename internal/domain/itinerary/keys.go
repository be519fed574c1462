package itinerary

import "trip-planner-go/internal/cache"

// Query keys mirror the shape consumers subscribe on: the whole entity,
// all lists, one user's list, one record.

func KeyPrefix() cache.Key { return cache.NewKey("itineraries") }

func ListsKey() cache.Key { return cache.NewKey("itineraries", "list") }

func ListKey(userID string) cache.Key { return cache.NewKey("itineraries", "list", userID) }

func DetailKey(id string) cache.Key { return cache.NewKey("itineraries", "detail", id) }

// DetailForKey nests the reader under the record so access checks are
// baked into the cached entry; DetailKey(id) invalidates every reader.
func DetailForKey(id, userID string) cache.Key {
	return cache.NewKey("itineraries", "detail", id, userID)
}
