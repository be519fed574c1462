package stop

import "trip-planner-go/internal/cache"

func KeyPrefix() cache.Key { return cache.NewKey("stops") }

func ListsKey() cache.Key { return cache.NewKey("stops", "list") }

func ListKey(itineraryID string) cache.Key { return cache.NewKey("stops", "list", itineraryID) }

func DetailKey(id string) cache.Key { return cache.NewKey("stops", "detail", id) }
