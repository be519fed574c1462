package invite

import "trip-planner-go/internal/cache"

func KeyPrefix() cache.Key { return cache.NewKey("invites") }

func ListsKey() cache.Key { return cache.NewKey("invites", "list") }

func ListKey(itineraryID string) cache.Key { return cache.NewKey("invites", "list", itineraryID) }

func PendingKey(email string) cache.Key { return cache.NewKey("invites", "pending", email) }
