package attachment

import "trip-planner-go/internal/cache"

func KeyPrefix() cache.Key { return cache.NewKey("attachments") }

func EntityListKey(entityType EntityType, entityID string) cache.Key {
	return cache.NewKey("attachments", "list", string(entityType), entityID)
}
