package keybuilder

import (
	"fmt"
	"github.com/google/uuid"
)

const (
	Redis    string = "redis"
	Delivery string = "delivery"
)

// RedisDeliveryKeyBuild returns the cache key of a delivery event.
func RedisDeliveryKeyBuild(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", Redis, Delivery, id)
}
