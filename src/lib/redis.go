package lib

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil on a bad URL; the checkout cache is optional and
// callers treat a nil client as "no cache".
func ConnectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	return redis.NewClient(opt)
}
