package redis_client

import (
	"context"
	"strconv"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/onboard/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// MirrorExpiration is how long a mirrored cache value survives without being refreshed
const MirrorExpiration = 10 * time.Minute

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["REDIS_ADDRESS"] != "" {
		address = env["REDIS_ADDRESS"]
	}

	if env["REDIS_PASSWORD"] != "" {
		password = env["REDIS_PASSWORD"]
	}

	if env["REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	return Client.Ping(context.Background()).Err()
}

// NewMirrorCache returns a string cache on top of client whose values expire after MirrorExpiration
func NewMirrorCache(client *redis.Client) *cache.Cache[string] {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(MirrorExpiration))

	return cache.New[string](redisStore)
}
