package cache

import (
	"errors"
	"os"

	"github.com/go-redis/redis"

	"github.com/wayming/fdc/fdclogger"
)

type ICacheManager interface {
	Connect() error
	Disconnect() error
	AddToSet(key string, member string) error
	RemoveFromSet(key string, member string) error
	GetAllFromSet(key string) ([]string, error)
	GetLength(key string) (int64, error)
	DeleteSet(key string) error
	MoveSet(from string, to string) error
}

type CacheManager struct {
	clientHandle *redis.Client
}

func NewCacheManager() *CacheManager {
	return &CacheManager{}
}

func (m *CacheManager) Connect() error {
	redisAddr := os.Getenv("REDISHOST") + ":" + os.Getenv("REDISPORT")
	m.clientHandle = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: "",
		DB:       0})

	res, err := m.clientHandle.Ping().Result()
	if err != nil {
		return errors.New("Failed to connect to " + redisAddr + ". Error: " + err.Error())
	}
	fdclogger.LoggerInstance.Printf("Connected to %s: %s", redisAddr, res)
	return nil
}

func (m *CacheManager) Disconnect() error {
	if m.clientHandle == nil {
		return nil
	}
	return m.clientHandle.Close()
}

func (m *CacheManager) AddToSet(key string, member string) error {
	if err := m.clientHandle.SAdd(key, member).Err(); err != nil {
		return errors.New("Failed to add " + member + " to set " + key + ". Error: " + err.Error())
	}
	return nil
}

func (m *CacheManager) RemoveFromSet(key string, member string) error {
	if err := m.clientHandle.SRem(key, member).Err(); err != nil {
		return errors.New("Failed to remove " + member + " from set " + key + ". Error: " + err.Error())
	}
	return nil
}

func (m *CacheManager) GetAllFromSet(key string) ([]string, error) {
	members, err := m.clientHandle.SMembers(key).Result()
	if err != nil {
		return nil, errors.New("Failed to get members of set " + key + ". Error: " + err.Error())
	}
	return members, nil
}

func (m *CacheManager) GetLength(key string) (int64, error) {
	length, err := m.clientHandle.SCard(key).Result()
	if err != nil {
		return 0, errors.New("Failed to get length of set " + key + ". Error: " + err.Error())
	}
	return length, nil
}

func (m *CacheManager) DeleteSet(key string) error {
	if err := m.clientHandle.Del(key).Err(); err != nil {
		return errors.New("Failed to delete set " + key + ". Error: " + err.Error())
	}
	return nil
}

// MoveSet merges every member of the from set into the to set and removes the
// from set.
func (m *CacheManager) MoveSet(from string, to string) error {
	members, err := m.GetAllFromSet(from)
	if err != nil {
		return err
	}
	for _, member := range members {
		if err := m.AddToSet(to, member); err != nil {
			return err
		}
	}
	return m.DeleteSet(from)
}
