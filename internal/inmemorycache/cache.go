package inmemorycache

import (
	"encoding/json"
	"sync"
	"time"
)

type StatsCacheData struct {
	Value float64 `json:"value"`
}

type cacheEntry struct {
	data       []byte
	expiration time.Time
}

type Cache interface {
	Get(key string) (*StatsCacheData, bool, error)
	// Generation changes on every Purge. Read it before loading the data
	// that will be passed to Set.
	Generation() uint64
	// Set drops data computed before a Purge that happened after generation
	// was read.
	Set(key string, data *StatsCacheData, ttl time.Duration, generation uint64) error
	Purge()
}

type InMemoryCache struct {
	cache           map[string]cacheEntry
	generation      uint64
	mutex           sync.Mutex
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

const DefaultCleanupInterval = time.Minute

// NewInMemoryCacheProvider starts the expiry loop. A non-positive interval
// falls back to DefaultCleanupInterval.
func NewInMemoryCacheProvider(cleanupInterval time.Duration) *InMemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	provider := &InMemoryCache{
		cache:           make(map[string]cacheEntry),
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
	}

	go provider.startCleanup()

	return provider
}

func (m *InMemoryCache) Get(key string) (*StatsCacheData, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.cache[key]
	if !exists {
		return nil, false, nil
	}

	if time.Now().After(entry.expiration) {
		delete(m.cache, key)
		return nil, false, nil
	}

	var data StatsCacheData
	if err := json.Unmarshal(entry.data, &data); err != nil {
		return nil, false, err
	}

	return &data, true, nil
}

func (m *InMemoryCache) Generation() uint64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.generation
}

func (m *InMemoryCache) Set(key string, data *StatsCacheData, ttl time.Duration, generation uint64) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if generation != m.generation {
		return nil
	}

	m.cache[key] = cacheEntry{
		data:       jsonData,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Purge drops every entry. Called after ingestion changes the stored days.
func (m *InMemoryCache) Purge() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cache = make(map[string]cacheEntry)
	m.generation++
}

func (m *InMemoryCache) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return len(m.cache)
}

func (m *InMemoryCache) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *InMemoryCache) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()
			for k, v := range m.cache {
				if now.After(v.expiration) {
					delete(m.cache, k)
				}
			}
			m.mutex.Unlock()
		case <-m.stop:
			return
		}
	}
}
