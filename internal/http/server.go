package http

import (
	"container/list"
	"net/http"
	"sync"
	"time"

	"paycycle/internal/middleware/trace"
	"paycycle/internal/services"
)

// LRU cache with TTL and size-based eviction
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// Server is the JSON API front of the budgeting engine.
type Server struct {
	http.Server
	svc         *services.BudgetService
	rateLimiter *rateLimiter

	// Caches the user-data read; every mutation for an email invalidates it.
	userDataCache *lruCache[services.UserData]
}

func NewServer(addr string, svc *services.BudgetService) *Server {
	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		svc:           svc,
		rateLimiter:   newRateLimiter(),
		userDataCache: newLRUCache[services.UserData](256, 30*time.Second),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/signup", s.handleSignup)
	mux.HandleFunc("/api/expenses", s.handleAddExpense)
	mux.HandleFunc("/api/expenses/delete", s.handleDeleteExpense)
	mux.HandleFunc("/api/payday", s.handlePayday)
	mux.HandleFunc("/api/userdata", s.handleUserData)
	mux.HandleFunc("/api/notifications/delete", s.handleDeleteNotification)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.Server.Handler = trace.NewMiddleware(clientIP).Middleware(s.withRateLimit(mux))
	return s
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Close stops the rate limiter's cleanup goroutine.
func (s *Server) Close() error {
	s.rateLimiter.stop()
	return s.Server.Close()
}
