package form

import (
	"container/list"
	"errors"
	"regexp"
	"sync"
)

// defaultPatternCacheSize bounds the number of compiled expressions kept per cache.
const defaultPatternCacheSize = 256

type patternEntry struct {
	expr string
	re   *regexp.Regexp
}

// patternCache keeps recently used compiled expressions. The least recently
// used expression is evicted once the capacity is reached.
type patternCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

func newPatternCache(capacity int) *patternCache {
	if capacity <= 0 {
		panic("form: pattern cache capacity must be positive")
	}
	return &patternCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// compile returns the cached expression or compiles and stores it.
// Compile failures are wrapped in ErrInvalidRule and never cached.
func (c *patternCache) compile(expr string) (*regexp.Regexp, error) {
	c.mu.Lock()
	if elem, ok := c.items[expr]; ok {
		c.order.MoveToFront(elem)
		re := elem.Value.(*patternEntry).re
		c.mu.Unlock()
		return re, nil
	}
	c.mu.Unlock()

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Join(ErrInvalidRule, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[expr]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*patternEntry).re, nil
	}
	c.items[expr] = c.order.PushFront(&patternEntry{expr: expr, re: re})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*patternEntry).expr)
	}
	return re, nil
}

func (c *patternCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// patterns is shared by regex rules and the tel filter.
var patterns = newPatternCache(defaultPatternCacheSize)
