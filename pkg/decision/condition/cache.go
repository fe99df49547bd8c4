package condition

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// regexCache memoizes compiled regular expressions keyed by pattern.
// Invalid patterns are cached as nil so a bad pattern is not recompiled on
// every evaluation.
type regexCache struct {
	mu    sync.RWMutex
	cache map[string]*regexp.Regexp
}

func newRegexCache() *regexCache {
	return &regexCache{cache: make(map[string]*regexp.Regexp)}
}

// get returns the compiled regex for the pattern, or nil if the pattern is
// invalid.
func (c *regexCache) get(pattern string) *regexp.Regexp {
	c.mu.RLock()
	re, ok := c.cache[pattern]
	c.mu.RUnlock()
	if ok {
		return re
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Recheck: another goroutine may have compiled it between the RUnlock
	// and the Lock.
	if re, ok := c.cache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}
	c.cache[pattern] = re
	return re
}

// pathCache memoizes dot-split field paths.
type pathCache struct {
	mu    sync.RWMutex
	cache map[string][]string
}

func newPathCache() *pathCache {
	return &pathCache{cache: make(map[string][]string)}
}

func (c *pathCache) get(path string) []string {
	c.mu.RLock()
	segments, ok := c.cache[path]
	c.mu.RUnlock()
	if ok {
		return segments
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if segments, ok := c.cache[path]; ok {
		return segments
	}
	segments = strings.Split(path, ".")
	c.cache[path] = segments
	return segments
}

// dateCache memoizes parsed date strings. Parse failures are cached too, as
// zero-time entries with ok=false.
type dateCache struct {
	mu    sync.RWMutex
	cache map[string]dateEntry
}

type dateEntry struct {
	t  time.Time
	ok bool
}

func newDateCache() *dateCache {
	return &dateCache{cache: make(map[string]dateEntry)}
}

func (c *dateCache) get(value string) (time.Time, bool) {
	c.mu.RLock()
	entry, ok := c.cache[value]
	c.mu.RUnlock()
	if ok {
		return entry.t, entry.ok
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.cache[value]; ok {
		return entry.t, entry.ok
	}
	t, parsed := parseDateString(value)
	c.cache[value] = dateEntry{t: t, ok: parsed}
	return t, parsed
}

// dateLayouts are tried in order after the fast paths fail.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
}

// parseDateString parses a date string. Two common ISO-8601 shapes are
// checked first without calling time.Parse on every layout: a bare date
// (YYYY-MM-DD) and an RFC 3339 timestamp.
func parseDateString(value string) (time.Time, bool) {
	// Fast path: bare ISO date.
	if len(value) == 10 && value[4] == '-' && value[7] == '-' {
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	// Fast path: RFC 3339 timestamp.
	if len(value) >= 20 && value[4] == '-' && value[10] == 'T' {
		if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return t, true
		}
		// Fall through: some producers emit RFC 3339 without a zone.
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
