package textpage

import "sync"

// GlobalConfig is the process-wide configuration environment created by
// GlobalInit before any Page is constructed and released by GlobalRelease
// after the last Page is destroyed (spec.md §6, §5). It holds the shared
// toggles plus the CMap cache and per-glyph-name Unicode cache, each
// guarded by its own mutex so one cache's writers never block the other's
// readers.
type GlobalConfig struct {
	togglesMu sync.RWMutex
	keepTinyChars       bool
	mapNumericCharNames bool
	mapUnknownCharNames bool

	nameCacheMu sync.RWMutex
	nameToUnicode map[string]rune

	cmapCacheMu sync.RWMutex
	cmapCache map[string]*CMapEntry
}

// CMapEntry is a cached, parsed ToUnicode CMap keyed by (collection, name).
type CMapEntry struct {
	CIDToUnicode map[uint16]rune
}

var (
	globalMu     sync.Mutex
	globalConfig *GlobalConfig
)

// GlobalInit creates the process-wide configuration environment. It is a
// no-op if already initialized (mirrors PDFTextLib's "call before any
// alloc" contract without making repeated calls an error).
func GlobalInit() *GlobalConfig {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		globalConfig = &GlobalConfig{
			mapNumericCharNames: true,
			mapUnknownCharNames: true,
			nameToUnicode:       make(map[string]rune),
			cmapCache:           make(map[string]*CMapEntry),
		}
	}
	return globalConfig
}

// GlobalRelease tears down the process-wide configuration environment.
// Callers must have destroyed every Page first.
func GlobalRelease() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}

// Global returns the current process-wide configuration, or nil if
// GlobalInit has not been called.
func Global() *GlobalConfig {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalConfig
}

// SetKeepTinyChars toggles textKeepTinyChars process-wide.
func (g *GlobalConfig) SetKeepTinyChars(v bool) {
	g.togglesMu.Lock()
	defer g.togglesMu.Unlock()
	g.keepTinyChars = v
}

// KeepTinyChars reads textKeepTinyChars.
func (g *GlobalConfig) KeepTinyChars() bool {
	g.togglesMu.RLock()
	defer g.togglesMu.RUnlock()
	return g.keepTinyChars
}

// SetMapNumericCharNames toggles mapNumericCharNames process-wide.
func (g *GlobalConfig) SetMapNumericCharNames(v bool) {
	g.togglesMu.Lock()
	defer g.togglesMu.Unlock()
	g.mapNumericCharNames = v
}

// MapNumericCharNames reads mapNumericCharNames.
func (g *GlobalConfig) MapNumericCharNames() bool {
	g.togglesMu.RLock()
	defer g.togglesMu.RUnlock()
	return g.mapNumericCharNames
}

// SetMapUnknownCharNames toggles mapUnknownCharNames process-wide.
func (g *GlobalConfig) SetMapUnknownCharNames(v bool) {
	g.togglesMu.Lock()
	defer g.togglesMu.Unlock()
	g.mapUnknownCharNames = v
}

// MapUnknownCharNames reads mapUnknownCharNames.
func (g *GlobalConfig) MapUnknownCharNames() bool {
	g.togglesMu.RLock()
	defer g.togglesMu.RUnlock()
	return g.mapUnknownCharNames
}

// LookupCharName resolves a glyph name (e.g. "space", "uni00E9") to a
// Unicode code point using the process-wide name cache, populating it on
// first use.
func (g *GlobalConfig) LookupCharName(name string) (rune, bool) {
	g.nameCacheMu.RLock()
	r, ok := g.nameToUnicode[name]
	g.nameCacheMu.RUnlock()
	return r, ok
}

// AddCharName registers a glyph-name to Unicode mapping in the process-wide
// cache.
func (g *GlobalConfig) AddCharName(name string, r rune) {
	g.nameCacheMu.Lock()
	defer g.nameCacheMu.Unlock()
	g.nameToUnicode[name] = r
}

// CMap returns the cached CMap entry for key, if present.
func (g *GlobalConfig) CMap(key string) (*CMapEntry, bool) {
	g.cmapCacheMu.RLock()
	defer g.cmapCacheMu.RUnlock()
	e, ok := g.cmapCache[key]
	return e, ok
}

// AddCMap inserts a parsed CMap entry into the process-wide cache.
func (g *GlobalConfig) AddCMap(key string, entry *CMapEntry) {
	g.cmapCacheMu.Lock()
	defer g.cmapCacheMu.Unlock()
	g.cmapCache[key] = entry
}
