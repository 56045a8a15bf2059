package keyboardlayout

import "sync"

var (
	registryOnce sync.Once
	registry     map[string]*Layout
)

func initRegistry() {
	registry = map[string]*Layout{
		"en-US": newEnUS(),
		"es-ES": newEsES(),
	}
}

// Get returns the layout for an ISO-style code, or false if unknown.
func Get(isoCode string) (*Layout, bool) {
	registryOnce.Do(initRegistry)
	l, ok := registry[isoCode]
	return l, ok
}

// GetOrDefault returns the layout for isoCode, falling back to en-US when
// the code is unrecognized.
func GetOrDefault(isoCode string) *Layout {
	if l, ok := Get(isoCode); ok {
		return l
	}
	l, _ := Get("en-US")
	return l
}
