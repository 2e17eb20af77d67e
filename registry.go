package verge

import (
	"fmt"
	"sync"
)

// registry maps app names to their registered models in registration order
var (
	registry     = make(map[string][]Model)
	registryApps []string
	registryMu   sync.RWMutex
)

// Register adds a model to an app's declaration list.
// This is called from init() functions in app packages.
//
// Example:
//
//	func init() {
//	    verge.Register("blog", Post)
//	    verge.Register("blog", Comment)
//	}
//
// Registering a nil model, an empty app name, or a second model with the
// same name in the same app panics: these are programmer errors that must
// surface at process start, not mid-sync.
func Register(app string, m Model) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if app == "" {
		panic("verge: Register called with empty app name")
	}
	if m == nil {
		panic(fmt.Sprintf("verge: Register model is nil for app %s", app))
	}

	name := m.ModelName()
	for _, existing := range registry[app] {
		if existing.ModelName() == name {
			panic(fmt.Sprintf("verge: Register called twice for model %s in app %s", name, app))
		}
	}

	if _, exists := registry[app]; !exists {
		registryApps = append(registryApps, app)
	}
	registry[app] = append(registry[app], m)
}

// ModelsFor returns the app's models in registration order, omitting
// models that opted out of sync. An app with no registrations yields an
// empty slice, not an error; the caller decides whether that is worth
// reporting.
func ModelsFor(app string) []Model {
	registryMu.RLock()
	defer registryMu.RUnlock()

	models := make([]Model, 0, len(registry[app]))
	for _, m := range registry[app] {
		if sk, ok := m.(syncSkipper); ok && sk.SyncSkipped() {
			continue
		}
		models = append(models, m)
	}
	return models
}

// AllModelsFor returns every model registered for the app, including ones
// excluded from sync. The development server uses this for introspection.
func AllModelsFor(app string) []Model {
	registryMu.RLock()
	defer registryMu.RUnlock()

	models := make([]Model, len(registry[app]))
	copy(models, registry[app])
	return models
}

// RegisteredApps returns app names in first-registration order.
// Useful for introspection and debugging.
func RegisteredApps() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	apps := make([]string, len(registryApps))
	copy(apps, registryApps)
	return apps
}

// UnregisterAll clears the registry.
// This is primarily useful for testing.
func UnregisterAll() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string][]Model)
	registryApps = nil
}
