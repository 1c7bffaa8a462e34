// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Factory builds a driver. logger is never nil.
type Factory func(logger *slog.Logger) (Driver, error)

var registry = struct {
	sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes a driver available under name. Registering a name twice
// replaces the earlier factory.
func Register(name string, f Factory) {
	registry.Lock()
	defer registry.Unlock()

	registry.factories[strings.ToLower(name)] = f
}

// New builds the driver registered under name. A nil logger means
// slog.Default().
func New(name string, logger *slog.Logger) (Driver, error) {
	registry.RLock()
	f, ok := registry.factories[strings.ToLower(name)]
	registry.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownDriver, name, strings.Join(Names(), ", "))
	}

	if logger == nil {
		logger = slog.Default()
	}

	return f(logger.With("driver", strings.ToLower(name)))
}

// Names lists registered drivers in sorted order.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()

	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
