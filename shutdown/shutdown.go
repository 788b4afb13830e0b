// Package shutdown runs cleanup hooks when the process is interrupted.
package shutdown

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/flanksource/commons/logger"
)

type hook struct {
	id    uint64
	label string
	fn    func()
}

var (
	hooks    = map[uint64]hook{}
	nextID   uint64
	hooksMux sync.Mutex
	once     sync.Once
)

// AddHook registers fn to run on interrupt. The returned function unregisters
// it and is safe to call more than once.
func AddHook(label string, fn func()) (remove func()) {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	nextID++
	id := nextID
	hooks[id] = hook{id: id, label: label, fn: fn}

	return func() {
		hooksMux.Lock()
		defer hooksMux.Unlock()
		delete(hooks, id)
	}
}

// Pending is the number of registered hooks
func Pending() int {
	hooksMux.Lock()
	defer hooksMux.Unlock()
	return len(hooks)
}

// Shutdown runs and unregisters every hook, most recently added first
func Shutdown() {
	hooksMux.Lock()
	pending := make([]hook, 0, len(hooks))
	for _, h := range hooks {
		pending = append(pending, h)
	}
	hooks = map[uint64]hook{}
	hooksMux.Unlock()

	if len(pending) == 0 {
		return
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].id > pending[j].id })

	logger.Debugf("Executing %d shutdown hooks", len(pending))
	for _, h := range pending {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("Panic in shutdown hook %s: %v", h.label, r)
				}
			}()
			logger.Debugf("Executing shutdown hook: %s", h.label)
			h.fn()
		}()
	}
}

// WaitForSignal blocks until SIGINT or SIGTERM, runs the hooks and exits with
// status 130. Start it in its own goroutine.
func WaitForSignal() {
	once.Do(func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived %s, cleaning up\n", sig)
		Shutdown()
		os.Exit(130)
	})
}
