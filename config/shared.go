// ABOUTME: Thread-safe holder for the active configuration
// ABOUTME: Read by the session between prompts, replaced by the file watcher on reload

package config

import "sync"

// SharedConfig wraps Config with a mutex for safe access between the session and the watcher
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

// NewSharedConfig returns a SharedConfig holding cfg
func NewSharedConfig(cfg Config) *SharedConfig {
	return &SharedConfig{config: cfg}
}

// Get returns a copy of the current config
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.config
}

// Update replaces the current config
func (sc *SharedConfig) Update(config Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.config = config
}
