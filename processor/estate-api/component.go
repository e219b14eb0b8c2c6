// Package estateapi provides HTTP endpoints for estate distribution.
// It exposes a compute endpoint backed by the inheritance engine plus
// read endpoints for the active rule catalog and persisted rulings.
package estateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/faraid/catalog"
	"github.com/c360studio/faraid/engine"
	"github.com/c360studio/faraid/storage"
)

// Component implements the estate-api component.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	// Catalog sources, checked in order: file watcher, KV store,
	// built-in default.
	watcher *catalog.Watcher
	store   *storage.Store

	// Lifecycle state machine
	// States: 0=stopped, 1=starting, 2=running, 3=stopping
	state     atomic.Int32
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics.
	computations atomic.Int64
	errorsCount  atomic.Int64
}

const (
	stateStopped  = 0
	stateStarting = 1
	stateRunning  = 2
	stateStopping = 3
)

// NewComponent constructs an estate-api Component from raw JSON config and deps.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Component{
		name:       "estate-api",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
	}

	if config.CatalogPath != "" {
		watcher, err := catalog.NewWatcher(config.CatalogPath, c.logger)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", config.CatalogPath, err)
		}
		c.watcher = watcher
	}

	return c, nil
}

// Initialize prepares the component for startup.
func (c *Component) Initialize() error {
	c.logger.Debug("Initialized estate-api",
		"catalog_path", c.config.CatalogPath,
		"storage_enabled", c.config.StorageEnabled)
	return nil
}

// Start begins serving the component.
func (c *Component) Start(ctx context.Context) error {
	if !c.state.CompareAndSwap(stateStopped, stateStarting) {
		current := c.state.Load()
		if current == stateRunning || current == stateStarting {
			return fmt.Errorf("component already running or starting")
		}
		return fmt.Errorf("component in invalid state: %d", current)
	}

	defer func() {
		if c.state.Load() == stateStarting {
			c.state.Store(stateStopped)
		}
	}()

	subCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.cancel = cancel
	c.startTime = time.Now()
	c.mu.Unlock()

	if c.config.StorageEnabled && c.natsClient != nil {
		js, err := c.natsClient.JetStream()
		if err != nil {
			cancel()
			return fmt.Errorf("get jetstream: %w", err)
		}
		store, err := storage.NewStore(subCtx, js)
		if err != nil {
			cancel()
			return fmt.Errorf("create store: %w", err)
		}
		c.mu.Lock()
		c.store = store
		c.mu.Unlock()
	}

	if c.watcher != nil && c.config.WatchCatalog {
		if err := c.watcher.Start(subCtx); err != nil {
			cancel()
			return fmt.Errorf("start catalog watcher: %w", err)
		}
	}

	c.state.Store(stateRunning)
	c.logger.Info("estate-api started",
		"catalog_path", c.config.CatalogPath,
		"storage_enabled", c.store != nil)
	return nil
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	if !c.state.CompareAndSwap(stateRunning, stateStopping) {
		current := c.state.Load()
		if current == stateStopped || current == stateStopping {
			return nil
		}
		return fmt.Errorf("component in unexpected state: %d", current)
	}

	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	c.state.Store(stateStopped)
	c.logger.Info("estate-api stopped",
		"computations", c.computations.Load(),
		"errors", c.errorsCount.Load())
	return nil
}

// snapshot resolves the catalog the next computation runs against.
// Watcher-backed catalogs win over the KV store, which wins over the
// built-in default.
func (c *Component) snapshot(ctx context.Context) *engine.Snapshot {
	if c.watcher != nil {
		return c.watcher.Snapshot()
	}

	c.mu.RLock()
	store := c.store
	c.mu.RUnlock()

	if store != nil {
		snap, err := store.Snapshot(ctx)
		if err == nil {
			return snap
		}
		c.logger.Warn("Stored catalog unavailable, using default", "error", err)
	}

	return catalog.Default()
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "estate-api",
		Type:        "processor",
		Description: "HTTP endpoints for estate distribution and rule catalog access",
		Version:     "0.1.0",
	}
}

// InputPorts returns an empty port list, this component has no NATS inputs.
func (c *Component) InputPorts() []component.Port {
	return []component.Port{}
}

// OutputPorts returns an empty port list, this component has no NATS outputs.
func (c *Component) OutputPorts() []component.Port {
	return []component.Port{}
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return estateAPISchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	state := c.state.Load()
	running := state == stateRunning

	c.mu.RLock()
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	switch state {
	case stateStarting:
		status = "starting"
	case stateRunning:
		status = "running"
	case stateStopping:
		status = "stopping"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errorsCount.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{}
}
