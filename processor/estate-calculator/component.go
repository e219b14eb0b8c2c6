// Package estatecalculator provides a JetStream processor that computes
// estate distributions asynchronously. It consumes ComputeRequest
// messages, runs the inheritance engine against the active rule
// catalog, persists the ruling, and publishes a ComputeResult on a
// request-scoped subject.
package estatecalculator

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
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/faraid/catalog"
	"github.com/c360studio/faraid/engine"
	"github.com/c360studio/faraid/graph"
	"github.com/c360studio/faraid/storage"
)

// Component implements the estate-calculator processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	// Catalog sources, checked in order: file watcher, KV store,
	// built-in default.
	watcher *catalog.Watcher
	store   *storage.Store

	// JetStream consumer state.
	consumer jetstream.Consumer

	// Lifecycle.
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics.
	requestsProcessed atomic.Int64
	rulingsComputed   atomic.Int64
	errorsCount       atomic.Int64
	lastActivityMu    sync.RWMutex
	lastActivity      time.Time
}

// NewComponent constructs an estate-calculator Component from raw JSON
// config and semstreams dependencies.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Apply defaults for any unset fields.
	defaults := DefaultConfig()
	if config.StreamName == "" {
		config.StreamName = defaults.StreamName
	}
	if config.ConsumerName == "" {
		config.ConsumerName = defaults.ConsumerName
	}
	if config.ResultSubjectPrefix == "" {
		config.ResultSubjectPrefix = defaults.ResultSubjectPrefix
	}
	if config.Ports == nil {
		config.Ports = defaults.Ports
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Component{
		name:       "estate-calculator",
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
	c.logger.Debug("Initialized estate-calculator",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName)
	return nil
}

// Start begins consuming ComputeRequest messages from JetStream.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	c.running = true
	c.startTime = time.Now()

	subCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	js, err := c.natsClient.JetStream()
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get jetstream: %w", err)
	}

	stream, err := js.Stream(subCtx, c.config.StreamName)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get stream %s: %w", c.config.StreamName, err)
	}

	if c.config.StorageEnabled {
		store, err := storage.NewStore(subCtx, js)
		if err != nil {
			c.rollbackStart(cancel)
			return fmt.Errorf("create store: %w", err)
		}
		c.mu.Lock()
		c.store = store
		c.mu.Unlock()
	}

	if c.watcher != nil {
		if err := c.watcher.Start(subCtx); err != nil {
			c.rollbackStart(cancel)
			return fmt.Errorf("start catalog watcher: %w", err)
		}
	}

	requestSubject := "estate.compute.request"
	if c.config.Ports != nil && len(c.config.Ports.Inputs) > 0 {
		requestSubject = c.config.Ports.Inputs[0].Subject
	}

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		FilterSubject: requestSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    3,
	}

	consumer, err := stream.CreateOrUpdateConsumer(subCtx, consumerConfig)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("create consumer: %w", err)
	}
	c.consumer = consumer

	go c.consumeLoop(subCtx)

	c.logger.Info("estate-calculator started",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"subject", requestSubject)

	return nil
}

func (c *Component) rollbackStart(cancel context.CancelFunc) {
	c.mu.Lock()
	c.running = false
	c.cancel = nil
	c.mu.Unlock()
	cancel()
}

// consumeLoop fetches messages from the JetStream consumer in a tight
// loop until the context is cancelled.
func (c *Component) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := c.consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Debug("Fetch timeout or error", "error", err)
			continue
		}

		for msg := range msgs.Messages() {
			c.handleMessage(ctx, msg)
		}

		if msgs.Error() != nil && msgs.Error() != context.DeadlineExceeded {
			c.logger.Warn("Message fetch error", "error", msgs.Error())
		}
	}
}

// handleMessage processes a single ComputeRequest message. Structural
// failures are ACKed since redelivery cannot fix them; storage and
// publish failures are NAKed for retry.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.requestsProcessed.Add(1)
	c.updateLastActivity()

	var req ComputeRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to parse compute request", "error", err)
		if ackErr := msg.Ack(); ackErr != nil {
			c.logger.Warn("Failed to ACK malformed message", "error", ackErr)
		}
		return
	}

	if err := req.Validate(); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Invalid compute request", "error", err)
		if ackErr := msg.Ack(); ackErr != nil {
			c.logger.Warn("Failed to ACK invalid message", "error", ackErr)
		}
		return
	}

	c.logger.Info("Processing compute request",
		"request_id", req.RequestID,
		"estate_value", req.Input.EstateValue,
		"heirs", len(req.Input.Heirs))

	result := ComputeResult{
		RequestID:   req.RequestID,
		CompletedAt: time.Now(),
	}

	report, err := engine.Compute(req.Input, c.snapshot(ctx))
	if err != nil {
		// Engine errors are terminal for this request: report them to
		// the caller and ACK.
		c.errorsCount.Add(1)
		result.Error = classifyEngineError(err)
		c.logger.Warn("Compute request rejected",
			"request_id", req.RequestID,
			"code", result.Error.Code,
			"detail", result.Error.Detail)

		if pubErr := c.publishResult(ctx, &result); pubErr != nil {
			c.logger.Error("Failed to publish error result",
				"request_id", req.RequestID,
				"error", pubErr)
			if nakErr := msg.Nak(); nakErr != nil {
				c.logger.Warn("Failed to NAK message", "error", nakErr)
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			c.logger.Warn("Failed to ACK message", "error", ackErr)
		}
		return
	}

	result.Report = report
	c.rulingsComputed.Add(1)

	c.mu.RLock()
	store := c.store
	c.mu.RUnlock()

	var ruling *storage.Ruling
	if store != nil {
		ruling = &storage.Ruling{
			RequestID: req.RequestID,
			Input:     req.Input,
			Report:    report,
			CreatedAt: result.CompletedAt,
		}
		id, err := store.CreateRuling(ctx, ruling)
		if err != nil {
			c.errorsCount.Add(1)
			c.logger.Error("Failed to persist ruling",
				"request_id", req.RequestID,
				"error", err)
			if nakErr := msg.Nak(); nakErr != nil {
				c.logger.Warn("Failed to NAK message", "error", nakErr)
			}
			return
		}
		result.RulingID = id.ID
	}

	if err := c.publishResult(ctx, &result); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to publish result",
			"request_id", req.RequestID,
			"error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	// Graph publication is best effort; the ruling is already durable.
	if c.config.PublishGraph && ruling != nil {
		ruling.ID = result.RulingID
		if err := graph.PublishRuling(ctx, c.natsClient, ruling); err != nil {
			c.logger.Warn("Failed to publish ruling to graph",
				"request_id", req.RequestID,
				"error", err)
		}
	}

	if ackErr := msg.Ack(); ackErr != nil {
		c.logger.Warn("Failed to ACK message", "error", ackErr)
	}

	c.logger.Info("Compute request completed",
		"request_id", req.RequestID,
		"ruling_id", result.RulingID,
		"status", report.Status)
}

// snapshot resolves the catalog the next computation runs against.
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

// publishResult publishes a ComputeResult on the request-scoped subject.
func (c *Component) publishResult(ctx context.Context, result *ComputeResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	js, err := c.natsClient.JetStream()
	if err != nil {
		return fmt.Errorf("get jetstream: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", c.config.ResultSubjectPrefix, result.RequestID)
	if _, err := js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}

	cancel := c.cancel
	c.running = false
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	c.logger.Info("estate-calculator stopped",
		"requests_processed", c.requestsProcessed.Load(),
		"rulings_computed", c.rulingsComputed.Load(),
		"errors", c.errorsCount.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "estate-calculator",
		Type:        "processor",
		Description: "Computes estate distributions from JetStream compute requests",
		Version:     "0.1.0",
	}
}

// InputPorts returns the configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, def := range c.config.Ports.Inputs {
		ports[i] = component.Port{
			Name:        def.Name,
			Direction:   component.DirectionInput,
			Required:    def.Required,
			Description: def.Description,
			Config:      component.NATSPort{Subject: def.Subject},
		}
	}
	return ports
}

// OutputPorts returns the configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, def := range c.config.Ports.Outputs {
		ports[i] = component.Port{
			Name:        def.Name,
			Direction:   component.DirectionOutput,
			Required:    def.Required,
			Description: def.Description,
			Config:      component.NATSPort{Subject: def.Subject},
		}
	}
	return ports
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return estateCalculatorSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
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
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
