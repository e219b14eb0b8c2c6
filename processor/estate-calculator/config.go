package estatecalculator

import (
	"fmt"
	"reflect"

	"github.com/c360studio/semstreams/component"
)

// estateCalculatorSchema defines the configuration schema.
var estateCalculatorSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the estate-calculator component.
type Config struct {
	// StreamName is the JetStream stream carrying compute requests.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream for compute requests,category:basic,default:ESTATE"`

	// ConsumerName is the durable consumer name for request consumption.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name for request consumption,category:basic,default:estate-calculator"`

	// ResultSubjectPrefix is the subject prefix results are published
	// under. The request ID is appended as the final token.
	ResultSubjectPrefix string `json:"result_subject_prefix" schema:"type:string,description:Subject prefix for compute results,category:basic,default:estate.compute.result"`

	// CatalogPath is an optional YAML rule catalog to compute against.
	// When empty the component falls back to the catalog stored in NATS
	// KV, then to the built-in default catalog.
	CatalogPath string `json:"catalog_path" schema:"type:string,description:Path to a YAML rule catalog,category:basic,default:"`

	// StorageEnabled persists computed rulings to NATS KV.
	StorageEnabled bool `json:"storage_enabled" schema:"type:bool,description:Persist rulings to NATS KV,category:basic,default:true"`

	// PublishGraph publishes completed rulings to the knowledge graph.
	PublishGraph bool `json:"publish_graph" schema:"type:bool,description:Publish rulings to the knowledge graph,category:advanced,default:true"`

	// Ports contains input/output port definitions.
	Ports *component.PortConfig `json:"ports,omitempty" schema:"type:ports,description:Input/output port definitions,category:basic"`
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		StreamName:          "ESTATE",
		ConsumerName:        "estate-calculator",
		ResultSubjectPrefix: "estate.compute.result",
		StorageEnabled:      true,
		PublishGraph:        true,
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "compute-requests",
					Type:        "jetstream",
					Subject:     "estate.compute.request",
					StreamName:  "ESTATE",
					Description: "Receive estate compute requests",
					Required:    true,
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "compute-results",
					Type:        "nats",
					Subject:     "estate.compute.result.>",
					Description: "Publish estate compute results",
					Required:    false,
				},
			},
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.ResultSubjectPrefix == "" {
		return fmt.Errorf("result_subject_prefix is required")
	}
	return nil
}
