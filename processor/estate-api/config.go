package estateapi

import (
	"reflect"

	"github.com/c360studio/semstreams/component"
)

// estateAPISchema holds the configuration schema generated from Config.
var estateAPISchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the estate-api component.
type Config struct {
	// CatalogPath is an optional YAML rule catalog to serve computations
	// from. When empty the component falls back to the catalog stored in
	// NATS KV, then to the built-in default catalog.
	CatalogPath string `json:"catalog_path" schema:"type:string,description:Path to a YAML rule catalog,category:basic,default:"`

	// WatchCatalog enables hot reload of CatalogPath on file change.
	WatchCatalog bool `json:"watch_catalog" schema:"type:bool,description:Reload the catalog file on change,category:advanced,default:false"`

	// StorageEnabled persists computed rulings to NATS KV and enables the
	// ruling retrieval endpoints.
	StorageEnabled bool `json:"storage_enabled" schema:"type:bool,description:Persist rulings to NATS KV,category:basic,default:true"`

	// Ports declares optional HTTP port configuration.
	Ports *component.PortConfig `json:"ports,omitempty" schema:"type:ports,description:Port configuration,category:basic"`
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		StorageEnabled: true,
	}
}

// Validate verifies the configuration is consistent.
func (c *Config) Validate() error {
	return nil
}
