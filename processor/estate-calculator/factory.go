package estatecalculator

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface required for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the estate-calculator component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "estate-calculator",
		Factory:     NewComponent,
		Schema:      estateCalculatorSchema,
		Type:        "processor",
		Protocol:    "jetstream",
		Domain:      "faraid",
		Description: "Computes estate distributions from JetStream compute requests",
		Version:     "0.1.0",
	})
}
