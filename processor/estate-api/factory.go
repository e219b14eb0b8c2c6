package estateapi

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface required for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the estate-api component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "estate-api",
		Factory:     NewComponent,
		Schema:      estateAPISchema,
		Type:        "processor",
		Protocol:    "http",
		Domain:      "faraid",
		Description: "HTTP endpoints for estate distribution and rule catalog access",
		Version:     "0.1.0",
	})
}
