// Package drivers provides the reference motor drivers that ship with
// motorctl. They simulate hardware: every actuation is applied to in-memory
// state only, which makes them suitable for development, demos and tests.
package drivers

import (
	"github.com/driveworks/motorctl/motor"
)

// APIVersion is the driver API revision these drivers are written against.
const APIVersion = "1.0.0"

// Register installs the reference drivers into a registry. Call it once at
// startup before handing the registry to a controller.
func Register(registry *motor.Registry) error {
	entries := []struct {
		name        string
		description string
		factory     motor.Factory
	}{
		{"sim_servo", "simulated RC servo on a single GPIO pin", NewSimServo},
		{"sim_stepper", "simulated step/dir stepper driver", NewSimStepper},
		{"sim_bldc", "simulated PWM-driven BLDC controller", NewSimBLDC},
	}

	for _, e := range entries {
		err := registry.Register(e.name, motor.Registration{
			New:         e.factory,
			APIVersion:  APIVersion,
			Description: e.description,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
