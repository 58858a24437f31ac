package drivers

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/driveworks/motorctl/motor"
)

const (
	servoMinAngle = 0.0
	servoMaxAngle = 180.0
)

// SimServo simulates an RC servo on a single GPIO pin.
//
// Options: pin (int, required).
// Out-of-range positions are clamped to [0, 180] degrees.
// Shutdown is idempotent.
type SimServo struct {
	pin         int
	position    float64
	initialized bool
}

// NewSimServo is the registry factory for SimServo.
func NewSimServo() (motor.Driver, error) {
	return &SimServo{}, nil
}

func (s *SimServo) Initialize(params motor.Params) error {
	pin, ok := params.Int("pin")
	if !ok {
		return errors.New("pin parameter is required")
	}

	s.pin = pin
	s.initialized = true
	return nil
}

func (s *SimServo) Shutdown() error {
	s.initialized = false
	return nil
}

func (s *SimServo) Status() motor.Status {
	status := motor.NewStatus()
	status.Set("position", s.position)
	status.Set("initialized", s.initialized)
	status.Set("pin", s.pin)
	return status
}

func (s *SimServo) SetPosition(degrees float64) error {
	if !s.initialized {
		return errors.New("servo driver not initialized")
	}

	s.position = mgl64.Clamp(degrees, servoMinAngle, servoMaxAngle)
	return nil
}

func (s *SimServo) Position() float64 {
	return s.position
}
