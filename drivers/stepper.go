package drivers

import (
	"github.com/pkg/errors"

	"github.com/driveworks/motorctl/motor"
)

// SimStepper simulates a step/dir stepper driver.
//
// Options: step_pin (int, required), dir_pin (int, required),
// enable_pin (int, optional, -1 when unused), microsteps (int, default 1).
// Negative speeds are clamped to zero.
// Shutdown is idempotent.
type SimStepper struct {
	stepPin    int
	dirPin     int
	enablePin  int
	microsteps int

	position    int
	speed       float64
	initialized bool
}

// NewSimStepper is the registry factory for SimStepper.
func NewSimStepper() (motor.Driver, error) {
	return &SimStepper{enablePin: -1}, nil
}

func (s *SimStepper) Initialize(params motor.Params) error {
	stepPin, ok := params.Int("step_pin")
	if !ok {
		return errors.New("step_pin parameter is required")
	}
	dirPin, ok := params.Int("dir_pin")
	if !ok {
		return errors.New("dir_pin parameter is required")
	}

	s.stepPin = stepPin
	s.dirPin = dirPin

	if enablePin, ok := params.Int("enable_pin"); ok {
		s.enablePin = enablePin
	}
	s.microsteps = 1
	if microsteps, ok := params.Int("microsteps"); ok {
		s.microsteps = microsteps
	}

	s.initialized = true
	return nil
}

func (s *SimStepper) Shutdown() error {
	s.initialized = false
	return nil
}

func (s *SimStepper) Status() motor.Status {
	status := motor.NewStatus()
	status.Set("position", s.position)
	status.Set("speed", s.speed)
	status.Set("initialized", s.initialized)
	status.Set("step_pin", s.stepPin)
	status.Set("dir_pin", s.dirPin)
	status.Set("enable_pin", s.enablePin)
	status.Set("microsteps", s.microsteps)
	return status
}

func (s *SimStepper) MoveSteps(steps int, forward bool) error {
	if !s.initialized {
		return errors.New("stepper driver not initialized")
	}

	if forward {
		s.position += steps
	} else {
		s.position -= steps
	}
	return nil
}

func (s *SimStepper) SetSpeed(rpm float64) error {
	if !s.initialized {
		return errors.New("stepper driver not initialized")
	}

	if rpm < 0 {
		rpm = 0
	}
	s.speed = rpm
	return nil
}

func (s *SimStepper) Position() int {
	return s.position
}
