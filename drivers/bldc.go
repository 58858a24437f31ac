package drivers

import (
	"github.com/pkg/errors"

	"github.com/driveworks/motorctl/motor"
)

const defaultMaxSpeed = 10000.0

// SimBLDC simulates a PWM-driven BLDC motor controller.
//
// Options: pwm_pin (int, required), max_speed (float, default 10000 RPM).
// Negative speeds are rejected and leave the prior speed unchanged; speeds
// above max_speed are clamped to it.
// Shutdown is idempotent.
type SimBLDC struct {
	pwmPin   int
	maxSpeed float64

	speed       float64
	clockwise   bool
	initialized bool
}

// NewSimBLDC is the registry factory for SimBLDC.
func NewSimBLDC() (motor.Driver, error) {
	return &SimBLDC{clockwise: true}, nil
}

func (b *SimBLDC) Initialize(params motor.Params) error {
	pwmPin, ok := params.Int("pwm_pin")
	if !ok {
		return errors.New("pwm_pin parameter is required")
	}

	b.pwmPin = pwmPin
	b.maxSpeed = defaultMaxSpeed
	if maxSpeed, ok := params.Float("max_speed"); ok {
		b.maxSpeed = maxSpeed
	}

	b.initialized = true
	return nil
}

func (b *SimBLDC) Shutdown() error {
	b.initialized = false
	return nil
}

func (b *SimBLDC) Status() motor.Status {
	direction := "counterclockwise"
	if b.clockwise {
		direction = "clockwise"
	}

	status := motor.NewStatus()
	status.Set("speed", b.speed)
	status.Set("direction", direction)
	status.Set("initialized", b.initialized)
	status.Set("pwm_pin", b.pwmPin)
	status.Set("max_speed", b.maxSpeed)
	return status
}

func (b *SimBLDC) SetSpeed(rpm float64) error {
	if !b.initialized {
		return errors.New("BLDC driver not initialized")
	}
	if rpm < 0 {
		return errors.Errorf("speed %.1f RPM is negative", rpm)
	}

	if rpm > b.maxSpeed {
		rpm = b.maxSpeed
	}
	b.speed = rpm
	return nil
}

func (b *SimBLDC) SetDirection(clockwise bool) error {
	if !b.initialized {
		return errors.New("BLDC driver not initialized")
	}

	b.clockwise = clockwise
	return nil
}

func (b *SimBLDC) Speed() float64 {
	return b.speed
}
