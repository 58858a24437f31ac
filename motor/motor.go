// Package motor provides a uniform control surface for heterogeneous motor
// hardware. Concrete drivers satisfy one of the capability contracts below
// and are bound to named motors through a Controller; callers never see the
// concrete driver type.
package motor

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// Type identifies which capability contract a motor exposes. It is fixed at
// creation time.
type Type int

const (
	Servo Type = iota
	Stepper
	BLDC
)

func (t Type) String() string {
	switch t {
	case Servo:
		return "servo"
	case Stepper:
		return "stepper"
	case BLDC:
		return "bldc"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseType maps the wire/config form of a motor type back to its Type.
func ParseType(s string) (t Type, err error) {
	switch s {
	case "servo":
		t = Servo
	case "stepper":
		t = Stepper
	case "bldc":
		t = BLDC
	default:
		err = fmt.Errorf("unknown motor type %q", s)
	}
	return
}

func (t Type) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *Type) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Type) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("motor type must be a string, got %s", data)
	}
	parsed, err := ParseType(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Params carries driver initialization options. The controller passes it
// through untouched; which keys are recognised, and which are required, is
// documented per driver.
type Params map[string]interface{}

// Int fetches an integer option, tolerating the numeric types yaml and json
// decoders produce.
func (p Params) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Float fetches a float option, accepting integer values as well.
func (p Params) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (p Params) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

func (p Params) Bool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

// Status is an open-ended snapshot of driver state. Keys keep their
// insertion order so serialized output is deterministic; values should be
// limited to numbers, strings and bools.
type Status = *orderedmap.OrderedMap

// NewStatus returns an empty status snapshot.
func NewStatus() Status {
	return orderedmap.New()
}

// Driver is the base contract every motor driver satisfies. Apart from
// Initialize, no method may be relied upon before Initialize has returned
// nil; drivers must signal misuse with an error rather than panic or corrupt
// state. Shutdown re-entrancy is driver-defined and must be documented.
type Driver interface {
	// Initialize prepares the driver with its configuration options.
	// Recognised keys are driver specific; unknown or missing required
	// options are rejected with an error.
	Initialize(params Params) error

	// Shutdown releases any resources held by the driver.
	Shutdown() error

	// Status reports a fresh snapshot of the driver's state.
	Status() Status
}

// ServoDriver is the capability contract for positional servo motors.
type ServoDriver interface {
	Driver

	// SetPosition moves the servo to the given angle in degrees. Out of
	// range values are clamped or rejected per the driver's documented
	// policy.
	SetPosition(degrees float64) error

	// Position reports the last commanded angle in degrees.
	Position() float64
}

// StepperDriver is the capability contract for stepper motors.
type StepperDriver interface {
	Driver

	// MoveSteps advances the motor by the given number of steps, forward
	// when forward is true.
	MoveSteps(steps int, forward bool) error

	// SetSpeed sets the stepping speed in RPM.
	SetSpeed(rpm float64) error

	// Position reports the current position in steps from origin.
	Position() int
}

// BLDCDriver is the capability contract for brushless DC motors.
type BLDCDriver interface {
	Driver

	// SetSpeed sets the target speed in RPM.
	SetSpeed(rpm float64) error

	// SetDirection selects the rotation direction.
	SetDirection(clockwise bool) error

	// Speed reports the current target speed in RPM.
	Speed() float64
}
