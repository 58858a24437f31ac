package motor

// Motor binds an owned driver instance to a stable name and declared type.
// It re-exports the capability operations with type-safe dispatch so callers
// work with a named motor without caring which concrete driver sits behind
// it. Motors are created by a Controller, which retains ownership of the
// driver for the handle's lifetime.
type Motor struct {
	name   string
	typ    Type
	driver Driver
}

func newMotor(name string, t Type, driver Driver) *Motor {
	return &Motor{
		name:   name,
		typ:    t,
		driver: driver,
	}
}

func (m *Motor) Name() string {
	return m.name
}

func (m *Motor) Type() Type {
	return m.typ
}

// Driver exposes the underlying capability interface for callers that want
// to type-assert to the full contract themselves.
func (m *Motor) Driver() Driver {
	return m.driver
}

// Status merges the driver's snapshot with the motor's identity.
func (m *Motor) Status() Status {
	status := m.driver.Status()
	status.Set("name", m.name)
	status.Set("type", m.typ.String())
	return status
}

// SetPosition moves a servo motor to the given angle in degrees.
func (m *Motor) SetPosition(degrees float64) error {
	if m.typ != Servo {
		return IncorrectMotorTypeError{Name: m.name, Type: m.typ, Op: "set position"}
	}
	return m.driver.(ServoDriver).SetPosition(degrees)
}

// Position reports a servo motor's angle in degrees.
func (m *Motor) Position() (float64, error) {
	if m.typ != Servo {
		return 0, IncorrectMotorTypeError{Name: m.name, Type: m.typ, Op: "get position"}
	}
	return m.driver.(ServoDriver).Position(), nil
}

// MoveSteps advances a stepper motor by the given number of steps.
func (m *Motor) MoveSteps(steps int, forward bool) error {
	if m.typ != Stepper {
		return IncorrectMotorTypeError{Name: m.name, Type: m.typ, Op: "move steps"}
	}
	return m.driver.(StepperDriver).MoveSteps(steps, forward)
}

// StepPosition reports a stepper motor's position in steps.
func (m *Motor) StepPosition() (int, error) {
	if m.typ != Stepper {
		return 0, IncorrectMotorTypeError{Name: m.name, Type: m.typ, Op: "get step position"}
	}
	return m.driver.(StepperDriver).Position(), nil
}

// SetSpeed sets the RPM on a stepper or BLDC motor.
func (m *Motor) SetSpeed(rpm float64) error {
	switch m.typ {
	case Stepper:
		return m.driver.(StepperDriver).SetSpeed(rpm)
	case BLDC:
		return m.driver.(BLDCDriver).SetSpeed(rpm)
	}
	return IncorrectMotorTypeError{Name: m.name, Type: m.typ, Op: "set speed"}
}

// SetDirection selects a BLDC motor's rotation direction.
func (m *Motor) SetDirection(clockwise bool) error {
	if m.typ != BLDC {
		return IncorrectMotorTypeError{Name: m.name, Type: m.typ, Op: "set direction"}
	}
	return m.driver.(BLDCDriver).SetDirection(clockwise)
}

// Speed reports a BLDC motor's target speed in RPM.
func (m *Motor) Speed() (float64, error) {
	if m.typ != BLDC {
		return 0, IncorrectMotorTypeError{Name: m.name, Type: m.typ, Op: "get speed"}
	}
	return m.driver.(BLDCDriver).Speed(), nil
}
