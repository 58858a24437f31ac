package motor

import "fmt"

// DuplicateNameError is returned by CreateMotor when the name is already in
// use by a live motor.
type DuplicateNameError struct {
	Name string
}

func (err DuplicateNameError) Error() string {
	return fmt.Sprintf("motor %q already exists", err.Name)
}

// NotFoundError is returned by lookups and removals of unknown motor names.
type NotFoundError struct {
	Name string
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("no such motor %q", err.Name)
}

// DriverNotFoundError indicates the driver identifier did not resolve to a
// registered driver.
type DriverNotFoundError struct {
	Driver string
}

func (err DriverNotFoundError) Error() string {
	return fmt.Sprintf("no such driver %q", err.Driver)
}

// DriverTypeMismatchError indicates the identifier resolved to a driver that
// does not satisfy the capability contract for the requested motor type.
type DriverTypeMismatchError struct {
	Driver    string
	Requested Type
}

func (err DriverTypeMismatchError) Error() string {
	return fmt.Sprintf("driver %q is not compatible with %s motors", err.Driver, err.Requested)
}

// DriverLoadError indicates the driver factory itself failed.
type DriverLoadError struct {
	Driver string
	Cause  error
}

func (err DriverLoadError) Error() string {
	return fmt.Sprintf("failed to load driver %q: %v", err.Driver, err.Cause)
}

// InitializationError indicates a freshly loaded driver rejected its
// configuration. The instance is discarded and no motor is registered.
type InitializationError struct {
	Name   string
	Driver string
	Cause  error
}

func (err InitializationError) Error() string {
	return fmt.Sprintf("failed to initialize motor %q (driver %q): %v", err.Name, err.Driver, err.Cause)
}

// IncorrectMotorTypeError indicates a capability operation was invoked on a
// motor whose declared type does not support it.
type IncorrectMotorTypeError struct {
	Name string
	Type Type
	Op   string
}

func (err IncorrectMotorTypeError) Error() string {
	op := err.Op
	if len(op) == 0 {
		op = "UNKNOWN"
	}
	return fmt.Sprintf("incorrect motor type; %s motor %q is unable to perform %s", err.Type, err.Name, op)
}

// ShutdownError reports a driver that failed to shut down cleanly. The
// motor's entry is removed from the controller regardless.
type ShutdownError struct {
	Name  string
	Cause error
}

func (err ShutdownError) Error() string {
	return fmt.Sprintf("motor %q failed to shut down: %v", err.Name, err.Cause)
}
