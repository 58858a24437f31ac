package motor

import (
	"sort"
	"sync"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// DriverAPIConstraint is the range of driver API versions a controller is
// able to drive. Registrations declaring a version outside this range are
// rejected up front rather than failing at actuation time.
const DriverAPIConstraint = "~1.0"

// Factory produces a fresh, uninitialized driver instance. It must not touch
// hardware; side effects belong in Initialize.
type Factory func() (Driver, error)

// Registration describes a loadable driver.
type Registration struct {
	New         Factory
	APIVersion  string
	Description string
}

// Registry maps driver identifiers to factories. It is owned by whoever
// constructs it; there is no ambient process-global table. Populate it at
// startup, then hand it to a Controller.
type Registry struct {
	lock    sync.Mutex
	drivers map[string]Registration
}

func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Registration),
	}
}

// Register makes a driver resolvable under the given identifier. The
// declared API version is gated against DriverAPIConstraint.
func (r *Registry) Register(name string, reg Registration) error {
	if name == "" {
		return errors.New("driver name must not be empty")
	}
	if reg.New == nil {
		return errors.Errorf("driver %q has no factory", name)
	}

	ver, err := semver.NewVersion(reg.APIVersion)
	if err != nil {
		return errors.Wrapf(err, "driver %q declares invalid API version %q", name, reg.APIVersion)
	}
	constraint, err := semver.NewConstraint(DriverAPIConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(ver) {
		return errors.Errorf("unable to use driver %q: declares API version %s - require %s",
			name, reg.APIVersion, DriverAPIConstraint)
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	if _, old := r.drivers[name]; old {
		return errors.Errorf("driver %q already registered", name)
	}
	r.drivers[name] = reg
	return nil
}

// Resolve turns a driver identifier into a fresh, uninitialized instance
// satisfying the capability contract for t. The caller owns the instance and
// is responsible for calling Initialize before use.
func (r *Registry) Resolve(t Type, name string) (Driver, error) {
	r.lock.Lock()
	reg, ok := r.drivers[name]
	r.lock.Unlock()
	if !ok {
		return nil, DriverNotFoundError{Driver: name}
	}

	drv, err := reg.New()
	if err != nil {
		return nil, DriverLoadError{Driver: name, Cause: err}
	}

	var compatible bool
	switch t {
	case Servo:
		_, compatible = drv.(ServoDriver)
	case Stepper:
		_, compatible = drv.(StepperDriver)
	case BLDC:
		_, compatible = drv.(BLDCDriver)
	}
	if !compatible {
		return nil, DriverTypeMismatchError{Driver: name, Requested: t}
	}

	return drv, nil
}

// Drivers lists the registered driver identifiers in sorted order.
func (r *Registry) Drivers() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe reports the registration details for a driver identifier.
func (r *Registry) Describe(name string) (Registration, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	reg, ok := r.drivers[name]
	return reg, ok
}
