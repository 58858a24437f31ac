package motor

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MotorStatus is one entry of a ListMotors report.
type MotorStatus struct {
	Name   string `json:"name"`
	Type   Type   `json:"type"`
	Status Status `json:"status"`
}

// Controller owns a collection of named motors. It mediates creation through
// a driver registry, lookup, status reporting and coordinated teardown. All
// access to the collection is serialized by one mutex, so the duplicate-name
// check is atomic with insertion and readers never observe a partially
// inserted or removed motor.
type Controller struct {
	lock     sync.Mutex
	registry *Registry
	motors   map[string]*Motor
	order    []string

	log *zap.SugaredLogger
}

// NewController builds an empty controller resolving drivers through the
// given registry. A nil logger disables logging.
func NewController(registry *Registry, log *zap.SugaredLogger) *Controller {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{
		registry: registry,
		motors:   make(map[string]*Motor),
		log:      log,
	}
}

// Registry returns the driver registry this controller resolves against.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// CreateMotor resolves driverID for the given type, initializes the fresh
// driver instance with params and, on success, registers it under name. The
// controller keeps ownership of the driver; the returned handle is a
// non-owning accessor. A driver that fails to initialize is discarded
// without being registered.
func (c *Controller) CreateMotor(name string, t Type, driverID string, params Params) (*Motor, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, exists := c.motors[name]; exists {
		return nil, DuplicateNameError{Name: name}
	}

	driver, err := c.registry.Resolve(t, driverID)
	if err != nil {
		return nil, err
	}

	if err := driver.Initialize(params); err != nil {
		return nil, InitializationError{Name: name, Driver: driverID, Cause: err}
	}

	m := newMotor(name, t, driver)
	c.motors[name] = m
	c.order = append(c.order, name)

	c.log.Infow("motor created", "name", name, "type", t.String(), "driver", driverID)
	return m, nil
}

// GetMotor looks up a live motor by name.
func (c *Controller) GetMotor(name string) (*Motor, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	m, ok := c.motors[name]
	if !ok {
		return nil, NotFoundError{Name: name}
	}
	return m, nil
}

// ListMotors reports a fresh status summary for every live motor, in the
// order the motors were created.
func (c *Controller) ListMotors() []MotorStatus {
	c.lock.Lock()
	defer c.lock.Unlock()

	statuses := make([]MotorStatus, 0, len(c.order))
	for _, name := range c.order {
		m := c.motors[name]
		statuses = append(statuses, MotorStatus{
			Name:   m.name,
			Type:   m.typ,
			Status: m.driver.Status(),
		})
	}
	return statuses
}

// RemoveMotor shuts down the named motor's driver and removes it from the
// controller. The entry is removed even when the driver reports a shutdown
// failure; the failure is returned as a ShutdownError. The name becomes
// available for reuse immediately.
func (c *Controller) RemoveMotor(name string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	m, ok := c.motors[name]
	if !ok {
		return NotFoundError{Name: name}
	}

	err := m.driver.Shutdown()
	delete(c.motors, name)
	c.removeFromOrder(name)

	if err != nil {
		c.log.Errorw("motor shutdown failed", "name", name, "error", err)
		return ShutdownError{Name: name, Cause: err}
	}
	c.log.Infow("motor removed", "name", name)
	return nil
}

// Shutdown tears down every live motor, continuing past individual driver
// failures, then clears the collection. Failures are aggregated into the
// returned error. Safe to call with zero motors and after a prior Shutdown.
func (c *Controller) Shutdown() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	var result error
	for _, name := range c.order {
		if err := c.motors[name].driver.Shutdown(); err != nil {
			c.log.Errorw("motor shutdown failed", "name", name, "error", err)
			result = multierr.Append(result, ShutdownError{Name: name, Cause: err})
		}
	}

	c.motors = make(map[string]*Motor)
	c.order = nil

	c.log.Infow("controller shut down")
	return result
}

func (c *Controller) removeFromOrder(name string) {
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
