package motor

import "errors"

// mock drivers shared by the package tests

type mockDriver struct {
	initErr     error
	shutdownErr error

	initialized bool
	initCount   int
	shutdowns   int
	params      Params
}

func (d *mockDriver) Initialize(params Params) error {
	d.initCount++
	if d.initErr != nil {
		return d.initErr
	}
	d.params = params
	d.initialized = true
	return nil
}

func (d *mockDriver) Shutdown() error {
	d.shutdowns++
	if d.shutdownErr != nil {
		return d.shutdownErr
	}
	d.initialized = false
	return nil
}

func (d *mockDriver) Status() Status {
	status := NewStatus()
	status.Set("initialized", d.initialized)
	return status
}

type mockServo struct {
	mockDriver
	position float64
}

func (s *mockServo) SetPosition(degrees float64) error {
	if !s.initialized {
		return errors.New("not initialized")
	}
	s.position = degrees
	return nil
}

func (s *mockServo) Position() float64 {
	return s.position
}

func (s *mockServo) Status() Status {
	status := s.mockDriver.Status()
	status.Set("position", s.position)
	return status
}

type mockStepper struct {
	mockDriver
	position int
	speed    float64
}

func (s *mockStepper) MoveSteps(steps int, forward bool) error {
	if !s.initialized {
		return errors.New("not initialized")
	}
	if forward {
		s.position += steps
	} else {
		s.position -= steps
	}
	return nil
}

func (s *mockStepper) SetSpeed(rpm float64) error {
	if !s.initialized {
		return errors.New("not initialized")
	}
	s.speed = rpm
	return nil
}

func (s *mockStepper) Position() int {
	return s.position
}

type mockBLDC struct {
	mockDriver
	speed     float64
	clockwise bool
}

func (b *mockBLDC) SetSpeed(rpm float64) error {
	if !b.initialized {
		return errors.New("not initialized")
	}
	if rpm < 0 {
		return errors.New("negative speed")
	}
	b.speed = rpm
	return nil
}

func (b *mockBLDC) SetDirection(clockwise bool) error {
	if !b.initialized {
		return errors.New("not initialized")
	}
	b.clockwise = clockwise
	return nil
}

func (b *mockBLDC) Speed() float64 {
	return b.speed
}

// testRegistry builds a registry with one driver of each capability plus a
// base-only driver that satisfies no capability contract.
func testRegistry() *Registry {
	registry := NewRegistry()

	registry.Register("servo", Registration{
		New:        func() (Driver, error) { return &mockServo{}, nil },
		APIVersion: "1.0.0",
	})
	registry.Register("stepper", Registration{
		New:        func() (Driver, error) { return &mockStepper{}, nil },
		APIVersion: "1.0.0",
	})
	registry.Register("bldc", Registration{
		New:        func() (Driver, error) { return &mockBLDC{}, nil },
		APIVersion: "1.0.0",
	})
	registry.Register("base_only", Registration{
		New:        func() (Driver, error) { return &mockDriver{}, nil },
		APIVersion: "1.0.0",
	})

	return registry
}
