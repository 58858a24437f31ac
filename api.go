package main

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/pkg/errors"

	"github.com/driveworks/motorctl/motor"
)

//---
// Payloads
//---

// CreateMotorPayload is the request body for POST /api/motors.
type CreateMotorPayload struct {
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Driver string       `json:"driver"`
	Params motor.Params `json:"params"`

	motorType motor.Type
}

func (p *CreateMotorPayload) Bind(r *http.Request) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Driver == "" {
		return errors.New("driver is required")
	}

	t, err := motor.ParseType(p.Type)
	if err != nil {
		return err
	}
	p.motorType = t
	return nil
}

type PositionPayload struct {
	Degrees float64 `json:"degrees"`
}

func (p *PositionPayload) Bind(r *http.Request) error {
	return nil
}

type StepsPayload struct {
	Steps   int   `json:"steps"`
	Forward *bool `json:"forward"`
}

func (p *StepsPayload) Bind(r *http.Request) error {
	if p.Forward == nil {
		forward := true
		p.Forward = &forward
	}
	return nil
}

type SpeedPayload struct {
	RPM float64 `json:"rpm"`
}

func (p *SpeedPayload) Bind(r *http.Request) error {
	return nil
}

type DirectionPayload struct {
	Clockwise bool `json:"clockwise"`
}

func (p *DirectionPayload) Bind(r *http.Request) error {
	return nil
}

type RemovedPayload struct {
	Removed       bool   `json:"removed"`
	ShutdownError string `json:"shutdown_error,omitempty"`
}

//---
// Routes
//---

// MotorRouter exposes a controller's operations over HTTP.
func MotorRouter(c *motor.Controller) chi.Router {
	r := chi.NewRouter()

	r.Get("/", listMotors(c))
	r.Post("/", createMotor(c))

	r.Route("/{name}", func(r chi.Router) {
		r.Get("/", getMotor(c))
		r.Delete("/", removeMotor(c))
		r.Post("/position", setPosition(c))
		r.Post("/steps", moveSteps(c))
		r.Post("/speed", setSpeed(c))
		r.Post("/direction", setDirection(c))
	})

	return r
}

//---
// Views
//---

func listMotors(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, c.ListMotors())
	}
}

func createMotor(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := &CreateMotorPayload{}
		if err := render.Bind(r, data); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}

		m, err := c.CreateMotor(data.Name, data.motorType, data.Driver, data.Params)
		if err != nil {
			renderMotorError(w, r, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, m.Status())
	}
}

func getMotor(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := c.GetMotor(chi.URLParam(r, "name"))
		if err != nil {
			renderMotorError(w, r, err)
			return
		}

		render.JSON(w, r, m.Status())
	}
}

func removeMotor(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := c.RemoveMotor(chi.URLParam(r, "name"))
		if _, ok := err.(motor.NotFoundError); ok {
			render.Render(w, r, ErrNotFound)
			return
		}

		// the entry is gone even when the driver failed to shut down;
		// report the failure alongside the removal
		payload := RemovedPayload{Removed: true}
		if err != nil {
			payload.ShutdownError = err.Error()
		}
		render.JSON(w, r, payload)
	}
}

func setPosition(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := c.GetMotor(chi.URLParam(r, "name"))
		if err != nil {
			renderMotorError(w, r, err)
			return
		}

		data := &PositionPayload{}
		if err := render.Bind(r, data); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}

		if err := m.SetPosition(data.Degrees); err != nil {
			renderMotorError(w, r, err)
			return
		}
		render.JSON(w, r, m.Status())
	}
}

func moveSteps(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := c.GetMotor(chi.URLParam(r, "name"))
		if err != nil {
			renderMotorError(w, r, err)
			return
		}

		data := &StepsPayload{}
		if err := render.Bind(r, data); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}

		if err := m.MoveSteps(data.Steps, *data.Forward); err != nil {
			renderMotorError(w, r, err)
			return
		}
		render.JSON(w, r, m.Status())
	}
}

func setSpeed(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := c.GetMotor(chi.URLParam(r, "name"))
		if err != nil {
			renderMotorError(w, r, err)
			return
		}

		data := &SpeedPayload{}
		if err := render.Bind(r, data); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}

		if err := m.SetSpeed(data.RPM); err != nil {
			renderMotorError(w, r, err)
			return
		}
		render.JSON(w, r, m.Status())
	}
}

func setDirection(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := c.GetMotor(chi.URLParam(r, "name"))
		if err != nil {
			renderMotorError(w, r, err)
			return
		}

		data := &DirectionPayload{}
		if err := render.Bind(r, data); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}

		if err := m.SetDirection(data.Clockwise); err != nil {
			renderMotorError(w, r, err)
			return
		}
		render.JSON(w, r, m.Status())
	}
}

// renderMotorError maps the motor error taxonomy onto HTTP status codes.
func renderMotorError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case motor.NotFoundError:
		render.Render(w, r, ErrNotFound)
	case motor.DuplicateNameError:
		render.Render(w, r, ErrConflict(err))
	case motor.DriverNotFoundError, motor.DriverTypeMismatchError,
		motor.DriverLoadError, motor.InitializationError,
		motor.IncorrectMotorTypeError:
		render.Render(w, r, ErrInvalidRequest(err))
	default:
		render.Render(w, r, ErrRender(err))
	}
}

//---
// Error responses
//---

type ErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict.",
		ErrorText:      err.Error(),
	}
}

func ErrUnauthorized(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Unauthorized.",
		ErrorText:      err.Error(),
	}
}

func ErrPermissionDenied(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     "Permission denied.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}
