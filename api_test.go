package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/driveworks/motorctl/drivers"
	"github.com/driveworks/motorctl/motor"
)

func newTestAPI() (*motor.Controller, chi.Router) {
	registry := motor.NewRegistry()
	if err := drivers.Register(registry); err != nil {
		panic(err)
	}
	controller := motor.NewController(registry, nil)
	return controller, MotorRouter(controller)
}

func doJSON(router http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = new(bytes.Buffer)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Add("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestMotorAPICreate(t *testing.T) {
	Convey("POST /", t, func() {
		_, router := newTestAPI()

		Convey("creates a motor and reports its status", func() {
			rr := doJSON(router, "POST", "/", &CreateMotorPayload{
				Name:   "pan",
				Type:   "servo",
				Driver: "sim_servo",
				Params: motor.Params{"pin": 18},
			})
			So(rr.Code, ShouldEqual, http.StatusCreated)
			So(rr.Body.String(), ShouldContainSubstring, `"name":"pan"`)
			So(rr.Body.String(), ShouldContainSubstring, `"type":"servo"`)
		})

		Convey("rejects incomplete payloads", func() {
			rr := doJSON(router, "POST", "/", &CreateMotorPayload{Type: "servo", Driver: "sim_servo"})
			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("rejects unknown motor types", func() {
			rr := doJSON(router, "POST", "/", &CreateMotorPayload{
				Name: "pan", Type: "linear", Driver: "sim_servo",
			})
			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("rejects unknown drivers", func() {
			rr := doJSON(router, "POST", "/", &CreateMotorPayload{
				Name: "pan", Type: "servo", Driver: "missing",
			})
			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("rejects mismatched driver capabilities", func() {
			rr := doJSON(router, "POST", "/", &CreateMotorPayload{
				Name: "spindle", Type: "bldc", Driver: "sim_servo",
			})
			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("duplicate names conflict", func() {
			create := &CreateMotorPayload{
				Name: "pan", Type: "servo", Driver: "sim_servo",
				Params: motor.Params{"pin": 18},
			}
			So(doJSON(router, "POST", "/", create).Code, ShouldEqual, http.StatusCreated)

			rr := doJSON(router, "POST", "/", create)
			So(rr.Code, ShouldEqual, http.StatusConflict)
		})
	})
}

func TestMotorAPILifecycle(t *testing.T) {
	Convey("With a running fleet", t, func() {
		_, router := newTestAPI()
		doJSON(router, "POST", "/", &CreateMotorPayload{
			Name: "pan", Type: "servo", Driver: "sim_servo",
			Params: motor.Params{"pin": 18},
		})
		doJSON(router, "POST", "/", &CreateMotorPayload{
			Name: "feed", Type: "stepper", Driver: "sim_stepper",
			Params: motor.Params{"step_pin": 23, "dir_pin": 24},
		})

		Convey("GET / lists every motor in creation order", func() {
			rr := doJSON(router, "GET", "/", nil)
			So(rr.Code, ShouldEqual, http.StatusOK)

			var statuses []motor.MotorStatus
			So(json.Unmarshal(rr.Body.Bytes(), &statuses), ShouldBeNil)
			So(statuses, ShouldHaveLength, 2)
			So(statuses[0].Name, ShouldEqual, "pan")
			So(statuses[1].Name, ShouldEqual, "feed")
		})

		Convey("GET /{name} reports one motor", func() {
			rr := doJSON(router, "GET", "/pan", nil)
			So(rr.Code, ShouldEqual, http.StatusOK)
			So(rr.Body.String(), ShouldContainSubstring, `"name":"pan"`)
		})

		Convey("GET on an unknown name is a 404", func() {
			rr := doJSON(router, "GET", "/nope", nil)
			So(rr.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("DELETE removes the motor", func() {
			rr := doJSON(router, "DELETE", "/pan", nil)
			So(rr.Code, ShouldEqual, http.StatusOK)

			var payload RemovedPayload
			So(json.Unmarshal(rr.Body.Bytes(), &payload), ShouldBeNil)
			So(payload.Removed, ShouldBeTrue)
			So(payload.ShutdownError, ShouldBeEmpty)

			Convey("after which it is gone", func() {
				So(doJSON(router, "GET", "/pan", nil).Code, ShouldEqual, http.StatusNotFound)
				So(doJSON(router, "DELETE", "/pan", nil).Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestMotorAPIActuation(t *testing.T) {
	Convey("With one motor of each type", t, func() {
		_, router := newTestAPI()
		doJSON(router, "POST", "/", &CreateMotorPayload{
			Name: "pan", Type: "servo", Driver: "sim_servo",
			Params: motor.Params{"pin": 18},
		})
		doJSON(router, "POST", "/", &CreateMotorPayload{
			Name: "feed", Type: "stepper", Driver: "sim_stepper",
			Params: motor.Params{"step_pin": 23, "dir_pin": 24},
		})
		doJSON(router, "POST", "/", &CreateMotorPayload{
			Name: "spindle", Type: "bldc", Driver: "sim_bldc",
			Params: motor.Params{"pwm_pin": 12},
		})

		Convey("POST /{name}/position drives a servo", func() {
			rr := doJSON(router, "POST", "/pan/position", &PositionPayload{Degrees: 90})
			So(rr.Code, ShouldEqual, http.StatusOK)
			So(rr.Body.String(), ShouldContainSubstring, `"position":90`)
		})

		Convey("POST /{name}/steps drives a stepper", func() {
			rr := doJSON(router, "POST", "/feed/steps", &StepsPayload{Steps: 200})
			So(rr.Code, ShouldEqual, http.StatusOK)
			So(rr.Body.String(), ShouldContainSubstring, `"position":200`)

			Convey("and forward=false backs it off", func() {
				forward := false
				rr := doJSON(router, "POST", "/feed/steps", &StepsPayload{Steps: 50, Forward: &forward})
				So(rr.Code, ShouldEqual, http.StatusOK)
				So(rr.Body.String(), ShouldContainSubstring, `"position":150`)
			})
		})

		Convey("POST /{name}/speed drives steppers and BLDCs alike", func() {
			So(doJSON(router, "POST", "/feed/speed", &SpeedPayload{RPM: 120}).Code,
				ShouldEqual, http.StatusOK)
			So(doJSON(router, "POST", "/spindle/speed", &SpeedPayload{RPM: 3000}).Code,
				ShouldEqual, http.StatusOK)
		})

		Convey("POST /{name}/direction flips a BLDC", func() {
			rr := doJSON(router, "POST", "/spindle/direction", &DirectionPayload{Clockwise: false})
			So(rr.Code, ShouldEqual, http.StatusOK)
			So(rr.Body.String(), ShouldContainSubstring, `"direction":"counterclockwise"`)
		})

		Convey("operations against the wrong motor type are rejected", func() {
			rr := doJSON(router, "POST", "/feed/position", &PositionPayload{Degrees: 90})
			So(rr.Code, ShouldEqual, http.StatusBadRequest)

			rr = doJSON(router, "POST", "/pan/direction", &DirectionPayload{Clockwise: true})
			So(rr.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("driver rejections surface as bad requests", func() {
			rr := doJSON(router, "POST", "/spindle/speed", &SpeedPayload{RPM: -10})
			So(rr.Code, ShouldNotEqual, http.StatusOK)
		})
	})
}
