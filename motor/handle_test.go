package motor

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMotorDispatch(t *testing.T) {
	newHandle := func(t Type, driver Driver) *Motor {
		driver.Initialize(nil)
		return newMotor("m", t, driver)
	}

	Convey("A servo handle", t, func() {
		m := newHandle(Servo, &mockServo{})

		Convey("passes position commands through to the driver", func() {
			So(m.SetPosition(42.5), ShouldBeNil)

			position, err := m.Position()
			So(err, ShouldBeNil)
			So(position, ShouldEqual, 42.5)
		})

		Convey("rejects stepper and BLDC operations", func() {
			So(m.MoveSteps(10, true), ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
			So(m.SetSpeed(100), ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
			So(m.SetDirection(true), ShouldHaveSameTypeAs, IncorrectMotorTypeError{})

			_, err := m.StepPosition()
			So(err, ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
			_, err = m.Speed()
			So(err, ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
		})

		Convey("names itself and the operation in the error", func() {
			err := m.SetDirection(true)
			So(err.Error(), ShouldContainSubstring, "m")
			So(err.Error(), ShouldContainSubstring, "set direction")
		})
	})

	Convey("A stepper handle", t, func() {
		driver := &mockStepper{}
		m := newHandle(Stepper, driver)

		Convey("passes step and speed commands through to the driver", func() {
			So(m.MoveSteps(200, true), ShouldBeNil)
			So(m.MoveSteps(50, false), ShouldBeNil)

			position, err := m.StepPosition()
			So(err, ShouldBeNil)
			So(position, ShouldEqual, 150)

			So(m.SetSpeed(120), ShouldBeNil)
			So(driver.speed, ShouldEqual, 120.0)
		})

		Convey("rejects servo and BLDC operations", func() {
			So(m.SetPosition(90), ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
			So(m.SetDirection(false), ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
		})
	})

	Convey("A BLDC handle", t, func() {
		driver := &mockBLDC{}
		m := newHandle(BLDC, driver)

		Convey("passes speed and direction commands through to the driver", func() {
			So(m.SetSpeed(3000), ShouldBeNil)
			So(m.SetDirection(false), ShouldBeNil)

			speed, err := m.Speed()
			So(err, ShouldBeNil)
			So(speed, ShouldEqual, 3000.0)
			So(driver.clockwise, ShouldBeFalse)
		})

		Convey("surfaces driver rejections unchanged", func() {
			err := m.SetSpeed(-1)
			So(err, ShouldNotBeNil)
			So(driver.speed, ShouldEqual, 0.0)
		})

		Convey("rejects servo and stepper operations", func() {
			So(m.SetPosition(90), ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
			So(m.MoveSteps(1, true), ShouldHaveSameTypeAs, IncorrectMotorTypeError{})
		})
	})
}

func TestMotorStatus(t *testing.T) {
	Convey("Status merges the driver snapshot with the handle identity", t, func() {
		driver := &mockServo{}
		driver.Initialize(nil)
		driver.SetPosition(15)
		m := newMotor("pan", Servo, driver)

		status := m.Status()

		name, _ := status.Get("name")
		So(name, ShouldEqual, "pan")
		typ, _ := status.Get("type")
		So(typ, ShouldEqual, "servo")
		position, _ := status.Get("position")
		So(position, ShouldEqual, 15.0)
		initialized, _ := status.Get("initialized")
		So(initialized, ShouldEqual, true)
	})
}
