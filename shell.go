package main

import (
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/driveworks/motorctl/motor"
)

// buildShell wires up the local development shell with commands for driving
// the motor fleet and managing operator accounts.
func buildShell(controller *motor.Controller) *ishell.Shell {
	motorNames := func([]string) []string {
		statuses := controller.ListMotors()
		names := make([]string, 0, len(statuses))
		for _, status := range statuses {
			names = append(names, status.Name)
		}
		return names
	}

	shell := ishell.New()
	shell.Println("motorctl development shell")
	shell.ShowPrompt(true)

	shell.AddCmd(&ishell.Cmd{
		Name: "createsuperuser",
		Help: "createsuperuser <email> <password>",
		Func: func(c *ishell.Context) {
			// disable the '>>>' for cleaner same line input.
			c.ShowPrompt(false)
			defer c.ShowPrompt(true) // yes, revert when done.

			// get email
			var email string
			if len(c.Args) >= 1 {
				email = c.Args[0]
			} else {
				c.Print("Email: ")
				email = c.ReadLine()
			}

			// get password
			var password string
			if len(c.Args) >= 2 {
				password = c.Args[1]
			} else {
				c.Print("Password: ")
				password = c.ReadPassword()
			}

			// create user
			user := &User{
				Email: email,
				Name:  email,
				Admin: true,
			}
			user.SetPassword([]byte(password))
			if err := ENV.DB.Save(user); err != nil {
				c.Err(err)
				return
			}

			c.Println("Superuser created")
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "drivers",
		Help: "list the registered drivers",
		Func: func(c *ishell.Context) {
			registry := controller.Registry()
			for _, name := range registry.Drivers() {
				reg, _ := registry.Describe(name)
				c.Printf("%s (api %s) - %s\n", name, reg.APIVersion, reg.Description)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "create",
		Help: "create <name> <servo|stepper|bldc> <driver> [key=value ...]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 3 {
				c.Println("usage: create <name> <servo|stepper|bldc> <driver> [key=value ...]")
				return
			}
			name := c.Args[0]
			motorType, err := motor.ParseType(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}

			m, err := controller.CreateMotor(name, motorType, c.Args[2], parseShellParams(c.Args[3:]))
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("Created %s motor %s\n", m.Type(), m.Name())
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "list",
		Help: "list all motors and their status",
		Func: func(c *ishell.Context) {
			for _, status := range controller.ListMotors() {
				c.Printf("%s (%s)\n", status.Name, status.Type)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "status",
		Completer: motorNames,
		Help:      "status <name>",
		Func: func(c *ishell.Context) {
			m, err := getShellMotor(controller, c)
			if err != nil {
				return
			}

			status := m.Status()
			for _, key := range status.Keys() {
				value, _ := status.Get(key)
				c.Printf("  %s: %v\n", key, value)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "position",
		Completer: motorNames,
		Help:      "position <name> <degrees>",
		Func: func(c *ishell.Context) {
			m, err := getShellMotor(controller, c)
			if err != nil || len(c.Args) < 2 {
				return
			}
			degrees, _ := strconv.ParseFloat(c.Args[1], 64)

			c.Printf("Moving servo %s to %.1f degrees\n", m.Name(), degrees)
			if err := m.SetPosition(degrees); err != nil {
				c.Err(err)
				return
			}
			position, _ := m.Position()
			c.Printf("Servo position: %.1f degrees\n", position)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "steps",
		Completer: motorNames,
		Help:      "steps <name> <count> [reverse]",
		Func: func(c *ishell.Context) {
			m, err := getShellMotor(controller, c)
			if err != nil || len(c.Args) < 2 {
				return
			}
			steps, _ := strconv.Atoi(c.Args[1])
			forward := !(len(c.Args) >= 3 && c.Args[2] == "reverse")

			if err := m.MoveSteps(steps, forward); err != nil {
				c.Err(err)
				return
			}
			position, _ := m.StepPosition()
			c.Printf("Stepper position: %d steps\n", position)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "speed",
		Completer: motorNames,
		Help:      "speed <name> <rpm>",
		Func: func(c *ishell.Context) {
			m, err := getShellMotor(controller, c)
			if err != nil || len(c.Args) < 2 {
				return
			}
			rpm, _ := strconv.ParseFloat(c.Args[1], 64)

			c.Printf("Setting %s speed to %.1f RPM\n", m.Name(), rpm)
			if err := m.SetSpeed(rpm); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "direction",
		Completer: motorNames,
		Help:      "direction <name> <cw|ccw>",
		Func: func(c *ishell.Context) {
			m, err := getShellMotor(controller, c)
			if err != nil || len(c.Args) < 2 {
				return
			}

			if err := m.SetDirection(c.Args[1] == "cw"); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "remove",
		Completer: motorNames,
		Help:      "remove <name>",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				return
			}
			name := c.Args[0]

			c.Printf("Removing motor %s\n", name)
			if err := controller.RemoveMotor(name); err != nil {
				c.Err(err)
			}
		},
	})

	return shell
}

func getShellMotor(controller *motor.Controller, c *ishell.Context) (*motor.Motor, error) {
	if len(c.Args) < 1 {
		c.Println("motor name required")
		return nil, motor.NotFoundError{}
	}

	m, err := controller.GetMotor(c.Args[0])
	if err != nil {
		c.Err(err)
		return nil, err
	}
	return m, nil
}

// parseShellParams turns key=value arguments into driver params, guessing at
// int, float and bool values before falling back to strings.
func parseShellParams(args []string) motor.Params {
	params := make(motor.Params, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, raw := parts[0], parts[1]

		if i, err := strconv.Atoi(raw); err == nil {
			params[key] = i
		} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
			params[key] = f
		} else if b, err := strconv.ParseBool(raw); err == nil {
			params[key] = b
		} else {
			params[key] = raw
		}
	}
	return params
}
