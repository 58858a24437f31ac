package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/driveworks/motorctl/motor"
)

const statusInterval = time.Second / 4

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StatusStreamHandler upgrades the connection to a websocket and pushes the
// controller's motor status report every statusInterval until the client
// goes away.
func StatusStreamHandler(c *motor.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Errorw("upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		// drain the connection so we notice the client closing it
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(statusInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteJSON(c.ListMotors()); err != nil {
					logger.Debugw("status stream closed", "error", err)
					return
				}
			}
		}
	}
}
