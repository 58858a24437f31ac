package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/asdine/storm"
	"github.com/caarlos0/env"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/driveworks/motorctl/drivers"
	"github.com/driveworks/motorctl/motor"
)

type EnvConfig struct {
	ISSUER string `env:"MOTORCTL_ID" envDefault:"DEV"`
	DEBUG  bool   `env:"DEBUG" envDefault:"0"`
	SRCDIR string `env:"SRCDIR" envDefault:"."`
	DBFILE string `env:"DBFILE" envDefault:"./tmp/motorctl.db"`
	DB     *storm.DB
}

var (
	ENV    *EnvConfig
	logger *zap.SugaredLogger
)

func init() {
	// Load main config
	ENV = new(EnvConfig)
	env.Parse(ENV)

	// replaced with a real logger in main; tests keep the nop
	logger = zap.NewNop().Sugar()
}

func main() {
	// process flags
	port := flag.String("port", "0.0.0.0:8080", "Specify the ip:port to listen on")
	configPath := flag.String("config", "", "Path to the motor definition yaml")
	flag.Parse()

	var zlog *zap.Logger
	var err error
	if ENV.DEBUG {
		zlog, err = zap.NewDevelopment()
	} else {
		zlog, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()
	logger = zlog.Sugar()

	// setup database for operator accounts
	db, err := openDb(ENV.DBFILE)
	if err != nil {
		logger.Fatalw("unable to open database", "path", ENV.DBFILE, "error", err)
	}
	ENV.DB = db
	defer db.Close()

	// populate the driver registry before any motor can be created
	registry := motor.NewRegistry()
	if err := drivers.Register(registry); err != nil {
		logger.Fatalw("unable to register drivers", "error", err)
	}

	// Setup the controller from the motor definitions so everything works
	// as expected later
	filename := *configPath
	if filename == "" {
		filename, err = filepath.Abs(ENV.SRCDIR + "/motors.yaml")
		if err != nil {
			logger.Fatal(err)
		}
	}

	yamlFile, err := ioutil.ReadFile(filename)
	if err != nil {
		logger.Fatalw("unable to read motor config", "path", filename, "error", err)
	}

	config, err := motor.LoadConfig(yamlFile)
	if err != nil {
		logger.Fatalw("unable to parse motor config", "path", filename, "error", err)
	}

	controller, err := motor.NewControllerFromConfig(config, registry, logger)
	if err != nil {
		logger.Fatalw("unable to initialize motors", "error", err)
	}
	defer func() {
		if err := controller.Shutdown(); err != nil {
			logger.Errorw("shutdown reported failures", "error", err)
		}
	}()

	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Recoverer) // make sure this is last

	// Start a local shell so the fleet can be driven from the CLI
	go buildShell(controller).Start()

	//---
	// Build the API routes
	//---
	r.Route("/api", func(r chi.Router) {
		// login
		r.Post("/login", Login)

		r.Route("/", func(r chi.Router) {
			// Seek, verify and validate JWT tokens
			r.Use(ValidateJWT)

			r.Get("/refresh_token", JWTRefresh)
			r.Mount("/motors", MotorRouter(controller))
		})
	})

	// Add websocket routes
	r.Route("/ws", func(r chi.Router) {
		if !ENV.DEBUG {
			// Enable JWT validation in production
			r.Use(ValidateJWT)
		} else {
			fmt.Println("Running in debug mode. Websocket authentication disabled.")
		}

		r.Get("/status", StatusStreamHandler(controller))
	})

	fmt.Println("Listening on port", *port)
	if err := http.ListenAndServe(*port, r); err != nil {
		logger.Fatal(err)
	}
}

func openDb(dbFile string) (db *storm.DB, err error) {
	dir := filepath.Dir(dbFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		os.Mkdir(dir, 0755)
	}

	db, err = storm.Open(dbFile)
	if err != nil {
		return
	}

	// call inits for each type
	if err := db.Init(&User{}); err != nil {
		return nil, err
	}

	return
}
