//go:build windows

// Windows service support: lets the converter run as a background service
// in watch mode, with install/uninstall/start/stop management from the
// command line, via github.com/kardianos/service.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kardianos/service"

	"pnguncrush/converter"
	"pnguncrush/core"
	"pnguncrush/db"
	"pnguncrush/logging"
)

// Program implements service.Interface. As a service the converter always
// runs in watch mode; batch runs stay interactive.
type Program struct {
	ctx    context.Context
	cancel context.CancelFunc
	exit   chan struct{}
}

// Start is called by the service manager. It launches the watch loop in a
// goroutine and returns immediately, as the interface requires.
func (p *Program) Start(s service.Service) error {
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

// Stop signals the watch loop and waits for it to drain.
func (p *Program) Stop(s service.Service) error {
	p.cancel()
	select {
	case <-p.exit:
	case <-time.After(30 * time.Second):
		return fmt.Errorf("timeout waiting for service to stop")
	}
	return nil
}

func (p *Program) run() {
	defer close(p.exit)

	cfg := core.LoadConfig()
	cfg.Watch = true
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return
	}

	logger, err := logging.NewLogger(cfg.DevMode, cfg.LogFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return
	}
	defer logger.Sync()

	var repo *db.Repository
	if cfg.HistoryEnabled {
		database, err := db.Open(cfg.DatabasePath, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open history database: %v\n", err)
			return
		}
		defer database.Close()
		repo = db.NewRepository(database)
	}

	processor := converter.NewProcessor(cfg, logger, repo)
	watcher := converter.NewWatcher(cfg, logger, processor)
	go watcher.Start(p.ctx)
	<-watcher.Done()
}

// serviceConfig describes the Windows service registration.
func serviceConfig() *service.Config {
	return &service.Config{
		Name:        "PNGUncrush",
		DisplayName: "PNG Uncrush Service",
		Description: "Converts Apple crushed (CgBI) PNG files to standard PNGs as they appear",
		Option: service.KeyValue{
			"StartType": "automatic",
		},
	}
}

func newService() (service.Service, error) {
	s, err := service.New(&Program{}, serviceConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return s, nil
}

// HandleServiceCommand dispatches service management subcommands. Returns
// true when a command was handled and the process should exit.
func HandleServiceCommand(args []string) bool {
	if len(args) < 2 {
		return false
	}

	s, err := newService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(core.ExitCodeError)
	}

	switch args[1] {
	case "install":
		err = s.Install()
	case "uninstall", "remove":
		err = s.Uninstall()
	case "start":
		err = s.Start()
	case "stop":
		err = s.Stop()
	case "restart":
		err = s.Restart()
	case "status":
		status, statusErr := s.Status()
		if statusErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", statusErr)
			os.Exit(core.ExitCodeError)
		}
		switch status {
		case service.StatusRunning:
			fmt.Println("Service is running")
		case service.StatusStopped:
			fmt.Println("Service is stopped")
		default:
			fmt.Println("Service status unknown")
		}
		return true
	case "run":
		// Blocking foreground run under the service manager.
		if err := s.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(core.ExitCodeError)
		}
		return true
	default:
		return false
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	fmt.Printf("Service %s completed\n", args[1])
	return true
}
