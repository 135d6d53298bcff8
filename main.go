package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/depthmotion/engine"
	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/testbed"
)

func main() {
	path := "capture.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		core.LogFatal("failed to load %s: %s", path, err.Error())
	}
	core.SetLogLevel(core.ParseLogLevel(cfg.Application.LogLevel))

	tb, err := testbed.NewTestGame(cfg)
	if err != nil {
		core.LogFatal(err.Error())
	}

	engine, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := engine.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		engine.Stop()
	}()

	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
