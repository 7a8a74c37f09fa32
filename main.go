package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/VincentZyu233/woodenaxe/config"
	"github.com/VincentZyu233/woodenaxe/plugins"
	"github.com/VincentZyu233/woodenaxe/shield"
	"github.com/VincentZyu233/woodenaxe/task"
)

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warn("unknown log_level, using info")
		lvl = logrus.InfoLevel
	}
	log.Level = lvl
	return log
}

func main() {
	color.Blue("Collecting Infomation...")
	startConfig := config.CollectInfo()
	config.WriteBackConfig(startConfig)
	color.Green("Information Collected!")

	log := newLogger(startConfig.LogLevel)

	color.Blue("Starting Shield...")
	wsShield := shield.NewShield(&startConfig.ShieldConfig, log)
	taskIO := task.NewTaskIO(wsShield.IO, log.WithField("part", "task"))

	closeFn, err := plugins.Load(taskIO, startConfig.GetPluginConfig())
	if err != nil {
		color.New(color.FgRed).Printf("Main: cannot load plugins (%v)\n", err)
		os.Exit(1)
	}
	color.Green("Plugins Loaded! In game run: /connect %v", startConfig.ShieldConfig.ListenAddress)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// make sure data are saved
	go func() {
		s := <-c
		fmt.Println("Got signal:", s)
		wsShield.Close()
		closeFn()
		fmt.Println("Close Functions done")
		os.Exit(0)
	}()

	if err := wsShield.Routine(); err != nil {
		closeFn()
		color.New(color.FgRed).Printf("Main: shield stopped (%v)\n", err)
		os.Exit(1)
	}
	select {}
}
