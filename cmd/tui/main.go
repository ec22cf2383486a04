package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/config"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
	"github.com/m04kA/SMC-FleetCalendar/internal/infra/source"
	"github.com/m04kA/SMC-FleetCalendar/internal/tui"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

func main() {
	configPath := pflag.StringP("config", "c", config.Path(), "путь к config.toml")
	year := pflag.IntP("year", "y", time.Now().Year(), "год календаря")
	view := pflag.StringP("view", "v", "", "режим отображения: year, quarter, month")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Консоль занята экраном: пишем только в файл
	log, err := logger.NewWithWriter(nil, cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ec := cfg.Calendar.Engine(*year)
	if *view != "" {
		mode, err := domain.ParseViewMode(*view)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --view: %v\n", err)
			os.Exit(1)
		}
		ec.ViewMode = mode
	}

	stopCh := make(chan struct{})
	defer close(stopCh)

	src, err := source.Open(cfg, nil, log, stopCh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open calendar source: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	eng, err := engine.New(src.Source, ec, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create calendar: %v\n", err)
		os.Exit(1)
	}
	defer eng.Close()

	p := tea.NewProgram(tui.New(eng, log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.Error("TUI - program failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
