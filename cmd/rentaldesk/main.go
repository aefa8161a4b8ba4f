package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"rentaldesk/internal/api"
	"rentaldesk/internal/config"
	"rentaldesk/internal/dashboard"
	"rentaldesk/internal/domain"
	"rentaldesk/internal/eventbus"
	"rentaldesk/internal/ui"
	"rentaldesk/internal/workflow"
)

// uiEvents are forwarded from the bus into the Bubble Tea program
var uiEvents = []eventbus.EventType{
	eventbus.EventFetchFailed,
	eventbus.EventListLoaded,
	eventbus.EventMutationSucceeded,
	eventbus.EventMutationRejected,
	eventbus.EventValidationFailed,
	eventbus.EventDashboardLoaded,
	eventbus.EventConfigSaved,
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "rentaldesk: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("rentaldesk", pflag.ContinueOnError)
	configPath := fs.String("config", "", "Config file (default "+config.DefaultPath()+")")
	writeConfig := fs.Bool("write-config", false, "Write the effective configuration to the config file and exit")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	bus := eventbus.New()
	defer bus.(eventbus.Closer).Close()

	configSvc := config.NewConfigServiceWithBus(*configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	overrides, err := config.NewOverrides(fs)
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("invalid override: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	zap.S().Infow("starting", "config", configSvc.Path(), "api", cfg.API.BaseURL, "page_size", cfg.UI.PageSize)

	if *writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", configSvc.Path())
		return nil
	}

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout.Duration),
		api.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return err
	}

	common := func(extra ...workflow.Option) []workflow.Option {
		return append([]workflow.Option{
			workflow.WithPageSize(cfg.UI.PageSize),
			workflow.WithTimeout(cfg.API.Timeout.Duration),
			workflow.WithDebounce(cfg.UI.SearchDebounce.Duration),
			workflow.WithNotifier(bus),
		}, extra...)
	}

	customerAPI := client.Customers()
	customers := workflow.New[domain.Customer]("customers", customerAPI, workflow.CustomerSchema{},
		common(workflow.WithDetail(customerAPI))...)

	filmAPI := client.Films()
	films := workflow.New[domain.Film]("films", filmAPI, workflow.FilmSchema{},
		common(workflow.WithExactPaging(), workflow.WithRent(filmAPI))...)

	dash := dashboard.NewModel(dashboard.NewService(client, cfg.API.Timeout.Duration), bus)

	model := ui.NewModel(cfg, customers, films, dash)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	for _, t := range uiEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
		defer unsubscribe()
	}

	// The PTY tests wait for this marker before typing
	if os.Getenv("RENTALDESK_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	if _, err := p.Run(); err != nil {
		zap.S().Errorw("program exited with error", "error", err)
		return err
	}
	zap.S().Infow("exited normally")
	return nil
}

// newLogger writes JSON lines to the configured file; the terminal belongs to the UI
func newLogger(settings config.LogSettings) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(settings.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", settings.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Sampling = nil
	if settings.File == "" {
		zc.OutputPaths = []string{os.DevNull}
		zc.ErrorOutputPaths = []string{os.DevNull}
	} else {
		zc.OutputPaths = []string{settings.File}
		zc.ErrorOutputPaths = []string{settings.File}
	}
	return zc.Build()
}
