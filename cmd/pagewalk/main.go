package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/pagewalk/pagewalk/pkg/browser/sim"
	"github.com/pagewalk/pagewalk/pkg/cmd"
	"github.com/pagewalk/pagewalk/pkg/config"
	"github.com/pagewalk/pagewalk/pkg/log"
	"github.com/pagewalk/pagewalk/pkg/pipeline"
	"github.com/pagewalk/pagewalk/pkg/registry"
	"github.com/pagewalk/pagewalk/pkg/runner"
	"github.com/pagewalk/pagewalk/pkg/steps"
)

var errStepsIncomplete = errors.New("not all steps completed")

func main() {
	command := &cli.Command{
		Name:  "pagewalk",
		Usage: "Run a fixed pipeline of page automation steps and report the outcome",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Target site base URL",
				Value:   config.DefaultBaseURL,
				Sources: cli.EnvVars("PAGEWALK_BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "contact-url",
				Usage:   "Target site contact page URL",
				Value:   config.DefaultContactURL,
				Sources: cli.EnvVars("PAGEWALK_CONTACT_URL"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Artifact storage URL (file://dir or postgres://...)",
				Value:   config.DefaultDatabaseURL,
				Sources: cli.EnvVars("PAGEWALK_DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "pipeline",
				Usage:   "Path to a YAML pipeline definition (built-in pipeline if empty)",
				Sources: cli.EnvVars("PAGEWALK_PIPELINE"),
			},
			&cli.DurationFlag{
				Name:    "step-timeout",
				Usage:   "Per-step execution timeout",
				Value:   config.DefaultStepTimeout,
				Sources: cli.EnvVars("PAGEWALK_STEP_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "settle-delay",
				Usage:   "Delay between consecutive steps",
				Value:   config.DefaultSettleDelay,
				Sources: cli.EnvVars("PAGEWALK_SETTLE_DELAY"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pagewalk: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"))
	logger := log.WithModule("pagewalk")

	cfg := config.Config{
		BaseURL:     command.String("base-url"),
		ContactURL:  command.String("contact-url"),
		DatabaseURL: command.String("database-url"),
		StepTimeout: command.Duration("step-timeout"),
		SettleDelay: command.Duration("settle-delay"),
		LogLevel:    command.String("log-level"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := cmd.NewPersistence(ctx, logger, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Error("Failed to close persistence", "error", err)
		}
	}()

	browser := sim.New(demoSite(cfg), logger)

	reg := registry.NewRegistry(logger)
	for _, factory := range steps.NewFactories(browser) {
		reg.RegisterStep(factory)
	}

	def := pipeline.Default(cfg)
	if path := command.String("pipeline"); path != "" {
		if def, err = pipeline.Load(path); err != nil {
			return err
		}
	}

	pipelineSteps, err := pipeline.Build(def, reg)
	if err != nil {
		return err
	}

	controller := runner.NewController(
		cfg,
		runner.NewRunner(logger, cfg.StepTimeout, cfg.SettleDelay),
		store,
		logger,
	)

	success, err := controller.Execute(ctx, pipelineSteps)
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		fmt.Println("Run interrupted by user")
	}

	if !success {
		return errStepsIncomplete
	}

	return nil
}
