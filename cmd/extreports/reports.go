package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appreports "github.com/alexisbeaulieu97/extreports/internal/application/reports"
	"github.com/alexisbeaulieu97/extreports/internal/config"
	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	"github.com/alexisbeaulieu97/extreports/internal/report"
)

// reportFlagKeys maps command-line flags to their settings keys.
var reportFlagKeys = map[string]string{
	"output-directory":      "output_directory",
	"source-directory":      "source_directory",
	"requirements-base-dir": "requirements_base_dir",
	"project-key":           "project_key",
	"reports":               "reports",
	"project-dir":           "project_dir",
	"classes-dir":           "classes_dirs",
	"failure-policy":        "failure_policy",
}

var reportsCmdRunner = runReports

func newReportsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Generate the requested additional reports",
		Long: `Resolve the output and source directories, publish the build environment
and generate every report named by --reports, in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(root.configFile)
			if err != nil {
				return newCommandError("generate reports", "loading configuration", err, "Check the --config path and its YAML syntax.")
			}
			if err := bindReportFlags(cmd, v); err != nil {
				return err
			}

			settings, err := config.Load(v)
			if err != nil {
				return newCommandError("generate reports", "validating settings", err, suggestionFor(err))
			}
			if root.verbose {
				settings.Log.Level = "debug"
			}
			if root.logFormat != "" {
				settings.Log.Format = root.logFormat
				if err := config.Validate(settings); err != nil {
					return newCommandError("generate reports", "validating settings", err, "Use --log-format console or --log-format json.")
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return reportsCmdRunner(ctx, cmd, settings)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output-directory", "o", "", "Directory generated reports are written to")
	flags.StringP("source-directory", "s", "", "Directory holding the recorded test outcomes")
	flags.String("requirements-base-dir", "", "Base directory of the requirements hierarchy")
	flags.String("project-key", environment.DefaultProjectKey, "Project key published to the generators")
	flags.String("reports", "", "Comma-separated report kinds to generate")
	flags.String("project-dir", "", "Project base directory (default: working directory)")
	flags.StringSlice("classes-dir", nil, "Compiled output directory to activate, repeatable (default target/classes,target/test-classes)")
	flags.String("failure-policy", "", "What a failing report does: fail-fast or collect-all (default fail-fast)")

	return cmd
}

func bindReportFlags(cmd *cobra.Command, v *viper.Viper) error {
	for flag, key := range reportFlagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func runReports(ctx context.Context, cmd *cobra.Command, settings *config.Settings) error {
	log, err := logger.New(logger.Options{
		Level:         settings.Log.Level,
		HumanReadable: settings.Log.Format == "console",
		Writer:        cmd.ErrOrStderr(),
		Component:     "reports",
	})
	if err != nil {
		return err
	}

	correlationID := ports.GenerateCorrelationID()
	ctx = ports.WithCorrelationID(ctx, correlationID)
	log = log.With("correlation_id", correlationID)

	store := environment.NewStore(nil)
	publisher := events.NewLoggingPublisher(log)

	collector := &summaryCollector{}
	subs, err := collector.subscribe(publisher)
	if err != nil {
		return err
	}
	defer func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}()

	useCase := appreports.NewExecuteUseCase(
		settings.Defaults,
		store,
		appreports.NewDirectoryActivator(store, log),
		report.Builtin(),
		appreports.FailurePolicy(settings.FailurePolicy),
		log,
		publisher,
	)

	execCtx, err := useCase.Execute(ctx, appreports.Request{
		OutputDirectory:     settings.OutputDirectory,
		SourceDirectory:     settings.SourceDirectory,
		ProjectDirectory:    settings.ProjectDir,
		ProjectKey:          settings.ProjectKey,
		RequirementsBaseDir: settings.RequirementsBaseDir,
		Reports:             settings.Reports,
		ClassesDirectories:  settings.ClassesDirs,
	})

	out := cmd.OutOrStdout()
	if execCtx != nil {
		renderSummary(out, execCtx.OutputDirectory, execCtx.RequestedReportKinds, collector.snapshot(), isTerminal(out))
	}
	if err != nil {
		return newCommandError("generate reports", "running the report step", err, suggestionFor(err))
	}
	return nil
}
