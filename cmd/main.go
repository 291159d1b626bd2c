package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-records/internal/config"
	"github.com/ukydev/fleet-records/internal/controller"
	"github.com/ukydev/fleet-records/internal/factory"
	"github.com/ukydev/fleet-records/internal/models"
	"github.com/ukydev/fleet-records/internal/terminal"
	"github.com/ukydev/fleet-records/internal/ui"
)

var (
	loadConfig    = config.Load
	isInteractive = terminal.IsInteractive
	newUI         = func() ui.UI { return ui.NewHuhUI() }
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// runMain executes the CLI and exits with status 1 on error.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if err := execute(args, stdout, stderr); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		exit(1)
	}
}

// execute runs the CLI command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// app is the state shared by every subcommand once configuration is loaded.
type app struct {
	cfg *config.Config
	org *models.Organization
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "fleet",
		Short:         "Manage the vehicle records of a fleet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.OutOrStdout())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Browse and edit the fleet interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runShell(cmd.OutOrStdout())
			},
		},
		newListCmd(a),
		&cobra.Command{
			Use:   "summary",
			Short: "Print the fleet statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctrl := controller.New(a.org, nil)
				return ui.WriteSummary(cmd.OutOrStdout(), ctrl.Summary())
			},
		},
	)
	return root
}

func newListCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the vehicle table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.cfg.Output
			}
			ctrl := controller.New(a.org, nil)
			out := cmd.OutOrStdout()
			switch output {
			case "json":
				return ui.WriteJSON(out, ctrl)
			case "table":
				if err := ui.WriteTable(out, ui.TableTitle(a.org), ctrl.DisplayRows(), controller.NoSelection); err != nil {
					return err
				}
				return ui.WriteSummary(out, ctrl.Summary())
			default:
				return fmt.Errorf("invalid output: %s (must be table or json)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogger(cfg.Log, logOut)

	fleet := models.NewFleet(cfg.FleetName)
	if cfg.Seed {
		for _, v := range factory.SeedVehicles() {
			fleet.Add(v)
		}
	}
	a.cfg = cfg
	a.org = models.NewOrganization(cfg.OrganizationName, fleet)

	log.WithFields(log.Fields{
		"organization": cfg.OrganizationName,
		"fleet":        cfg.FleetName,
		"vehicles":     fleet.Len(),
	}).Debug("Fleet loaded")
	return nil
}

func (a *app) runShell(out io.Writer) error {
	if !isInteractive() {
		return ui.ErrNotInteractive
	}
	u := newUI()
	ctrl := controller.New(a.org, ui.NewFormPrompter(u))
	log.WithField("organization", a.org.Name).Info("Starting interactive shell")
	return ui.NewShell(ctrl, u, out).Run()
}

func setupLogger(cfg config.LogConfig, out io.Writer) {
	log.SetOutput(out)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
