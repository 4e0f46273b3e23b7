// Package cli implements diaryctl, the maintenance command line for the
// diary storage.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tasaronina/MyDiary/internal/app"
	"github.com/tasaronina/MyDiary/internal/config"
	"github.com/tasaronina/MyDiary/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the diaryctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "diaryctl",
		Short: "Inspect and maintain the health diary storage",
		Long: `diaryctl works on the same files as the diary bot: the last-entry
snapshot, the history log, the export blob and the advice database.
Locations come from the DIARY_* environment variables or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewLastCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewAdviceCommand(opts))

	return cmd
}

// withApp loads configuration, opens the stores for the duration of fn and
// closes them afterwards.
func (o *RootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.Init(cfg.Log.Level, cfg.Log.Format)
	log.SetOutput(cmd.ErrOrStderr())
	if !o.Verbose && log.GetLevel() > logrus.WarnLevel {
		log.SetLevel(logrus.WarnLevel)
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(cmd.Context(), cfg, a)
}
