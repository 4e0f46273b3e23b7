package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasaronina/MyDiary/internal/app"
	"github.com/tasaronina/MyDiary/internal/config"
	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/entry"
	"github.com/tasaronina/MyDiary/internal/labels"
	"github.com/tasaronina/MyDiary/internal/models"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Diseases []string
	Symptoms []string
	Triggers []string
	At       string
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Add a diary entry",
		Long: `Build a report from the given labels, store it as the last entry and
append it to the history.

Examples:
  diaryctl record --disease Migraine --trigger Stress
  diaryctl record --symptom Headache --symptom Nausea --at "05.03.2024 09:30"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, cfg *config.Config, a *app.App) error {
				return runRecord(ctx, opts, cmd, cfg, a.Diary)
			})
		},
	}

	cmd.Flags().StringArrayVar(&opts.Diseases, "disease", nil, "chronic condition label (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Symptoms, "symptom", nil, "symptom label (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Triggers, "trigger", nil, "trigger label (repeatable)")
	cmd.Flags().StringVar(&opts.At, "at", "", `entry time "dd.mm.yyyy hh:mm" (default now)`)

	return cmd
}

func runRecord(ctx context.Context, opts *RecordOptions, cmd *cobra.Command, cfg *config.Config, d *diary.Service) error {
	for _, list := range [][]string{opts.Diseases, opts.Symptoms, opts.Triggers} {
		for _, l := range list {
			if !labels.Valid(l) {
				return fmt.Errorf("label %q must not contain %q", l, labels.Delimiter)
			}
		}
	}

	now := time.Now().In(cfg.Location())
	if opts.At != "" {
		t, err := time.ParseInLocation(entry.TimeLayout, opts.At, cfg.Location())
		if err != nil {
			return fmt.Errorf("--at: want %q: %w", entry.TimeLayout, err)
		}
		now = t
	}

	rec := entry.BuildRecord(opts.Diseases, opts.Symptoms, opts.Triggers, now)
	res, err := d.Persist(rec).Await(ctx)
	if err != nil {
		return err
	}
	if !res.Snapshot || !res.History {
		return fmt.Errorf("entry saved partially (snapshot=%t, history=%t)", res.Snapshot, res.History)
	}

	return newPrinter(opts.RootOptions, cmd).emit(rec, func(w io.Writer) {
		fmt.Fprint(w, rec.Report)
	})
}

// LastOptions holds flags for the last command.
type LastOptions struct {
	*RootOptions
	Clear bool
}

// NewLastCommand creates the last command.
func NewLastCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LastOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show or clear the last entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, _ *config.Config, a *app.App) error {
				return runLast(ctx, opts, cmd, a.Diary)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "forget the last entry")

	return cmd
}

func runLast(ctx context.Context, opts *LastOptions, cmd *cobra.Command, d *diary.Service) error {
	p := newPrinter(opts.RootOptions, cmd)

	if opts.Clear {
		ok, err := d.ClearLastEntry().Await(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("could not clear the last entry")
		}
		return p.status(true, "last entry cleared")
	}

	rec, err := d.LastEntry().Await(ctx)
	if err != nil {
		return err
	}
	return p.emit(rec, func(w io.Writer) {
		if rec == nil {
			fmt.Fprintln(w, "No entries yet.")
			return
		}
		fmt.Fprint(w, lastReport(rec))
	})
}

func lastReport(rec *models.HealthRecord) string {
	if rec.Report != "" {
		return rec.Report
	}
	return entry.RenderReport(rec.Timestamp, rec.Diseases, rec.Symptoms, rec.Triggers)
}

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear the entry history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every history line, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, _ *config.Config, a *app.App) error {
				lines, err := a.Diary.History().Await(ctx)
				if err != nil {
					return err
				}
				if lines == nil {
					lines = []string{}
				}
				return newPrinter(opts, cmd).emit(lines, func(w io.Writer) {
					for _, l := range lines {
						fmt.Fprintln(w, l)
					}
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Erase the history log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, _ *config.Config, a *app.App) error {
				ok, err := a.Diary.ClearHistory().Await(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("could not clear the history")
				}
				return newPrinter(opts, cmd).status(true, "history cleared")
			})
		},
	})

	return cmd
}
