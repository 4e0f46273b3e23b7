package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tasaronina/MyDiary/internal/app"
	"github.com/tasaronina/MyDiary/internal/config"
)

// ExportOptions holds flags for the export commands.
type ExportOptions struct {
	*RootOptions
	Text string
}

type exportView struct {
	Location string  `json:"location"`
	Text     *string `json:"text"`
}

// NewExportCommand creates the export command group.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Show, save or delete the exported report",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the exported report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, _ *config.Config, a *app.App) error {
				loc, err := a.Diary.ExportLocation().Await(ctx)
				if err != nil {
					return err
				}
				text, err := a.Diary.LoadExport().Await(ctx)
				if err != nil {
					return err
				}
				v := exportView{Location: loc, Text: text}
				return newPrinter(opts.RootOptions, cmd).emit(v, func(w io.Writer) {
					if text == nil {
						fmt.Fprintln(w, "No export found.")
						return
					}
					fmt.Fprint(w, *text)
				})
			})
		},
	})

	save := &cobra.Command{
		Use:   "save",
		Short: "Export the last report, or --text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, _ *config.Config, a *app.App) error {
				return runExportSave(ctx, opts, cmd, a)
			})
		},
	}
	save.Flags().StringVar(&opts.Text, "text", "", "text to export instead of the last report")
	cmd.AddCommand(save)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the exported report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, _ *config.Config, a *app.App) error {
				ok, err := a.Diary.DeleteExport().Await(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("export storage is unavailable")
				}
				return newPrinter(opts.RootOptions, cmd).status(true, "export deleted")
			})
		},
	})

	return cmd
}

func runExportSave(ctx context.Context, opts *ExportOptions, cmd *cobra.Command, a *app.App) error {
	text := opts.Text
	if !cmd.Flags().Changed("text") {
		rec, err := a.Diary.LastEntry().Await(ctx)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.New("nothing to export: no entries yet")
		}
		text = lastReport(rec)
	}

	ok, err := a.Diary.SaveExport(text).Await(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("could not save the export")
	}
	loc, err := a.Diary.ExportLocation().Await(ctx)
	if err != nil {
		return err
	}
	return newPrinter(opts.RootOptions, cmd).status(true, "saved to %s", loc)
}
