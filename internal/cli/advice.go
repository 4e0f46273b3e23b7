package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tasaronina/MyDiary/internal/app"
	"github.com/tasaronina/MyDiary/internal/config"
	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/models"
	"github.com/tasaronina/MyDiary/internal/storage"
)

// AdviceOptions holds flags for the advice commands.
type AdviceOptions struct {
	*RootOptions
	Category string
	Title    string
	Text     string
}

// NewAdviceCommand creates the advice command group.
func NewAdviceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdviceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Manage advice notes",
		Long: `Manage advice notes. Without --category the default category is used;
it is created and filled with the starter notes on first use.`,
	}
	cmd.PersistentFlags().StringVar(&opts.Category, "category", "", "category name (default: "+diary.DefaultCategory+")")

	list := &cobra.Command{
		Use:   "list",
		Short: "List advice of a category",
		Args:  cobra.NoArgs,
		RunE:  opts.run(runAdviceList),
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add advice",
		Args:  cobra.NoArgs,
		RunE:  opts.run(runAdviceAdd),
	}
	add.Flags().StringVar(&opts.Title, "title", "", "advice title (required)")
	add.Flags().StringVar(&opts.Text, "text", "", "advice text (required)")
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("text")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change title and text of an advice",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.run(runAdviceUpdate),
	}
	update.Flags().StringVar(&opts.Title, "title", "", "new title (required)")
	update.Flags().StringVar(&opts.Text, "text", "", "new text (required)")
	_ = update.MarkFlagRequired("title")
	_ = update.MarkFlagRequired("text")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an advice",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.run(runAdviceDelete),
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List advice categories",
		Args:  cobra.NoArgs,
		RunE:  opts.run(runAdviceCategories),
	}

	cmd.AddCommand(list, add, update, del, categories)
	return cmd
}

type adviceRunner func(ctx context.Context, opts *AdviceOptions, cmd *cobra.Command, args []string, a *app.App) error

func (o *AdviceOptions) run(fn adviceRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return o.withApp(cmd, func(ctx context.Context, _ *config.Config, a *app.App) error {
			return fn(ctx, o, cmd, args, a)
		})
	}
}

func runAdviceList(ctx context.Context, opts *AdviceOptions, cmd *cobra.Command, _ []string, a *app.App) error {
	var items []models.AdviceItem
	if opts.Category == "" {
		list, err := a.Diary.Advice().Await(ctx)
		if err != nil {
			return err
		}
		items = list.Items
	} else {
		db, err := a.Advice.Get()
		if err != nil {
			return err
		}
		cat, err := db.GetCategory(ctx, opts.Category)
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("category %q: %w", opts.Category, storage.ErrNotFound)
		}
		if items, err = db.ListByCategory(ctx, cat.ID); err != nil {
			return err
		}
	}
	if items == nil {
		items = []models.AdviceItem{}
	}

	return newPrinter(opts.RootOptions, cmd).emit(items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "No advice yet.")
		}
		for _, it := range items {
			fmt.Fprintf(w, "#%d %s\n    %s\n", it.ID, it.Title, it.Text)
		}
	})
}

func runAdviceAdd(ctx context.Context, opts *AdviceOptions, cmd *cobra.Command, _ []string, a *app.App) error {
	var item models.AdviceItem
	if opts.Category == "" {
		var err error
		if item, err = a.Diary.AddAdvice(opts.Title, opts.Text).Await(ctx); err != nil {
			return err
		}
	} else {
		db, err := a.Advice.Get()
		if err != nil {
			return err
		}
		catID, err := db.EnsureCategory(ctx, opts.Category)
		if err != nil {
			return err
		}
		id, err := db.InsertAdvice(ctx, opts.Title, opts.Text, catID)
		if err != nil {
			return err
		}
		item = models.AdviceItem{ID: id, Title: opts.Title, Text: opts.Text, CategoryID: catID}
	}

	return newPrinter(opts.RootOptions, cmd).emit(item, func(w io.Writer) {
		fmt.Fprintf(w, "added advice #%d\n", item.ID)
	})
}

// lookupAdvice resolves an ID argument to the stored item.
func lookupAdvice(ctx context.Context, a *app.App, arg string) (*storage.DB, *models.AdviceItem, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid advice id %q", arg)
	}
	db, err := a.Advice.Get()
	if err != nil {
		return nil, nil, err
	}
	item, err := db.GetAdvice(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, fmt.Errorf("advice #%d: %w", id, storage.ErrNotFound)
	}
	return db, item, nil
}

func runAdviceUpdate(ctx context.Context, opts *AdviceOptions, cmd *cobra.Command, args []string, a *app.App) error {
	db, item, err := lookupAdvice(ctx, a, args[0])
	if err != nil {
		return err
	}
	item.Title, item.Text = opts.Title, opts.Text
	ok, err := db.UpdateAdvice(ctx, *item)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("advice #%d: %w", item.ID, storage.ErrNotFound)
	}
	return newPrinter(opts.RootOptions, cmd).status(true, "advice #%d updated", item.ID)
}

func runAdviceDelete(ctx context.Context, opts *AdviceOptions, cmd *cobra.Command, args []string, a *app.App) error {
	db, item, err := lookupAdvice(ctx, a, args[0])
	if err != nil {
		return err
	}
	if _, err := db.DeleteAdvice(ctx, *item); err != nil {
		return err
	}
	return newPrinter(opts.RootOptions, cmd).status(true, "advice #%d deleted", item.ID)
}

func runAdviceCategories(ctx context.Context, opts *AdviceOptions, cmd *cobra.Command, _ []string, a *app.App) error {
	db, err := a.Advice.Get()
	if err != nil {
		return err
	}
	cats, err := db.ListCategories(ctx)
	if err != nil {
		return err
	}
	if cats == nil {
		cats = []models.AdviceCategory{}
	}
	return newPrinter(opts.RootOptions, cmd).emit(cats, func(w io.Writer) {
		for _, c := range cats {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
	})
}

// IsNotFound reports whether err is a failed lookup.
func IsNotFound(err error) bool { return errors.Is(err, storage.ErrNotFound) }
