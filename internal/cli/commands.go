package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

func storeAnnotation() map[string]string {
	return map[string]string{needsStore: "true"}
}

func (a *app) today() model.Date {
	return model.DateOf(a.opt.Now())
}

func (a *app) addCmd() *cobra.Command {
	var (
		category    string
		due         string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a new todo (title can be multiple words)",
		Example: `  todo add Buy milk -c shopping --due 2026-01-31`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !interactive {
				return usagef("usage: todo add <title...>")
			}
			return nil
		},
		Annotations: storeAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := form.AddInput{Title: strings.Join(args, " "), Category: category, Due: due}
			if in.Category == "" {
				in.Category = string(model.Personal)
			}
			if interactive {
				if err := form.NewAddForm(&in).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return usagef("add: cancelled")
					}
					return fmt.Errorf("add form: %w", err)
				}
			}

			v, err := form.Parse(in)
			if err != nil {
				return err
			}
			t := a.store.Add(v.Title, v.Category, v.Due)
			if err := a.saved(); err != nil {
				return err
			}
			a.logger.Debug("added todo", "id", t.ID)
			ui.OK(a.opt.Stdout, a.theme, "added "+t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "work, personal or shopping (default personal)")
	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill in the todo with a form")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var (
		status   string
		search   string
		category string
		group    bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:         "ls",
		Aliases:     []string{"list"},
		Short:       "List todos",
		Args:        exactArgs(0, "todo ls [--status all|active|completed] [-s query] [-c category]"),
		Annotations: storeAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilter(status, search, category)
			if err != nil {
				return err
			}
			if asJSON {
				b, err := store.Encode(a.store.View(f))
				if err != nil {
					return err
				}
				_, err = a.opt.Stdout.Write(b)
				return err
			}
			l := listing{theme: a.theme, store: a.store, today: a.today()}
			fmt.Fprintln(a.opt.Stdout, ui.Panel(a.theme, l.lines(f, group)))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "all, active or completed")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only titles containing this text")
	cmd.Flags().StringVarP(&category, "category", "c", "all", "work, personal, shopping or all")
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the todos as JSON")
	return cmd
}

func parseFilter(status, search, category string) (todos.Filter, error) {
	st, err := model.ParseStatus(status)
	if err != nil {
		return todos.Filter{}, &usageError{msg: err.Error(), err: err}
	}
	f := todos.Filter{Status: st, Search: search}
	if c := strings.ToLower(strings.TrimSpace(category)); c != "" && c != "all" {
		cat, err := model.ParseCategory(c)
		if err != nil {
			return todos.Filter{}, &usageError{msg: err.Error(), err: err}
		}
		f.Category = cat
	}
	return f, nil
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "done <ref>",
		Short:       "Toggle done for a todo by 1-based index or id",
		Args:        exactArgs(1, "todo done <ref>"),
		Annotations: storeAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveRef(a.store.All(), args[0])
			if err != nil {
				return err
			}
			a.store.Toggle(t.ID)
			if err := a.saved(); err != nil {
				return err
			}
			if t.Completed {
				ui.OK(a.opt.Stdout, a.theme, "reopened "+t.Title)
			} else {
				ui.OK(a.opt.Stdout, a.theme, "completed "+t.Title)
			}
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "rm <ref>",
		Aliases:     []string{"remove"},
		Short:       "Remove a todo by 1-based index or id",
		Args:        exactArgs(1, "todo rm <ref>"),
		Annotations: storeAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveRef(a.store.All(), args[0])
			if err != nil {
				return err
			}
			a.store.Remove(t.ID)
			if err := a.saved(); err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, a.theme, "removed "+t.Title)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var (
		title    string
		category string
		due      string
		noDue    bool
	)
	cmd := &cobra.Command{
		Use:         "edit <ref>",
		Short:       "Change the title, category or due date of a todo",
		Example:     `  todo edit 2 --title "Buy oat milk" --no-due`,
		Args:        exactArgs(1, "todo edit <ref> [--title text] [-c category] [--due YYYY-MM-DD | --no-due]"),
		Annotations: storeAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("due") && noDue {
				return usagef("edit: --due and --no-due can't be used together")
			}

			var in form.EditInput
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("category") {
				in.Category = &category
			}
			if flags.Changed("due") {
				in.Due = &due
			}
			in.NoDue = noDue

			p, err := form.ParseEdit(in)
			if err != nil {
				return err
			}
			if p.Empty() {
				return usagef("edit: nothing to change")
			}

			t, err := resolveRef(a.store.All(), args[0])
			if err != nil {
				return err
			}
			a.store.Update(t.ID, p)
			if err := a.saved(); err != nil {
				return err
			}
			updated, _ := a.store.Get(t.ID)
			ui.OK(a.opt.Stdout, a.theme, "updated "+updated.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&due, "due", "", "new due date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "remove the due date")
	return cmd
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "clear",
		Short:       "Remove every completed todo",
		Args:        exactArgs(0, "todo clear"),
		Annotations: storeAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.store.ClearCompleted()
			if err := a.saved(); err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, a.theme, fmt.Sprintf("cleared %d completed", n))
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "stats",
		Short:       "Show total, active and completed counts",
		Args:        exactArgs(0, "todo stats [--json]"),
		Annotations: storeAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.store.Counts()
			if asJSON {
				enc := json.NewEncoder(a.opt.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]int{
					"total":     c.Total,
					"active":    c.Active,
					"completed": c.Completed,
				})
			}
			fmt.Fprintf(a.opt.Stdout, "Total: %d  Active: %d  Completed: %d\n", c.Total, c.Active, c.Completed)
			fmt.Fprintln(a.opt.Stdout, a.theme.Muted.Render(ui.ProgressBar(c.Completed, c.Total, 28)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the counts as JSON")
	return cmd
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive list (the default)",
		Args:        exactArgs(0, "todo tui"),
		Annotations: storeAnnotation(),
		RunE:        a.runTUI,
	}
}

// runTUI runs the interactive list and remembers a theme switched there.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	final, err := tui.Run(a.store, tui.Options{Theme: a.theme, Now: a.opt.Now})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if final.Name == a.theme.Name {
		return nil
	}
	a.theme = final
	if err := config.SaveTheme(a.cfgPath, final.Name); err != nil {
		a.logger.Warn("saving theme failed", "path", a.cfgPath, "err", err)
	}
	return nil
}
