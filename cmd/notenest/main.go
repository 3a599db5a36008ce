package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/notenest/notenest/internal/analytics"
	"github.com/notenest/notenest/internal/app"
	"github.com/notenest/notenest/internal/config"
	"github.com/notenest/notenest/internal/gateway"
	"github.com/notenest/notenest/internal/repo"
	"github.com/notenest/notenest/internal/server"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "notenest",
		Short:   "NoteNest - smart notes with rule-based classification",
		Version: Version,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(addCategoryCmd())
	rootCmd.AddCommand(deleteCategoryCmd())
	rootCmd.AddCommand(analyticsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, log, nil
}

// newService wires a synced client session against the configured server.
func newService(ctx context.Context) (*app.Service, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	svc := app.New(gateway.New(cfg.ServerURL, cfg.OwnerID), log)
	if err := svc.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("cannot reach %s: %w", cfg.ServerURL, err)
	}
	return svc, nil
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the NoteNest persistence service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			r, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer r.Close()

			return server.New(r, log).Run(cfg.ListenAddr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [content]",
		Short: "Add a note; it is classified and tagged automatically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			note, err := svc.AddNoteSmart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added %s [%s] (%s)\n", note.ID, categoryNameOf(svc, note.CategoryID), note.Icon)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	var categoryName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}

			categoryID := ""
			if categoryName != "" {
				for _, c := range svc.Store().Categories() {
					if c.Name == categoryName {
						categoryID = c.ID
					}
				}
				if categoryID == "" {
					return fmt.Errorf("unknown category %q", categoryName)
				}
			}

			notes := svc.Store().ListNotes(categoryID)
			if len(notes) == 0 {
				fmt.Println("No notes.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, n := range notes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					n.ID, n.CreatedAt.Format(time.DateTime), categoryNameOf(svc, n.CategoryID), n.Content)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "only notes in this category")
	return cmd
}

func updateCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "update [note-id] [content]",
		Short: "Replace a note's content and optionally move it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}

			note, err := svc.Store().GetNote(args[0])
			if err != nil {
				return fmt.Errorf("unknown note %q", args[0])
			}
			categoryID := note.CategoryID
			if category != "" {
				categoryID = ""
				for _, c := range svc.Store().Categories() {
					if c.Name == category {
						categoryID = c.ID
					}
				}
				if categoryID == "" {
					return fmt.Errorf("unknown category %q", category)
				}
			}
			return svc.UpdateNote(cmd.Context(), args[0], args[1], categoryID)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "move the note to this category")
	return cmd
}

func archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive [note-id]",
		Short: "Archive a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.ArchiveNote(cmd.Context(), args[0])
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [note-id]",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.DeleteNote(cmd.Context(), args[0])
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, c := range svc.Store().Categories() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Color, c.Description)
			}
			return w.Flush()
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var description, color string
	cmd := &cobra.Command{
		Use:   "add-category [name]",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := svc.AddCategory(cmd.Context(), args[0], description, color)
			if err != nil {
				return err
			}
			fmt.Printf("Added category %s (%s)\n", cat.Name, cat.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "category description")
	cmd.Flags().StringVar(&color, "color", "gray-500", "category color token")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-category [category-id]",
		Short: "Delete a category; its notes move to Uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.DeleteCategory(cmd.Context(), args[0])
		},
	}
}

func analyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show note distribution and recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			notes := svc.Store().ListNotes("")
			categories := svc.Store().Categories()

			summary := analytics.Totals(notes, categories, time.Now())
			fmt.Printf("Notes: %d  Categories: %d  Today: %d\n\n",
				summary.TotalNotes, summary.TotalCategories, summary.NotesToday)

			fmt.Println("By category:")
			for _, d := range analytics.Distribution(notes, categories) {
				fmt.Printf("  %-12s %d\n", d.Category.Name, d.Count)
			}

			fmt.Println("\nLast 7 days:")
			for _, d := range analytics.ActivityLast7Days(notes, time.Now()) {
				fmt.Printf("  %s %d\n", d.Label, d.Count)
			}
			return nil
		},
	}
}

func categoryNameOf(svc *app.Service, id string) string {
	for _, c := range svc.Store().Categories() {
		if c.ID == id {
			return c.Name
		}
	}
	return "Uncategorized"
}
