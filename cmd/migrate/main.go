package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/config"
	pg "github.com/ogurasousui/codex-graphql-crud/internal/platform/db/postgres"
	"github.com/spf13/cobra"
)

type options struct {
	configPath    string
	migrationsDir string
	seedsDir      string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply database migrations and seed data",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	root.PersistentFlags().StringVar(&opts.migrationsDir, "dir", "assets/migrations", "directory containing migration files")

	for _, action := range []struct {
		name  string
		short string
	}{
		{"up", "Apply all pending migrations"},
		{"down", "Revert all applied migrations"},
		{"drop", "Drop everything in the database"},
		{"version", "Print the current migration version"},
	} {
		root.AddCommand(&cobra.Command{
			Use:   action.name,
			Short: action.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load(effectiveConfigPath(opts.configPath))
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := runMigration(cmd, action.name, opts.migrationsDir, cfg.Database.DSN()); err != nil {
					return fmt.Errorf("migration %s failed: %w", action.name, err)
				}
				cmd.Printf("migration %s completed\n", action.name)
				return nil
			},
		})
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load sample data from SQL files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(effectiveConfigPath(opts.configPath))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			applied, err := runSeeds(cmd.Context(), cfg.Database, opts.seedsDir)
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d file(s)\n", applied)
			return nil
		},
	}
	seed.Flags().StringVar(&opts.seedsDir, "seeds", "assets/seeds", "directory containing seed SQL files")
	root.AddCommand(seed)

	return root
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func sourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	return fmt.Sprintf("file://%s", filepath.ToSlash(absDir)), nil
}

func runMigration(cmd *cobra.Command, action, dir, dsn string) error {
	src, err := sourceURL(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(src, dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				cmd.Println("no migration applied")
				return nil
			}
			return err
		}
		cmd.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

func seedFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list seeds in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func runSeeds(ctx context.Context, cfg config.DatabaseConfig, dir string) (int, error) {
	files, err := seedFiles(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	pool, err := pg.NewPool(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer pool.Close()

	for i, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return i, fmt.Errorf("read seed %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return i, fmt.Errorf("apply seed %s: %w", filepath.Base(file), err)
		}
	}
	return len(files), nil
}
