package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/repository/migrations"
	"github.com/Rrens/shopchat/internal/security"
)

var driver string

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the shop chat database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&driver, "driver", "d", "", "Override database.driver (postgres, sqlite, mysql)")

	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(downCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func databaseConfig() (config.DatabaseConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	db := cfg.Database
	if driver != "" {
		db.Driver = driver
	}
	if db.Driver == "mongo" {
		return db, fmt.Errorf("mongo has no schema migrations; indexes are created on startup")
	}
	return db, nil
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := databaseConfig()
			if err != nil {
				return err
			}
			if err := migrations.Up(db.Driver, db.MigrationURL()); err != nil {
				return err
			}
			fmt.Printf("%s schema is up to date\n", db.Driver)
			return nil
		},
	}
}

func downCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := databaseConfig()
			if err != nil {
				return err
			}
			if err := migrations.Down(db.Driver, db.MigrationURL(), steps); err != nil {
				return err
			}
			fmt.Printf("rolled back %s schema\n", db.Driver)
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back (0 rolls back all)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := databaseConfig()
			if err != nil {
				return err
			}
			version, dirty, err := migrations.Version(db.Driver, db.MigrationURL())
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for auth.admin_password_hash",
		Long:  "Hashes the given password, or one line read from stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			hash, err := security.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
