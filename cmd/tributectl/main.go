// Package main provides tributectl, the admin CLI for a Tribute Wall
// deployment. It reads the same environment configuration as the API server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/tribute-wall/internal/app"
	"github.com/pkordes/tribute-wall/internal/config"
	"github.com/pkordes/tribute-wall/internal/domain"
	"github.com/pkordes/tribute-wall/internal/repo"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tributectl",
		Short: "Administer tribute wall storage",
		Long: `Administer the stored tributes of a tribute wall.

Storage is selected with the same environment variables as the API server
(STORAGE_DRIVER, DATABASE_URL, SQLITE_PATH, S3_BUCKET, ...).

Examples:
  tributectl key "Lerato Nomvula Mnguni"   # Print the storage key for a name
  tributectl list --json                   # Dump persisted tributes as JSON
  tributectl clear --yes                   # Erase every persisted tribute
  tributectl migrate                       # Apply Postgres migrations
`,
		SilenceUsage: true,
	}

	cmd.AddCommand(keyCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(clearCmd())
	cmd.AddCommand(migrateCmd())

	return cmd
}

func keyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <subject name>",
		Short: "Print the storage key derived from a subject name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), repo.DeriveKey(args[0]))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	var (
		subject    string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted tributes, newest first",
		Long: `List the tributes persisted for a subject. Seed tributes from the
profile are not stored and therefore not listed. Unlike the server, a corrupt
slot is reported as an error instead of being treated as empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), subject, func(ctx context.Context, store *repo.TributeStore, name string) error {
				tributes, err := store.Read(ctx, name)
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(cmd.OutOrStdout(), tributes)
				}
				return printTable(cmd.OutOrStdout(), tributes)
			})
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name (defaults to the configured profile)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output tributes as JSON")

	return cmd
}

func clearCmd() *cobra.Command {
	var (
		subject string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase every persisted tribute for a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear tributes without --yes")
			}
			return withStore(cmd.Context(), subject, func(ctx context.Context, store *repo.TributeStore, name string) error {
				if err := store.Write(ctx, name, []domain.Tribute{}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", repo.DeriveKey(name))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name (defaults to the configured profile)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StorageDriver != config.DriverPostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=postgres, got %q", cfg.StorageDriver)
			}
			n, err := app.Migrate(commandContext(cmd), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	}
}

// withStore loads config, opens storage and resolves the subject name before
// calling fn. Logs go to stderr so stdout stays machine-readable.
func withStore(ctx context.Context, subject string, fn func(context.Context, *repo.TributeStore, string) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := app.NewLogger(os.Stderr, cfg.LogLevel)

	storage, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer storage.Close()

	if subject == "" {
		profile, err := app.LoadProfile(cfg)
		if err != nil {
			return err
		}
		subject = profile.FullName
	}

	return fn(ctx, repo.NewTributeStore(storage.Facility, log, nil), subject)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(w io.Writer, tributes []domain.Tribute) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tributes)
}

func printTable(w io.Writer, tributes []domain.Tribute) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POSTED\tNAME\tRELATIONSHIP\tMESSAGE")
	for _, t := range tributes {
		msg := t.Message
		if t.HasAttachment() {
			msg = fmt.Sprintf("%s [%s: %s]", msg, t.AttachmentType, t.AttachmentValue)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.PostedAt().Format("2006-01-02 15:04"), t.Name, t.Relationship, msg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d tribute(s)\n", len(tributes))
	return nil
}
