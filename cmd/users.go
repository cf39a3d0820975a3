package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/registry"
	"github.com/teenfaith/teenfaith/internal/storage"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	Long:  `Display all accounts stored in the user registry. Passwords are never shown.`,
	RunE:  listUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func listUsers(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	kv, err := storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer kv.Close() //nolint:errcheck

	users, err := registry.New(kv).Users(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	if len(users) == 0 {
		log.Info("no registered users")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tREGISTERED") //nolint:errcheck
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, registeredAt(u)) //nolint:errcheck
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d users\n", len(users))
	return nil
}

// registeredAt derives the registration time from time based ids.
func registeredAt(u models.User) string {
	id, err := ulid.ParseStrict(u.ID)
	if err != nil {
		return "-"
	}
	return humanize.Time(ulid.Time(id.Time()).In(time.Local))
}
