// Package cli implements the gamectl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wh33les/HusbandsGames/internal/client"
)

var (
	apiURL    string
	configDir string
	verbose   bool
)

// NewRootCmd builds the gamectl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gamectl",
		Short: "Browse and manage the game catalog",
		Long: `gamectl is the terminal client of the game catalog. It lists and
sorts the collection and exports it as CSV; after an admin login it can
also add, edit and delete entries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	_ = godotenv.Load()
	defaultAPI := os.Getenv("GAMECTL_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8000"
	}

	root.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "base URL of the catalog API")
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory for the persisted session (default: user config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newListCmd(),
		newExportCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newTUICmd(),
	)
	return root
}

// newClient builds the API client with the configured session store.
func newClient() (*client.Client, error) {
	store, err := sessionStore()
	if err != nil {
		return nil, err
	}
	return client.New(apiURL, store), nil
}

func sessionStore() (*client.SessionStore, error) {
	if configDir != "" {
		return client.NewSessionStore(configDir), nil
	}
	return client.DefaultSessionStore()
}

// Execute runs the command tree and maps failures onto a non-zero exit.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
