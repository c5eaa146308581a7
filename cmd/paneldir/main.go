// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for Paneldir using the Cobra
// library. It defines the root command (which launches the interactive
// console), the scripting subcommands under 'account', and the main entry
// point for execution.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/paneldir/paneldir/buildvars"
	"github.com/paneldir/paneldir/internal/config"
	"github.com/paneldir/paneldir/internal/core"
	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/i18n"
	"github.com/paneldir/paneldir/internal/logging"
	"github.com/paneldir/paneldir/internal/model"
	"github.com/paneldir/paneldir/internal/tui"
)

var version = "dev" // this will be set by the linker

var (
	cfgFile   string
	demoMode  bool
	assumeYes bool

	// appConfig is resolved once in PersistentPreRunE and read by every
	// subcommand.
	appConfig config.Config
)

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// newRootCmd creates and configures a new root cobra command. This function
// is used to create the main application command as well as fresh instances
// for isolated testing.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paneldir",
		Short: "Paneldir is a terminal console for a hosted panel's account directory.",
		Long: `Paneldir talks to a panel's account directory API and lets you
list, create and delete accounts with their traffic quota and
expiration metadata, from an interactive terminal UI or from
scriptable subcommands.

Running without a subcommand will launch the interactive console.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			appConfig, err = config.Load(cmd, cfgFile)
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}

			i18n.Init(appConfig.Language)

			if appConfig.LogFile != "" {
				f, err := os.OpenFile(appConfig.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
				if err != nil {
					return fmt.Errorf("could not open log file: %w", err)
				}
				logging.SetOutput(f)
			}
			logging.SetDebug(appConfig.Debug)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			tui.Run(tui.Options{
				Client: newClient(),
				Policy: model.ZeroUnlimited,
				SaveLanguage: func(code string) error {
					appConfig.Language = code
					return config.Write(&appConfig, false)
				},
			})
		},
	}

	cmd.AddCommand(newAccountCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(versionCmd)

	cmd.Version = buildvars.VersionOrDefault(version)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is paneldir.yaml in the user config dir)")
	cmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "run against a built-in demo directory instead of a server")
	cmd.PersistentFlags().String("server.url", "", "base URL of the directory API")
	cmd.PersistentFlags().String("server.token", "", "bearer token for the directory API")
	cmd.PersistentFlags().String("language", "", `console language ("en", "de")`)
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	return cmd
}

// newClient builds the directory backend selected by configuration.
func newClient() directory.Client {
	if demoMode {
		logging.Debugf("using in-memory demo directory")
		return directory.NewDemoClient()
	}
	return directory.NewHTTPClient(appConfig.Server.URL, appConfig.Server.Token)
}

// newAccountCmd groups the scripting surface over the account directory.
func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage directory accounts from the command line",
	}
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountDeleteCmd())
	return cmd
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), directory.DefaultTimeout)
			defer cancel()

			accounts, err := newClient().ListAccounts(ctx)
			if err != nil {
				return fmt.Errorf("could not list accounts: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%s\t%s\t%s\t%s\n",
				strings.ToUpper(i18n.T("accounts.col.username")),
				strings.ToUpper(i18n.T("accounts.col.status")),
				strings.ToUpper(i18n.T("accounts.col.quota")),
				strings.ToUpper(i18n.T("accounts.col.expiry")),
			)
			for _, a := range accounts {
				status := i18n.T("accounts.badge.active")
				if !a.IsActive {
					status = i18n.T("accounts.badge.disabled")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					a.ID,
					a.Username,
					status,
					core.QuotaText(a, model.ZeroUnlimited),
					core.ExpiryText(a, i18n.T("accounts.date_layout"), i18n.T("accounts.expiry.never")),
				)
			}
			return w.Flush()
		},
	}
}

func newAccountCreateCmd() *cobra.Command {
	var (
		username string
		password string
		email    string
		limitGB  int
		days     int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("could not read password: %w", err)
				}
				password = string(raw)
			}

			client := newClient()
			store := core.NewListStore(client)
			coord := core.NewCoordinator(client, store,
				core.ConfirmFunc(func(string) bool { return true }),
				printNotifier(cmd))

			coord.OpenDialog()
			coord.SetDraft(core.Draft{
				Username:       username,
				Password:       password,
				Email:          email,
				TrafficLimitGB: limitGB,
				ExpireDays:     days,
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), directory.DefaultTimeout)
			defer cancel()
			return coord.CreateAccount(ctx)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for the new account")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&email, "email", "", "contact email (optional)")
	cmd.Flags().IntVar(&limitGB, "limit", core.DefaultTrafficLimitGB, "traffic limit in GB (0 = unlimited)")
	cmd.Flags().IntVar(&days, "days", core.DefaultExpireDays, "days until the account expires")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			store := core.NewListStore(client)

			confirm := core.ConfirmFunc(func(prompt string) bool {
				if assumeYes {
					return true
				}
				answer := promptForConfirmation(cmd, prompt+" [y/N]: ")
				return answer == "y" || answer == "yes"
			})
			coord := core.NewCoordinator(client, store, confirm, printNotifier(cmd))

			ctx, cancel := context.WithTimeout(cmd.Context(), directory.DefaultTimeout)
			defer cancel()
			return coord.DeleteAccount(ctx, args[0])
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// newConfigCmd writes the resolved configuration to disk so the console can
// be set up once and reused.
func newConfigCmd() *cobra.Command {
	var system bool
	cmd := &cobra.Command{
		Use:   "config-init",
		Short: "Write the current configuration to the standard location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Write(&appConfig, system); err != nil {
				return fmt.Errorf("could not write configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration written.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "write to the system-wide location instead of the user one")
	return cmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Paneldir version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "paneldir %s\n", buildvars.VersionOrDefault(version))
	},
}

// printNotifier surfaces coordinator notifications on the command's output.
func printNotifier(cmd *cobra.Command) core.Notifier {
	return core.NotifyFunc(func(message string, kind core.NotifyKind) {
		if kind == core.NotifyError {
			fmt.Fprintln(cmd.ErrOrStderr(), "✗ "+message)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ "+message)
	})
}

// promptForConfirmation displays a prompt and reads a line from stdin.
func promptForConfirmation(cmd *cobra.Command, prompt string) string {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer))
}
