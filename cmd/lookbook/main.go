// lookbook is a terminal client for the outfit-generation service. Run with
// no arguments for the interactive chat TUI; subcommands cover one-shot and
// scripting use.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lookbook/cmd/lookbook/chat"
	"lookbook/internal/config"
	"lookbook/internal/logging"
	"lookbook/internal/outfit"
	"lookbook/internal/session"
	"lookbook/internal/store"
)

var (
	flagVerbose    bool
	flagServiceURL string

	logger *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "lookbook",
		Short: "AI outfit stylist in your terminal",
		Long: "lookbook chats with the outfit-generation service to build complete\n" +
			"looks from a short self-description. Without a subcommand it starts\n" +
			"the interactive chat.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Initialize(config.DefaultDataDir()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
			}

			// The TUI owns the terminal; zap output would corrupt it.
			if cmd.Name() == "lookbook" {
				return nil
			}
			var err error
			if flagVerbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
			logging.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := store.New(config.DefaultDBPath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			return chat.Run(cfg, st)
		},
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose diagnostics on subcommands")
	root.PersistentFlags().StringVar(&flagServiceURL, "service-url", "", "outfit service base URL (overrides config)")

	root.AddCommand(newAskCmd(), newHistoryCmd(), newProfileCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.UserConfig, error) {
	cfg, err := config.Load(config.DefaultUserConfigPath())
	if err != nil {
		return nil, err
	}
	if flagServiceURL != "" {
		cfg.ServiceURL = flagServiceURL
	}
	return cfg, nil
}

// newAskCmd sends one message and prints the settled result.
func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <description>",
		Short: "Request one outfit without entering the chat",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := store.New(config.DefaultDBPath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			profile, err := session.LoadProfile(st)
			if err != nil {
				return err
			}
			if !profile.Complete() {
				return fmt.Errorf("profile incomplete: run `lookbook profile set <name> <body type>` first")
			}

			mgr := session.NewManager(profile, st)
			client := outfit.NewClient(cfg.ResolvedServiceURL())
			rec := session.NewReconciler(mgr, client)

			message := strings.Join(args, " ")
			logger.Info("sending request",
				zap.String("service", cfg.ResolvedServiceURL()),
				zap.Int("message_len", len(message)))

			ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
			defer cancel()
			if err := rec.Send(ctx, message); err != nil {
				return err
			}

			printTranscriptTail(mgr.Messages())
			return nil
		},
	}
}

// printTranscriptTail prints the last assistant message in plain text.
func printTranscriptTail(messages []session.Message) {
	if len(messages) == 0 {
		return
	}
	msg := messages[len(messages)-1]
	if msg.Origin != session.OriginAssistant {
		return
	}

	if msg.Text != "" {
		fmt.Println(msg.Text)
		return
	}
	if msg.ImageURL != "" {
		fmt.Printf("Image: %s\n", msg.ImageURL)
	}
	for _, si := range msg.Outfit.Items() {
		fmt.Printf("%-6s %s %s €%s\n", si.Label, si.Item.Brand, si.Item.Category, si.Item.PriceEUR)
	}
	if total := msg.Outfit.TotalEUR(); total > 0 {
		fmt.Printf("Total €%.2f\n", total)
	}
	if msg.StylingTips != "" {
		fmt.Printf("\nTips:\n%s\n", msg.StylingTips)
	}
	if msg.AlternativePalette != "" {
		fmt.Printf("\nAlternative palette:\n%s\n", msg.AlternativePalette)
	}
}

// newHistoryCmd lists archived conversations grouped by recency.
func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.New(config.DefaultDBPath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			entries, err := st.LoadHistory()
			if err != nil {
				return err
			}
			logger.Debug("loaded history", zap.Int("entries", len(entries)))

			groups := session.GroupByDate(entries, time.Now())
			if len(groups) == 0 {
				fmt.Println("No recent conversations.")
				return nil
			}
			for _, g := range groups {
				fmt.Printf("%s\n", g.Label)
				for _, e := range g.Entries {
					when := time.UnixMilli(e.Timestamp).Format("Jan 2, 15:04")
					fmt.Printf("  %-30s  %s\n", e.Title, when)
				}
			}
			return nil
		},
	}
}

// newProfileCmd shows or updates the stored profile.
func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.New(config.DefaultDBPath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			profile, err := session.LoadProfile(st)
			if err != nil {
				return err
			}
			if !profile.Complete() {
				fmt.Println("Profile incomplete. Set it with: lookbook profile set <name> <body type>")
				return nil
			}
			fmt.Printf("Name:      %s\nBody type: %s\n", profile.UserName, profile.BodyType)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name> <body type>",
		Short: "Set the profile used for every request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyType := strings.ToLower(args[1])
			if !session.ValidBodyType(bodyType) {
				return fmt.Errorf("unknown body type %q (one of: %s)",
					args[1], strings.Join(session.BodyTypes, ", "))
			}

			st, err := store.New(config.DefaultDBPath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			profile := session.Profile{UserName: args[0], BodyType: bodyType}
			if err := session.SaveProfile(st, profile); err != nil {
				return err
			}
			logger.Info("profile updated",
				zap.String("name", profile.UserName),
				zap.String("body_type", profile.BodyType))
			fmt.Printf("Profile saved: %s, %s\n", profile.UserName, profile.BodyType)
			return nil
		},
	})
	return cmd
}
