// Package cmd is the command-line surface: the root command opens a
// target with the resolved handler, subcommands inspect and mutate the
// MIME associations.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"openwith/internal/assoc"
	"openwith/internal/cache"
	"openwith/internal/config"
	"openwith/internal/launcher"
	"openwith/internal/store"
	"openwith/internal/xdg"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	flagConfig          string
	flagDebug           bool
	flagRefresh         bool
	flagJSON            bool
	flagActions         bool
	flagExpandWildcards bool
	flagAutoOpenSingle  bool
	flagGenerateConfig  bool
)

var rootCmd = &cobra.Command{
	Use:     "openwith [target]",
	Short:   "Open files and URIs with the right application",
	Long:    "Resolves the desktop applications associated with a file or URI and launches the chosen one, honoring the XDG desktop-entry and mime-apps conventions.",
	Version: fmt.Sprintf("%s (built %s)", version, buildTime),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagGenerateConfig {
			return generateConfig()
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		return runOpen(args[0])
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(applyDebug)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/openwith/config.yaml)")
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging on stderr")
	pf.BoolVar(&flagRefresh, "refresh", false, "ignore the entry cache and rescan")
	pf.BoolVar(&flagExpandWildcards, "expand-wildcards", false, "apply wildcard patterns to every matching known type")

	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "print candidates as JSON instead of opening")
	rootCmd.Flags().BoolVar(&flagActions, "actions", false, "offer desktop actions as candidates")
	rootCmd.Flags().BoolVar(&flagAutoOpenSingle, "auto-open-single", false, "skip the picker when exactly one candidate matches")
	rootCmd.Flags().BoolVar(&flagGenerateConfig, "generate-config", false, "write the default config file and exit")
}

func applyDebug() {
	if flagDebug {
		store.DebugMode = true
		cache.DebugMode = true
		assoc.DebugMode = true
		launcher.DebugMode = true
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagExpandWildcards {
		cfg.ExpandWildcards = true
	}
	if flagAutoOpenSingle {
		cfg.AutoOpenSingle = true
	}
	if flagActions {
		cfg.IncludeActions = true
	}
	return cfg, nil
}

func generateConfig() error {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Default().Write(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// buildResolver scans (or loads from cache) the desktop entries and loads
// the association tiers, returning the ready resolver.
func buildResolver(forceRefresh bool) (*assoc.Resolver, *store.Result, error) {
	roots := xdg.SearchRoots()
	result, _, err := cache.Default().GetOrBuild(roots, forceRefresh)
	if err != nil {
		return nil, nil, err
	}
	tiers := assoc.LoadTiers(xdg.MimeappsPaths())
	return assoc.NewResolver(result.Entries, tiers), result, nil
}
