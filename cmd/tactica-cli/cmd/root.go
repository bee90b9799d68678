package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	slotID    string
	dbEndpoint string
	jsonOut   bool
	verbose   bool
	dryrun    bool
	confirm   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "tactica",
	Short:        "Tactica CLI - command-line interface for Tactica save slots",
	SilenceUsage: true,
	Long: `Tactica CLI drives a saved area from the command line.

Examples:
  tactica status                   Show area and turn status
  tactica units                    List all entities on the area
  tactica move hero-1 3,4          Path an entity to a tile
  tactica endturn                  End current turn
  tactica save                     Persist the in-memory state to the slot

Global Flags:
  --slot string           Save slot id to operate on (or set TACTICA_SLOT env var)
  --db string             postgres:// save store endpoint (or set TACTICA_DB env var)
  --json                  Output in JSON format
  --verbose               Show detailed debug information
  --dryrun                Preview changes without saving to disk`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tactica.yaml)")
	rootCmd.PersistentFlags().StringVar(&slotID, "slot", "", "save slot id to operate on (env: TACTICA_SLOT)")
	rootCmd.PersistentFlags().StringVar(&dbEndpoint, "db", "", "postgres:// save store endpoint (env: TACTICA_DB)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "show detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&dryrun, "dryrun", false, "preview changes without saving to disk")
	rootCmd.PersistentFlags().BoolVar(&confirm, "confirm", true, "prompt for confirmation on destructive actions")

	viper.BindPFlag("slot", rootCmd.PersistentFlags().Lookup("slot"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("dryrun", rootCmd.PersistentFlags().Lookup("dryrun"))
	viper.BindPFlag("confirm", rootCmd.PersistentFlags().Lookup("confirm"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tactica")
	}

	viper.SetEnvPrefix("TACTICA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// getSlotID retrieves the save slot id from the flag or env var (flag
// overrides), falling back to the fixed id "local" when neither is set
// so a bare `tactica status` still has somewhere to work.
func getSlotID() string {
	if rootCmd.PersistentFlags().Changed("slot") {
		return slotID
	}
	if id := viper.GetString("slot"); id != "" {
		return id
	}
	return "local"
}

func isJSONOutput() bool { return viper.GetBool("json") }
func isVerbose() bool    { return viper.GetBool("verbose") }
func isDryrun() bool     { return viper.GetBool("dryrun") }
func shouldConfirm() bool { return viper.GetBool("confirm") }

// getDBEndpoint returns the configured save store endpoint, or empty
// for an in-memory-only session.
func getDBEndpoint() string {
	if rootCmd.PersistentFlags().Changed("db") {
		return dbEndpoint
	}
	return viper.GetString("db")
}
