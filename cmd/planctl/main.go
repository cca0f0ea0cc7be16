package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tripmate/cmd/planctl/commands"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "tripmate planner tooling",
	Long: `planctl runs the travel planner without the HTTP server: build plans,
normalize saved model answers, ingest reference documents and mint API tokens.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(commands.PlanCmd)
	rootCmd.AddCommand(commands.DemoCmd)
	rootCmd.AddCommand(commands.NormalizeCmd)
	rootCmd.AddCommand(commands.IngestCmd)
	rootCmd.AddCommand(commands.TokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.planctl.yaml)")
	rootCmd.PersistentFlags().String("locale", "ko", "output locale (ko or en)")
	rootCmd.PersistentFlags().String("time-zone", "Local", "IANA time zone used for itinerary dates")

	viper.BindPFlag(commands.KeyLocale, rootCmd.PersistentFlags().Lookup("locale"))
	viper.BindPFlag(commands.KeyTimeZone, rootCmd.PersistentFlags().Lookup("time-zone"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".planctl")
	}

	viper.SetEnvPrefix("PLANCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
