package cmd

import (
	"fmt"

	"TradeMind/pkg/config"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "trademind",
	Short: "Educational pages on trading psychology and risk",
	Long: `TradeMind renders the trading psychology site: the risk meter, the emotion
cycle, a synthetic price chart with moving averages and the account survival
chart, plus the perception/reality placeholder images.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}
