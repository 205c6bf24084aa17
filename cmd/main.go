package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/migillett/TranscodeTycoonGame/cmd/cli"
	"github.com/migillett/TranscodeTycoonGame/pkg/logger"
)

var (
	logMode    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "transcode-tycoon",
	Short: "Transcode Tycoon",
	Long:  `An idle tycoon game where players render simulated video jobs for virtual cash`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch logMode {
		case "debug", "pretty", "info", "prod", "test":
			logger.InitWithMode(logger.LogMode(logMode))
		default:
			logger.InitWithMode(logger.LogModePretty)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunServer(configPath)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the game API server",
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunServer(configPath)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log", "pretty", "Log mode: debug, pretty, info, prod, test")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Path to the YAML config file")
}
