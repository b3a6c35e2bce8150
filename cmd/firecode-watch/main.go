package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "firecode-watch",
		Short: "Fire safety standards monitor - NFPC/NFTC revision tracking",
		Long: `firecode-watch monitors Korean fire safety performance standards (NFPC)
and technical standards (NFTC) for revisions via the law.go.kr open API.
It records each check run, serves a status dashboard over HTTP, and can
push change notifications to Slack.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
