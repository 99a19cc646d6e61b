package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	platformPath string
	offsetFlag   string
	logLevel     string
	versionFlag  bool
	rootCmd      *cobra.Command
)

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion() {
	fmt.Printf("configblock %s\n", version)
	fmt.Printf("Built: %s\n", getBuildTimestamp())
}

func init() {
	rootCmd = &cobra.Command{
		Use:           "configblock",
		Short:         "Inspect device configuration block images",
		Long:          `Inspect, verify and provision the radio and calibration configuration block stored in device flash or EEPROM images.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion()
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&platformPath, "platform", "p", "", "Path to platform profile (YAML)")
	rootCmd.PersistentFlags().StringVar(&offsetFlag, "offset", "", "Record offset within the image (decimal or 0x hex)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(newInspectCmd(), newVerifyCmd(), newDefaultsCmd(), newEncodeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
