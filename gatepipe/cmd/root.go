// Package cmd provides the command-line interface of gatepipe.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gatepipe",
	Short: "gatepipe simulates a five-stage pipeline built from logic gates.",
	Long: `gatepipe simulates a MIPS-like five-stage pipeline in which every ` +
		`register, multiplexer and ALU bit is built from logic gates. It runs ` +
		`programs cycle by cycle, checks scenarios and records traces.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig()
	},
}

func init() {
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "",
		"config file (default is ./gatepipe.yaml or $HOME/.gatepipe/gatepipe.yaml)")
	pf.String("log-level", "info", "log level: trace, debug, info, warn or error")
	pf.String("log-file", "", "also write the log into a rotating file")

	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.file", pf.Lookup("log-file"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(asmCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the .env file, the config file and the environment.
func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gatepipe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.gatepipe")
		}
	}

	viper.SetEnvPrefix("GATEPIPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if viper.GetString("log.level") == "debug" ||
			viper.GetString("log.level") == "trace" {
			fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		atexit.Exit(1)
	}

	atexit.Exit(0)
}
