package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/awgbot/stack-doctor/checkup"
)

var (
	fullFlag     bool
	envFileFlag  string
	settingsFlag string
)

var rootCmd = &cobra.Command{
	Use:   "stack-doctor",
	Short: "Health checks for an AmneziaWG + Xray bot deployment",
	Long: `stack-doctor verifies that the docker daemon, the tunnel, proxy, DNS
and bot containers, and the bot's secret file are in a consistent, operable
state. It prints one line per check and exits 0 when no errors were found,
1 otherwise, which makes it suitable for cron and monitoring hooks.`,
	SilenceUsage: true,
	RunE:         runDoctor,
}

func init() {
	rootCmd.Flags().BoolVar(&fullFlag, "full", false, "Append the resource and disk usage section")
	rootCmd.Flags().StringVar(&envFileFlag, "env-file", checkup.DefaultBotEnvFile, "Path to the deployment env file")
	rootCmd.Flags().StringVar(&settingsFlag, "settings", "doctor.toml", "Path to the doctor settings file")
}

func initLogger() {
	lvl := zap.NewAtomicLevel()
	logLevel := os.Getenv("DOCTOR_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		panic(err)
	}
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	zapConf := zap.Config{DisableCaller: true, DisableStacktrace: true, Level: lvl,
		Encoding: "json", EncoderConfig: ec,
		OutputPaths: []string{"stderr"}, ErrorOutputPaths: []string{"stderr"}}

	zapLogger, err := zapConf.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(zapLogger)
	zap.RedirectStdLog(zapLogger)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	set, err := checkup.LoadSettings(settingsFlag)
	if err != nil {
		return err
	}
	cfg := checkup.ResolveConfig(envFileFlag)

	probe := checkup.NewDockerCLIProbe(set)
	runner := checkup.NewRunner(probe, cfg, set, os.Stdout, fullFlag)

	verdict := runner.Run(cmd.Context())
	if verdict.ExitCode != 0 {
		os.Exit(verdict.ExitCode)
	}
	return nil
}

func main() {
	initLogger()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
