package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/jmgilman/scriptfs"
)

// app carries state shared by every subcommand once the root command has
// resolved its configuration.
type app struct {
	cfg    Config
	fs     *scriptfs.FileSystem
	logger *slog.Logger

	configFile string
	envFile    string
	getenv     func(string) (string, bool)
}

func newRootCmd() *cobra.Command {
	a := &app{getenv: os.LookupEnv}
	flags := defaultConfig()

	cmd := &cobra.Command{
		Use:           "scriptfs",
		Short:         "Script-style file operations over local, memory and S3 storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "TOML config file (default ./"+defaultConfigFile+")")
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file with SCRIPTFS_* variables")
	pf.StringVar(&flags.Backend, "backend", flags.Backend, "storage backend: local, memory or s3")
	pf.StringVar(&flags.Root, "root", "", "root directory of the local backend (default working directory)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flags.VerifyMoves, "verify-moves", false, "verify moved content with BLAKE3 before removing the source")
	pf.StringVar(&flags.S3.Endpoint, "s3-endpoint", "", "S3 endpoint (host:port)")
	pf.StringVar(&flags.S3.Bucket, "s3-bucket", "", "S3 bucket")
	pf.StringVar(&flags.S3.AccessKey, "s3-access-key", "", "S3 access key")
	pf.StringVar(&flags.S3.SecretKey, "s3-secret-key", "", "S3 secret key")
	pf.StringVar(&flags.S3.Prefix, "s3-prefix", "", "key prefix inside the bucket")
	pf.BoolVar(&flags.S3.UseSSL, "s3-ssl", false, "use HTTPS for S3")
	pf.StringVar(&flags.S3.Timeout, "s3-timeout", "", "per-operation S3 timeout, e.g. 30s")

	cmd.AddCommand(
		newReadCmd(a),
		newWriteCmd(a),
		newTouchCmd(a),
		newSizeCmd(a),
		newCopyCmd(a),
		newCopyTreeCmd(a),
		newMoveCmd(a),
		newRemoveCmd(a),
		newRemoveDirectoryCmd(a),
		newRemoveTreeCmd(a),
		newExistsCmd(a),
		newListCmd(a),
		newMakeDirectoryCmd(a),
		newJoinCmd(a),
		newSplitCmd(a),
	)
	return cmd
}

// setup layers configuration and builds the facade.
func (a *app) setup(cmd *cobra.Command, flags Config) error {
	cfg := defaultConfig()

	path, explicit := a.configFile, a.configFile != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := loadFile(&cfg, path, explicit); err != nil {
		return err
	}

	env, err := newEnvLookup(a.envFile, a.getenv)
	if err != nil {
		return err
	}
	if err := env.apply(&cfg); err != nil {
		return err
	}

	overrideFlags(cmd, &cfg, flags)
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	native, err := cfg.Primitives()
	if err != nil {
		return err
	}

	opts := []scriptfs.Option{scriptfs.WithLogger(a.logger)}
	if cfg.VerifyMoves {
		opts = append(opts, scriptfs.WithVerifiedMoves())
	}
	a.fs = scriptfs.New(native, opts...)
	a.logger.Debug("configured", "backend", cfg.Backend, "type", native.Type())
	return nil
}

// overrideFlags copies every flag the user set explicitly onto cfg.
func overrideFlags(cmd *cobra.Command, cfg *Config, flags Config) {
	set := func(name string) bool {
		return cmd.Flags().Changed(name)
	}
	if set("backend") {
		cfg.Backend = flags.Backend
	}
	if set("root") {
		cfg.Root = flags.Root
	}
	if set("verbose") {
		cfg.Verbose = flags.Verbose
	}
	if set("verify-moves") {
		cfg.VerifyMoves = flags.VerifyMoves
	}
	if set("s3-endpoint") {
		cfg.S3.Endpoint = flags.S3.Endpoint
	}
	if set("s3-bucket") {
		cfg.S3.Bucket = flags.S3.Bucket
	}
	if set("s3-access-key") {
		cfg.S3.AccessKey = flags.S3.AccessKey
	}
	if set("s3-secret-key") {
		cfg.S3.SecretKey = flags.S3.SecretKey
	}
	if set("s3-prefix") {
		cfg.S3.Prefix = flags.S3.Prefix
	}
	if set("s3-ssl") {
		cfg.S3.UseSSL = flags.S3.UseSSL
	}
	if set("s3-timeout") {
		cfg.S3.Timeout = flags.S3.Timeout
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    color.NoColor,
	}))
}

// printError renders err on w, naming the error code when there is one.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	if code := errorCode(err); code != "" {
		_, _ = red.Fprintf(w, "error [%s]: ", code)
	} else {
		_, _ = red.Fprint(w, "error: ")
	}
	_, _ = fmt.Fprintln(w, errorMessage(err))
}
