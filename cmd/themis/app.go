package themis

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/themis"
	"github.com/smartcontractkit/themis/internal/config"
	"github.com/smartcontractkit/themis/sdk"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
)

// app is everything a subcommand needs once the configuration is resolved.
type app struct {
	runtime  *config.RuntimeConfig
	session  *config.Session
	governor *themis.Governor
	out      io.Writer
	errOut   io.Writer

	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

// newApp resolves the configuration of cmd, opens the RPC session and builds the governor. The
// returned context carries the logger and the configured deadline; call close when done.
func newApp(cmd *cobra.Command) (*app, context.Context, error) {
	v, err := config.SetupViper(cmd)
	if err != nil {
		return nil, nil, err
	}
	runtime, err := config.Provider(v)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(runtime.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	ctx := sdk.WithLogger(cmd.Context(), logger)
	var cancel context.CancelFunc
	if runtime.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, runtime.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	a := &app{
		runtime: runtime,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		cancel:  cancel,
		logger:  logger,
	}

	a.session, err = config.NewSession(ctx, runtime)
	if err != nil {
		a.close()
		return nil, nil, err
	}

	opts := []themis.Option{
		themis.WithBufferScanner(solanasdk.NewBufferScanner(a.session.Client, runtime.Config.LoaderProgramID)),
	}
	if runtime.DryRun {
		opts = append(opts, themis.WithDryRun())
	}
	a.governor, err = themis.NewGovernor(
		runtime.Config,
		a.session.Signer,
		solanasdk.NewInspector(a.session.Client),
		solanasdk.NewSubmitter(a.session.Client),
		opts...,
	)
	if err != nil {
		a.close()
		return nil, nil, err
	}

	return a, ctx, nil
}

func (a *app) close() {
	a.cancel()
	_ = a.logger.Sync()
}

// newLogger builds a console logger on stderr. Debug level switches to the development config.
func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, sdkerrors.NewConfigurationError(config.KeyLogLevel, err.Error())
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
