package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-gmi"
	"github.com/alnah/go-gmi/internal/config"
	"github.com/alnah/go-gmi/internal/fileutil"
	"github.com/alnah/go-gmi/internal/hints"
)

// runLinesCmd parses lines flags and runs the command.
func runLinesCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseLinesFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runLines(ctx, positional, flags, env)
}

// runLines orchestrates classification of every input.
func runLines(ctx context.Context, positionalArgs []string, flags *linesFlags, env *Environment) error {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), env.Logger)

	cfg, err := loadLinesConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if !slices.Contains(config.Formats, cfg.Output.Format) {
		return fmt.Errorf("%w: %q%s", ErrInvalidFormat, cfg.Output.Format, hints.ForUnsupportedFormat(config.Formats))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	configureLogger(env.Logger, cfg.Log, flags.common.quiet, flags.common.verbose)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	undo, _ := maxprocs.Set(maxprocs.Logger(env.Logger.Debugf))
	defer undo()

	classifier, err := gmi.NewClassifier(cfg.Classify.Options()...)
	if err != nil {
		return err
	}

	inputs, err := resolveInputPaths(positionalArgs, cfg)
	if err != nil {
		return err
	}
	if flags.watch && slices.Contains(inputs, fileutil.StdinPath) {
		return ErrWatchStdin
	}

	discover := func() ([]FileToClassify, error) {
		return discoverFiles(inputs, cfg.Input.Extensions, cfg.Output.DefaultDir, outputExtension(cfg.Output.Format))
	}
	files, err := discover()
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	params := &batchParams{
		classifier: classifier,
		format:     cfg.Output.Format,
		summary:    flags.summary,
		workers:    cfg.Workers,
		stdin:      env.Stdin,
		now:        env.Now,
	}

	env.Logger.WithFields(logrus.Fields{
		"files":   len(files),
		"workers": resolveWorkers(cfg.Workers, len(files)),
		"format":  params.format,
	}).Debug("classifying")

	run := func(files []FileToClassify) error {
		return printResults(classifyBatch(ctx, files, params), params.format, env)
	}

	err = run(files)
	if !flags.watch {
		return err
	}
	if err != nil {
		env.Logger.WithError(err).Warn("initial pass failed")
	}
	return watchInputs(ctx, inputs, cfg.Input.Extensions, discover, run, env.Logger)
}

// loadLinesConfig loads the config named by the flag, else by GMI_CONFIG.
// Returns defaults when neither is set.
func loadLinesConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
