// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/bytedance/sonic"
	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-a2a/ragroute"
	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/pkg/logging"
)

// app is the state shared by every subcommand once the configuration is loaded.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:     "ragroute",
		Short:   "Route RAG queries to interchangeable model backends",
		Version: ragroute.Version,
		Long: heredoc.Doc(`
			ragroute builds few-shot prompts, invokes the configured model endpoint and
			post-processes the answer. It also resolves the evaluation and embedding
			backends of an experiment and lists the Bedrock resources it can use.

			Every flag can also be set with a RAGROUTE_* environment variable or in the
			file given with --config.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to a config file (yaml, json or toml)")
	flags.String("aws-region", config.Default().AWSRegion, "default AWS region")
	flags.String("aws-endpoint", "", "override the endpoint of every AWS client")
	flags.String("log-level", config.Default().LogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", config.Default().LogFormat, "log format: json or text")
	flags.String("guardrail-source", config.Default().GuardrailSource, "guardrail source: static or bedrock")
	flags.StringSlice("guardrails", nil, "guardrail identifiers served by the static source")
	bindFlags(a.v, flags, map[string]string{
		"aws_region":       "aws-region",
		"aws_endpoint":     "aws-endpoint",
		"log_level":        "log-level",
		"log_format":       "log-format",
		"guardrail_source": "guardrail-source",
		"guardrails":       "guardrails",
	})

	cmd.AddCommand(
		newServeCommand(a),
		newGenerateCommand(a),
		newKnowledgeBasesCommand(a),
		newGuardrailsCommand(a),
		newResolveCommand(a),
	)
	return cmd
}

// load reads the configuration and installs the logger in the command context.
func (a *app) load(cmd *cobra.Command) error {
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	cmd.SetContext(logging.NewContext(cmd.Context(), logger))
	return nil
}

// bindFlags binds each config key to the flag of the same meaning.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// readJSONFile decodes the JSON file at path into v. "-" reads standard input.
func readJSONFile(cmd *cobra.Command, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
