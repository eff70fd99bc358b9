// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by [Load].
const EnvPrefix = "RAGROUTE"

// Config is the shared process configuration.
type Config struct {
	// AWSRegion is the default region for AWS clients.
	AWSRegion string `mapstructure:"aws_region"`

	// AWSEndpoint overrides the endpoint of every AWS client. Used for local stacks.
	AWSEndpoint string `mapstructure:"aws_endpoint"`

	// ExperimentTable is the DynamoDB table holding experiment records.
	ExperimentTable string `mapstructure:"experiment_table"`

	// HTTPAddr is the listen address of the HTTP surface.
	HTTPAddr string `mapstructure:"http_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is json or text.
	LogFormat string `mapstructure:"log_format"`

	// RequestTimeout bounds every HTTP request handled by the service.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// EndpointPollInterval is the delay between two SageMaker endpoint status checks.
	EndpointPollInterval time.Duration `mapstructure:"endpoint_poll_interval"`

	// EndpointPollAttempts bounds the number of SageMaker endpoint status checks.
	EndpointPollAttempts uint `mapstructure:"endpoint_poll_attempts"`

	// SageMakerRoleARN is the execution role of provisioned models. Missing endpoints are
	// provisioned only when it is set.
	SageMakerRoleARN string `mapstructure:"sagemaker_role_arn"`

	// HuggingFaceImageURI overrides the serving image of provisioned Hugging Face models.
	HuggingFaceImageURI string `mapstructure:"huggingface_image_uri"`

	// GuardrailSource selects where guardrails are listed from: GuardrailSourceStatic or
	// GuardrailSourceBedrock.
	GuardrailSource string `mapstructure:"guardrail_source"`

	// Guardrails are the guardrail identifiers served by the static source.
	Guardrails []string `mapstructure:"guardrails"`
}

// Guardrail sources.
const (
	GuardrailSourceStatic  = "static"
	GuardrailSourceBedrock = "bedrock"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		AWSRegion:            "us-east-1",
		ExperimentTable:      "experiments",
		HTTPAddr:             ":8080",
		LogLevel:             "info",
		LogFormat:            "json",
		RequestTimeout:       60 * time.Second,
		EndpointPollInterval: 5 * time.Second,
		EndpointPollAttempts: 120,
		GuardrailSource:      GuardrailSourceStatic,
	}
}

// SetDefaults registers the values of [Default] on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("aws_region", d.AWSRegion)
	v.SetDefault("aws_endpoint", d.AWSEndpoint)
	v.SetDefault("experiment_table", d.ExperimentTable)
	v.SetDefault("http_addr", d.HTTPAddr)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("endpoint_poll_interval", d.EndpointPollInterval)
	v.SetDefault("endpoint_poll_attempts", d.EndpointPollAttempts)
	v.SetDefault("sagemaker_role_arn", d.SageMakerRoleARN)
	v.SetDefault("huggingface_image_uri", d.HuggingFaceImageURI)
	v.SetDefault("guardrail_source", d.GuardrailSource)
	v.SetDefault("guardrails", d.Guardrails)
}

// Load reads the configuration from v.
//
// Environment variables use the [EnvPrefix] prefix, e.g. RAGROUTE_AWS_REGION. When v has a
// config file set, the file is read first and environment variables take precedence.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports whether c is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.AWSRegion == "" {
		errs = append(errs, errors.New("aws_region is required"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	if c.EndpointPollInterval < 0 {
		errs = append(errs, errors.New("endpoint_poll_interval must not be negative"))
	}
	switch c.GuardrailSource {
	case GuardrailSourceStatic, GuardrailSourceBedrock:
	default:
		errs = append(errs, fmt.Errorf("guardrail_source must be %q or %q, got %q", GuardrailSourceStatic, GuardrailSourceBedrock, c.GuardrailSource))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// AWS loads the AWS SDK configuration for region, falling back to [Config.AWSRegion].
func (c *Config) AWS(ctx context.Context, region string) (aws.Config, error) {
	if region == "" {
		region = c.AWSRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if c.AWSEndpoint != "" {
		awsCfg.BaseEndpoint = aws.String(c.AWSEndpoint)
	}
	return awsCfg, nil
}
