// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
)

const (
	defaultSecretFile      = "clientsecret.json"
	defaultPort            = 3030
	defaultShutdownTimeout = 25 * time.Second
)

// serviceConfig holds the process level settings. Drive client and NATS settings are
// read from the environment by their own packages.
type serviceConfig struct {
	DriveIDs        []string      `yaml:"drive_ids"`
	SecretFile      string        `yaml:"secret_file"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		SecretFile:      defaultSecretFile,
		Host:            "*",
		Port:            defaultPort,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// loadConfig layers the optional YAML file, the environment, flags and positional drive ids,
// in that order, then validates the result
func loadConfig(args []string, stderr io.Writer) (serviceConfig, error) {
	cfg := defaultServiceConfig()

	fs := flag.NewFlagSet(constants.ServiceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <drive-id> [drive-id...]\n", constants.ServiceName)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Path to an optional YAML configuration file")
	secretFile := fs.String("secret", defaultSecretFile, "Path to the Google service account key")
	port := fs.Int("p", defaultPort, "Port to listen on")
	host := fs.String("host", "*", "Host to listen on, * for all interfaces")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return serviceConfig{}, err
	}

	if *configPath != "" {
		if err := cfg.loadFile(*configPath); err != nil {
			return serviceConfig{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return serviceConfig{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "secret":
			cfg.SecretFile = *secretFile
		case "p":
			cfg.Port = *port
		case "host":
			cfg.Host = *host
		}
	})

	if len(positional) > 0 {
		cfg.DriveIDs = positional
	}

	if err := cfg.validate(); err != nil {
		return serviceConfig{}, err
	}

	return cfg, nil
}

// parseInterspersed parses flags placed before, between or after the positional
// drive ids. Everything after a "--" terminator is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string

	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}

		rest := fs.Args()
		consumed := len(args) - len(rest)
		if consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}

		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func (c *serviceConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *serviceConfig) applyEnv() error {
	if ids := os.Getenv(constants.EnvDriveIDs); ids != "" {
		c.DriveIDs = strings.Split(ids, ",")
	}

	if secretFile := os.Getenv(constants.EnvSecretFile); secretFile != "" {
		c.SecretFile = secretFile
	}

	if portStr := os.Getenv(constants.EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", constants.EnvPort, portStr, err)
		}
		c.Port = port
	}

	return nil
}

func (c *serviceConfig) validate() error {
	var ids []string
	for _, id := range c.DriveIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("at least one drive id is required")
	}
	c.DriveIDs = ids

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}

	f, err := os.Open(c.SecretFile)
	if err != nil {
		return fmt.Errorf("service account key is not readable: %w", err)
	}
	_ = f.Close()

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}

	return nil
}

// addr returns the listen address; "*" binds every interface
func (c serviceConfig) addr() string {
	host := c.Host
	if host == "*" {
		host = ""
	}
	return fmt.Sprintf("%s:%d", host, c.Port)
}
