/*
Copyright (C) 2018 Synopsys, Inc.

Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements. See the NOTICE file
distributed with this work for additional information
regarding copyright ownership. The ASF licenses this file
to you under the Apache License, Version 2.0 (the
"License"); you may not use this file except in compliance
with the License. You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
"AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied. See the License for the
specific language governing permissions and limitations
under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/errors"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/config"
	_ "github.com/sig-cpotts/synopsys-polaris-plugin/pkg/logging"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/poller"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/polaris"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/resolver"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polaris-issues",
		Short: "Resolve the total issue count of a Synopsys Polaris scan",
		Long: `polaris-issues reads the cli-scan.json written by the Polaris CLI and reports
the scan's total issue count, waiting for any background analysis jobs to
finish when the CLI did not precompute it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (yaml or json); POLARIS_* environment variables are always read")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides the configured log level")

	rootCmd.AddCommand(newCountCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func reportError(err error) {
	if domainErr, ok := common.AsError(err); ok {
		fmt.Fprintf(os.Stderr, "%s: %s\n", domainErr.Kind, domainErr.Message)
		log.Debugf("full error: %s", errors.ErrorStack(err))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

// loadConfig reads the config and applies its log level.
func loadConfig() (*config.ConfigManager, *config.Config, error) {
	cm := config.NewConfigManager(configPath)
	conf, err := cm.GetConfig()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		conf.LogLevel = logLevel
	}
	if err := applyLogLevel(conf); err != nil {
		return nil, nil, err
	}
	return cm, conf, nil
}

func applyLogLevel(conf *config.Config) error {
	level, err := conf.GetLogLevel()
	if err != nil {
		return errors.Annotatef(err, "invalid log level %s", conf.LogLevel)
	}
	log.SetLevel(level)
	return nil
}

func newResolver(conf *config.Config) (*resolver.Resolver, error) {
	token, _ := conf.AccessToken()
	client, err := polaris.NewClient(conf.Polaris.ServerURL, token, conf.Timings.ClientTimeout())
	if err != nil {
		return nil, err
	}
	jobPoller := poller.NewPoller(client, conf.Timings.JobPollWait())
	return resolver.NewResolver(jobPoller, client), nil
}

// signalContext is cancelled on SIGINT or SIGTERM, and after timeout when it
// is positive.
func signalContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	return timeoutCtx, func() {
		cancel()
		stop()
	}
}
