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
	"fmt"
	"time"

	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/cli"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	var projectRoot string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "count [cli-scan.json]",
		Short: "Print the total issue count of a scan",
		Long: `Print the total issue count of a scan.  Without an argument the manifest is
read from .synopsys/polaris/cli-scan.json under --project-root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, conf, err := loadConfig()
			if err != nil {
				return err
			}
			path := cli.DefaultPath(projectRoot)
			if len(args) == 1 {
				path = args[0]
			}
			if timeout <= 0 {
				timeout = conf.Timings.ResolveTimeout()
			}
			r, err := newResolver(conf)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(timeout)
			defer cancel()

			log.Debugf("resolving the total issue count of %s", path)
			count, err := r.ResolveFile(ctx, path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRoot, "project-root", ".", "directory the Polaris CLI was run in")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 uses the configured resolve timeout, which defaults to none)")
	return cmd
}
