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
	"net/http"
	"time"

	"github.com/juju/errors"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/api"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/config"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/resolver"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// timeoutResponder bounds every resolution by the configured resolve timeout.
type timeoutResponder struct {
	resolver *resolver.Resolver
	timeout  time.Duration
}

func (tr *timeoutResponder) Resolve(ctx context.Context, rawManifest []byte) (int, error) {
	if tr.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tr.timeout)
		defer cancel()
	}
	return tr.resolver.Resolve(ctx, rawManifest)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve issue counts and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, conf, err := loadConfig()
			if err != nil {
				return err
			}
			r, err := newResolver(conf)
			if err != nil {
				return err
			}
			cm.StartWatch(func(newConf *config.Config, err error) {
				if err != nil {
					log.Errorf("ignoring config change: %s", err.Error())
					return
				}
				if logLevel != "" {
					return
				}
				if err := applyLogLevel(newConf); err != nil {
					log.Errorf("ignoring config change: %s", err.Error())
				}
			})

			ctx, stop := signalContext(0)
			defer stop()

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", conf.Server.Port),
				Handler: api.NewServeMux(&timeoutResponder{resolver: r, timeout: conf.Timings.ResolveTimeout()}),
			}
			errs := make(chan error, 1)
			go func() {
				log.Infof("serving issue counts on %s", server.Addr)
				errs <- server.ListenAndServe()
			}()

			select {
			case err := <-errs:
				return errors.Annotate(err, "http server stopped")
			case <-ctx.Done():
				log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}
}
