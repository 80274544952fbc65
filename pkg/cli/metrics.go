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

package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
)

var manifestParses *prometheus.CounterVec

func recordManifestParse(version string, outcome string) {
	manifestParses.With(prometheus.Labels{"version": version, "outcome": outcome}).Inc()
}

func recordManifestParseError(version string, err error) {
	outcome := "error"
	if kind, ok := common.KindOf(err); ok {
		outcome = kind.String()
	}
	recordManifestParse(version, outcome)
}

func init() {
	manifestParses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "polaris",
		Subsystem:   "cli",
		Name:        "manifest_parses",
		Help:        "counts cli-scan.json parses by schema version and outcome",
		ConstLabels: map[string]string{},
	}, []string{"version", "outcome"})
	prometheus.MustRegister(manifestParses)
}
