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

package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
)

var resolutions *prometheus.CounterVec

func recordResolution(outcome string) {
	resolutions.With(prometheus.Labels{"outcome": outcome}).Inc()
}

func recordResolutionError(err error) {
	outcome := "error"
	if kind, ok := common.KindOf(err); ok {
		outcome = kind.String()
	}
	recordResolution(outcome)
}

func init() {
	resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "polaris",
		Subsystem:   "resolver",
		Name:        "resolutions",
		Help:        "issue count resolutions, labelled by how the count was obtained or the kind of error",
		ConstLabels: map[string]string{},
	}, []string{"outcome"})
	prometheus.MustRegister(resolutions)
}
