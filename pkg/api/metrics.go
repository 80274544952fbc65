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

package api

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var httpResults *prometheus.CounterVec

func recordHTTPResult(path string, statusCode int) {
	httpResults.With(prometheus.Labels{"path": path, "code": fmt.Sprintf("%d", statusCode)}).Inc()
}

func init() {
	httpResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "polaris",
		Subsystem:   "issues",
		Name:        "http_responses",
		Help:        "status codes of responses served by the issue count api",
		ConstLabels: map[string]string{},
	}, []string{"path", "code"})
	prometheus.MustRegister(httpResults)
}
