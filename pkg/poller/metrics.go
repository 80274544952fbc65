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

package poller

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/polaris"
)

var pollAttempts *prometheus.CounterVec
var jobWaitTime *prometheus.HistogramVec
var pollOutcomes *prometheus.CounterVec

func recordPollAttempt(state polaris.JobState) {
	pollAttempts.With(prometheus.Labels{"state": string(state)}).Inc()
}

func recordPollError() {
	pollAttempts.With(prometheus.Labels{"state": "error"}).Inc()
}

func recordJobWaitTime(finalState PollState, duration time.Duration) {
	seconds := float64(duration) / float64(time.Second)
	jobWaitTime.With(prometheus.Labels{"result": finalState.String()}).Observe(seconds)
}

func recordPollOutcome(finalState PollState) {
	pollOutcomes.With(prometheus.Labels{"result": finalState.String()}).Inc()
}

func init() {
	pollAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "polaris",
		Subsystem:   "poller",
		Name:        "job_status_queries",
		Help:        "job status queries, labelled by the state the job was in",
		ConstLabels: map[string]string{},
	}, []string{"state"})
	prometheus.MustRegister(pollAttempts)

	jobWaitTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "polaris",
		Subsystem: "poller",
		Name:      "job_wait_time",
		Help:      "time in seconds spent waiting for a single job to leave a pending state",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 14),
	}, []string{"result"})
	prometheus.MustRegister(jobWaitTime)

	pollOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "polaris",
		Subsystem:   "poller",
		Name:        "jobs",
		Help:        "jobs polled, labelled by how polling ended",
		ConstLabels: map[string]string{},
	}, []string{"result"})
	prometheus.MustRegister(pollOutcomes)
}
