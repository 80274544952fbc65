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

// Package logging counts every logrus call by level.  Importing it for its
// side effects installs the hook on the standard logger.
package logging

import (
	"github.com/prometheus/client_golang/prometheus"
	logrus "github.com/sirupsen/logrus"
)

// MetricsHook is a logrus hook counting log entries by level.
type MetricsHook struct {
	vec *prometheus.CounterVec
}

// NewMetricsHook counts into vec, which must have a single "log_type" label.
func NewMetricsHook(vec *prometheus.CounterVec) *MetricsHook {
	return &MetricsHook{vec: vec}
}

// Levels .....
func (hook *MetricsHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.TraceLevel,
		logrus.DebugLevel,
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.InfoLevel,
		logrus.PanicLevel,
		logrus.WarnLevel,
	}
}

// Fire .....
func (hook *MetricsHook) Fire(entry *logrus.Entry) error {
	hook.vec.WithLabelValues(entry.Level.String()).Inc()
	return nil
}

func newLogCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "polaris",
			Subsystem: "issues",
			Name:      "log",
			Help:      "counts logrus calls by level",
		},
		[]string{"log_type"})
}

func init() {
	cv := newLogCounter()
	prometheus.MustRegister(cv)
	logrus.AddHook(NewMetricsHook(cv))
}
