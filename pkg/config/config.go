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

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// PolarisConfig locates and authenticates against the Polaris server.
type PolarisConfig struct {
	ServerURL                          string
	AccessTokenEnvironmentVariableName string
}

// Timings ...
type Timings struct {
	ClientTimeoutMilliseconds int
	JobPollWaitMilliseconds   int
	ResolveTimeoutSeconds     int
}

// ClientTimeout ...
func (t *Timings) ClientTimeout() time.Duration {
	return time.Duration(t.ClientTimeoutMilliseconds) * time.Millisecond
}

// JobPollWait ...
func (t *Timings) JobPollWait() time.Duration {
	return time.Duration(t.JobPollWaitMilliseconds) * time.Millisecond
}

// ResolveTimeout is zero when a resolution may wait forever.
func (t *Timings) ResolveTimeout() time.Duration {
	return time.Duration(t.ResolveTimeoutSeconds) * time.Second
}

// ServerConfig ...
type ServerConfig struct {
	Port int
}

// Config ...
type Config struct {
	Polaris  *PolarisConfig
	Timings  *Timings
	Server   *ServerConfig
	LogLevel string
}

// AccessToken reads the token from the environment variable named by
// Polaris.AccessTokenEnvironmentVariableName.
func (config *Config) AccessToken() (string, bool) {
	name := config.Polaris.AccessTokenEnvironmentVariableName
	if name == "" {
		return "", false
	}
	token, ok := os.LookupEnv(name)
	if !ok || token == "" {
		log.Debugf("access token environment variable %s is not set", name)
		return "", false
	}
	return token, true
}

// GetLogLevel .....
func (config *Config) GetLogLevel() (log.Level, error) {
	return log.ParseLevel(config.LogLevel)
}

// Validate .....
func (config *Config) Validate() error {
	if config.Polaris == nil || config.Timings == nil || config.Server == nil {
		return fmt.Errorf("incomplete config: %+v", config)
	}
	if _, err := config.GetLogLevel(); err != nil {
		return err
	}
	if config.Timings.ClientTimeoutMilliseconds <= 0 {
		return fmt.Errorf("invalid client timeout %dms: must be positive", config.Timings.ClientTimeoutMilliseconds)
	}
	if config.Timings.JobPollWaitMilliseconds <= 0 {
		return fmt.Errorf("invalid job poll wait %dms: must be positive", config.Timings.JobPollWaitMilliseconds)
	}
	if config.Timings.ResolveTimeoutSeconds < 0 {
		return fmt.Errorf("invalid resolve timeout %ds: must not be negative", config.Timings.ResolveTimeoutSeconds)
	}
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", config.Server.Port)
	}
	return nil
}

func (config *Config) dump() (string, error) {
	bytes, err := json.Marshal(config)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
