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
	fsnotify "github.com/fsnotify/fsnotify"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var environmentBindings = []struct {
	key          string
	env          string
	defaultValue interface{}
}{
	{"Polaris.ServerURL", "POLARIS_SERVER_URL", ""},
	{"Polaris.AccessTokenEnvironmentVariableName", "POLARIS_ACCESS_TOKEN_ENV_VAR", "POLARIS_ACCESS_TOKEN"},
	{"Timings.ClientTimeoutMilliseconds", "POLARIS_TIMEOUT_MILLISECONDS", 120000},
	{"Timings.JobPollWaitMilliseconds", "POLARIS_JOB_POLL_WAIT_MILLISECONDS", 500},
	{"Timings.ResolveTimeoutSeconds", "POLARIS_RESOLVE_TIMEOUT_SECONDS", 0},
	{"Server.Port", "POLARIS_ISSUES_PORT", 3000},
	{"LogLevel", "POLARIS_LOG_LEVEL", "info"},
}

// ConfigManager handles:
//   - getting initial config
//   - reporting ongoing changes to config
type ConfigManager struct {
	ConfigPath string
	viper      *viper.Viper
}

// NewConfigManager reads from configPath, if it isn't empty, and from the
// POLARIS_* environment variables.
func NewConfigManager(configPath string) *ConfigManager {
	v := viper.New()
	for _, binding := range environmentBindings {
		v.SetDefault(binding.key, binding.defaultValue)
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			log.Errorf("unable to bind %s to %s: %s", binding.key, binding.env, err.Error())
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	return &ConfigManager{ConfigPath: configPath, viper: v}
}

// GetConfig returns a validated configuration.
func (cm *ConfigManager) GetConfig() (*Config, error) {
	var config *Config

	if cm.ConfigPath != "" {
		if err := cm.viper.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "failed to read config file %s", cm.ConfigPath)
		}
	}

	if err := cm.viper.Unmarshal(&config); err != nil {
		return nil, errors.Annotate(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Annotate(err, "invalid config")
	}

	if dump, err := config.dump(); err == nil {
		log.Debugf("config: %s", dump)
	}
	return config, nil
}

// StartWatch will call `continuation` whenever the config file changes.  It
// does nothing without a config file.
func (cm *ConfigManager) StartWatch(continuation func(*Config, error)) {
	if cm.ConfigPath == "" {
		return
	}
	cm.viper.OnConfigChange(func(event fsnotify.Event) {
		log.Infof("config change detected: %+v", event)
		continuation(cm.GetConfig())
	})
	cm.viper.WatchConfig()
}
