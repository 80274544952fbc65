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
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
)

// Strategy binds a generic cli-scan.json object of one schema line into a
// ScanManifest.  Implementations must be stateless.
type Strategy interface {
	Name() string
	Bind(document map[string]json.RawMessage) (*ScanManifest, error)
}

type registration struct {
	constraintString string
	constraint       *semver.Constraints
	strategy         Strategy
}

// registry is populated once at init and only read afterwards.
var registry = []registration{
	mustRegister("~1.0", &v1Strategy{}),
	mustRegister("~2.0", &v2Strategy{}),
}

func mustRegister(constraintString string, strategy Strategy) registration {
	constraint, err := semver.NewConstraint(constraintString)
	if err != nil {
		panic(fmt.Errorf("invalid constraint %s for strategy %s: %s", constraintString, strategy.Name(), err.Error()))
	}
	return registration{constraintString: constraintString, constraint: constraint, strategy: strategy}
}

// ResolveStrategy finds the strategy registered for versionString.
func ResolveStrategy(versionString string) (Strategy, ResponseVersion, error) {
	responseVersion, version, err := ParseResponseVersion(versionString)
	if err != nil {
		return nil, ResponseVersion{}, common.NewError(common.ErrorKindUnsupportedSchemaVersion, err, "Version %s is not a valid version of cli-scan.json", versionString)
	}
	for _, r := range registry {
		if r.constraint.Check(version) {
			return r.strategy, responseVersion, nil
		}
	}
	return nil, ResponseVersion{}, common.NewError(common.ErrorKindUnsupportedSchemaVersion, nil, "Version %s is not a valid version of cli-scan.json", versionString)
}

// SupportedVersions lists the registered version ranges.
func SupportedVersions() []string {
	versions := make([]string, 0, len(registry))
	for _, r := range registry {
		versions = append(versions, r.constraintString)
	}
	return versions
}
