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
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/juju/errors"
)

// ResponseVersion is the canonical major.minor schema version of a
// cli-scan.json.  Patch levels are backward compatible and dropped.
type ResponseVersion struct {
	Major uint64
	Minor uint64
}

// ParseResponseVersion accepts "1", "1.0", "1.0.3" and "v1.0" style strings.
func ParseResponseVersion(versionString string) (ResponseVersion, *semver.Version, error) {
	trimmed := strings.TrimSpace(versionString)
	if trimmed == "" {
		return ResponseVersion{}, nil, fmt.Errorf("empty version string")
	}
	version, err := semver.NewVersion(trimmed)
	if err != nil {
		return ResponseVersion{}, nil, errors.Annotatef(err, "unable to parse version %q", versionString)
	}
	return ResponseVersion{Major: version.Major(), Minor: version.Minor()}, version, nil
}

func (version ResponseVersion) String() string {
	return fmt.Sprintf("%d.%d", version.Major, version.Minor)
}

// MarshalText .....
func (version ResponseVersion) MarshalText() (text []byte, err error) {
	return []byte(version.String()), nil
}
