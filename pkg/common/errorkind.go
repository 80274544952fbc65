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

package common

import (
	"fmt"
)

// ErrorKind classifies the first failure that aborted an issue count resolution.
type ErrorKind int

// .....
const (
	ErrorKindMalformedJSON            ErrorKind = iota
	ErrorKindMissingVersionField      ErrorKind = iota
	ErrorKindUnsupportedSchemaVersion ErrorKind = iota
	ErrorKindSchemaViolation          ErrorKind = iota
	ErrorKindMissingIssueAPIURL       ErrorKind = iota
	ErrorKindJobLookupFailure         ErrorKind = iota
	ErrorKindPollCancelled            ErrorKind = iota
	ErrorKindIssueQueryFailure        ErrorKind = iota
)

// String .....
func (kind ErrorKind) String() string {
	switch kind {
	case ErrorKindMalformedJSON:
		return "MalformedJson"
	case ErrorKindMissingVersionField:
		return "MissingVersionField"
	case ErrorKindUnsupportedSchemaVersion:
		return "UnsupportedSchemaVersion"
	case ErrorKindSchemaViolation:
		return "SchemaViolation"
	case ErrorKindMissingIssueAPIURL:
		return "MissingIssueApiUrl"
	case ErrorKindJobLookupFailure:
		return "JobLookupFailure"
	case ErrorKindPollCancelled:
		return "PollCancelled"
	case ErrorKindIssueQueryFailure:
		return "IssueQueryFailure"
	}
	panic(fmt.Errorf("invalid ErrorKind value: %d", kind))
}

// MarshalText .....
func (kind ErrorKind) MarshalText() (text []byte, err error) {
	return []byte(kind.String()), nil
}

// IsManifestProblem reports whether the failure is attributable to the
// contents of cli-scan.json rather than to the Polaris services.
func (kind ErrorKind) IsManifestProblem() bool {
	switch kind {
	case ErrorKindMalformedJSON, ErrorKindMissingVersionField, ErrorKindUnsupportedSchemaVersion, ErrorKindSchemaViolation, ErrorKindMissingIssueAPIURL:
		return true
	}
	return false
}
