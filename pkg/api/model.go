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

import "github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"

// IssueCount is the body of a successful /issuecount response.
type IssueCount struct {
	TotalIssueCount int `json:"totalIssueCount"`
}

// ErrorResponse is the body of a failed /issuecount response.
type ErrorResponse struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	FieldPath string `json:"fieldPath,omitempty"`
}

// NewErrorResponse .....
func NewErrorResponse(err error) *ErrorResponse {
	domainErr, ok := common.AsError(err)
	if !ok {
		return &ErrorResponse{Kind: "InternalError", Message: err.Error()}
	}
	return &ErrorResponse{Kind: domainErr.Kind.String(), Message: domainErr.Message, FieldPath: domainErr.FieldPath}
}
