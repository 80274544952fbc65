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
	"sort"
	"strings"
)

// ScanManifest is the version-independent view of a cli-scan.json.
// Optional sections are nil when the CLI did not write them.
type ScanManifest struct {
	Version       ResponseVersion
	VersionString string
	IssueSummary  *IssueSummary
	ScanInfo      *ScanInfo
	ProjectInfo   *ProjectInfo
	Tools         map[string]ToolInfo
}

// IssueSummary is only written when the CLI was run with -w.
type IssueSummary struct {
	TotalIssueCount  int            `json:"totalIssueCount"`
	IssuesBySeverity map[string]int `json:"issuesBySeverity,omitempty"`
	SummaryURL       string         `json:"summaryUrl,omitempty"`
}

// ScanInfo .....
type ScanInfo struct {
	CliVersion  string `json:"cliVersion,omitempty"`
	ScanTime    string `json:"scanTime,omitempty"`
	IssueAPIURL string `json:"issueApiUrl,omitempty"`
}

// ProjectInfo .....
type ProjectInfo struct {
	ProjectName string `json:"projectName,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	BranchName  string `json:"branchName,omitempty"`
	BranchID    string `json:"branchId,omitempty"`
}

// ToolInfo describes one analysis engine's background job.
type ToolInfo struct {
	ToolName     string `json:"toolName,omitempty"`
	ToolVersion  string `json:"toolVersion,omitempty"`
	JobID        string `json:"jobId,omitempty"`
	JobStatusURL string `json:"jobStatusUrl,omitempty"`
	JobStatus    string `json:"jobStatus,omitempty"`
	IssueAPIURL  string `json:"issueApiUrl,omitempty"`
}

// TotalIssueCount returns the precomputed total, if the CLI wrote one.
func (manifest *ScanManifest) TotalIssueCount() (int, bool) {
	if manifest.IssueSummary == nil {
		return 0, false
	}
	return manifest.IssueSummary.TotalIssueCount, true
}

// IssueAPIURL returns scanInfo.issueApiUrl; blank values count as absent.
func (manifest *ScanManifest) IssueAPIURL() (string, bool) {
	if manifest.ScanInfo == nil {
		return "", false
	}
	url := strings.TrimSpace(manifest.ScanInfo.IssueAPIURL)
	if url == "" {
		return "", false
	}
	return url, true
}

// ToolNames returns the reporting tools sorted by name.
func (manifest *ScanManifest) ToolNames() []string {
	names := make([]string, 0, len(manifest.Tools))
	for name := range manifest.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JobStatusURLs collects every non-blank job status url, ordered by tool name.
func (manifest *ScanManifest) JobStatusURLs() []string {
	urls := []string{}
	for _, name := range manifest.ToolNames() {
		url := strings.TrimSpace(manifest.Tools[name].JobStatusURL)
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
