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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
)

// legacyToolSections maps the named per-tool sections written by 1.x CLIs to
// the tool name they are registered under.
var legacyToolSections = []struct {
	key      string
	toolName string
}{
	{"blackDuckScaToolInfo", "blackDuckSca"},
	{"coverityToolInfo", "coverity"},
}

type v1Strategy struct{}

func (s *v1Strategy) Name() string {
	return "v1"
}

func (s *v1Strategy) Bind(document map[string]json.RawMessage) (*ScanManifest, error) {
	manifest, err := bindCommonSections(document)
	if err != nil {
		return nil, err
	}
	for _, legacy := range legacyToolSections {
		var tool ToolInfo
		found, err := bindSection(document, legacy.key, &tool)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		if tool.ToolName == "" {
			tool.ToolName = legacy.toolName
		}
		if existing, ok := manifest.Tools[legacy.toolName]; ok {
			tool = fillBlankFields(existing, tool)
		}
		manifest.Tools[legacy.toolName] = tool
	}
	return manifest, nil
}

// fillBlankFields keeps every field toolJobInfo set and takes the rest from
// the legacy section, so a job status url written only there is still polled.
func fillBlankFields(primary ToolInfo, legacy ToolInfo) ToolInfo {
	fill := func(value *string, fallback string) {
		if strings.TrimSpace(*value) == "" {
			*value = fallback
		}
	}
	fill(&primary.ToolName, legacy.ToolName)
	fill(&primary.ToolVersion, legacy.ToolVersion)
	fill(&primary.JobID, legacy.JobID)
	fill(&primary.JobStatusURL, legacy.JobStatusURL)
	fill(&primary.JobStatus, legacy.JobStatus)
	fill(&primary.IssueAPIURL, legacy.IssueAPIURL)
	return primary
}

type v2Strategy struct{}

func (s *v2Strategy) Name() string {
	return "v2"
}

func (s *v2Strategy) Bind(document map[string]json.RawMessage) (*ScanManifest, error) {
	manifest, err := bindCommonSections(document)
	if err != nil {
		return nil, err
	}
	var rawTools []json.RawMessage
	found, err := bindSection(document, "tools", &rawTools)
	if err != nil {
		return nil, err
	}
	if !found {
		return manifest, nil
	}
	for i, rawTool := range rawTools {
		path := fmt.Sprintf("tools[%d]", i)
		if isNull(rawTool) {
			continue
		}
		var tool ToolInfo
		if err := json.Unmarshal(rawTool, &tool); err != nil {
			return nil, schemaViolation(path, err)
		}
		name := strings.TrimSpace(tool.ToolName)
		if name == "" {
			return nil, common.NewSchemaViolation(path+".toolName", nil, "tool entry has no toolName")
		}
		if _, ok := manifest.Tools[name]; ok {
			return nil, common.NewSchemaViolation(path+".toolName", nil, "tool %s is listed more than once", name)
		}
		manifest.Tools[name] = tool
	}
	return manifest, nil
}

// bindCommonSections handles the sections shared by every schema line.
func bindCommonSections(document map[string]json.RawMessage) (*ScanManifest, error) {
	manifest := &ScanManifest{Tools: map[string]ToolInfo{}}

	var issueSummary IssueSummary
	found, err := bindSection(document, "issueSummary", &issueSummary)
	if err != nil {
		return nil, err
	}
	if found {
		if issueSummary.TotalIssueCount < 0 {
			return nil, common.NewSchemaViolation("issueSummary.totalIssueCount", nil, "total issue count %d is negative", issueSummary.TotalIssueCount)
		}
		manifest.IssueSummary = &issueSummary
	}

	var scanInfo ScanInfo
	if found, err = bindSection(document, "scanInfo", &scanInfo); err != nil {
		return nil, err
	} else if found {
		manifest.ScanInfo = &scanInfo
	}

	var projectInfo ProjectInfo
	if found, err = bindSection(document, "projectInfo", &projectInfo); err != nil {
		return nil, err
	} else if found {
		manifest.ProjectInfo = &projectInfo
	}

	var rawToolJobInfo map[string]json.RawMessage
	if _, err = bindSection(document, "toolJobInfo", &rawToolJobInfo); err != nil {
		return nil, err
	}
	for name, rawTool := range rawToolJobInfo {
		if isNull(rawTool) {
			continue
		}
		var tool ToolInfo
		if err := json.Unmarshal(rawTool, &tool); err != nil {
			return nil, schemaViolation("toolJobInfo."+name, err)
		}
		if tool.ToolName == "" {
			tool.ToolName = name
		}
		manifest.Tools[name] = tool
	}

	return manifest, nil
}

// bindSection decodes document[key] into target.  Absent and null sections
// are reported as not found rather than as errors.
func bindSection(document map[string]json.RawMessage, key string, target interface{}) (bool, error) {
	raw, ok := document[key]
	if !ok || isNull(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, schemaViolation(key, err)
	}
	return true, nil
}

func schemaViolation(path string, err error) error {
	fieldPath := path
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fieldPath = path + "." + typeErr.Field
	}
	return common.NewSchemaViolation(fieldPath, err, "unexpected value in %s", path)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
