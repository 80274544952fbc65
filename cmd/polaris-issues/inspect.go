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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/cli"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var projectRoot string
	cmd := &cobra.Command{
		Use:   "inspect [cli-scan.json]",
		Short: "Describe a cli-scan.json without contacting Polaris",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := loadConfig(); err != nil {
				return err
			}
			path := cli.DefaultPath(projectRoot)
			if len(args) == 1 {
				path = args[0]
			}
			manifest, err := cli.ParseFile(path)
			if err != nil {
				return err
			}
			renderManifest(cmd.OutOrStdout(), path, manifest)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRoot, "project-root", ".", "directory the Polaris CLI was run in")
	return cmd
}

func renderManifest(w io.Writer, source string, manifest *cli.ScanManifest) {
	fmt.Fprintf(w, "Manifest:       %s\n", source)
	fmt.Fprintf(w, "Schema version: %s (%s)\n", manifest.VersionString, manifest.Version)
	if manifest.ProjectInfo != nil {
		fmt.Fprintf(w, "Project:        %s (branch %s)\n", valueOrDash(manifest.ProjectInfo.ProjectName), valueOrDash(manifest.ProjectInfo.BranchName))
	}
	if manifest.ScanInfo != nil {
		fmt.Fprintf(w, "CLI version:    %s\n", valueOrDash(manifest.ScanInfo.CliVersion))
	}
	if total, ok := manifest.TotalIssueCount(); ok {
		fmt.Fprintf(w, "Total issues:   %d\n", total)
	} else if url, ok := manifest.IssueAPIURL(); ok {
		fmt.Fprintf(w, "Total issues:   not precomputed, query %s\n", url)
	} else {
		fmt.Fprintln(w, "Total issues:   unavailable")
	}

	names := manifest.ToolNames()
	if len(names) == 0 {
		fmt.Fprintln(w, "Tools:          none")
		return
	}
	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tool", "Version", "Job ID", "Job Status", "Job Status URL"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, name := range names {
		tool := manifest.Tools[name]
		table.Append([]string{
			name,
			valueOrDash(tool.ToolVersion),
			valueOrDash(tool.JobID),
			valueOrDash(tool.JobStatus),
			valueOrDash(tool.JobStatusURL),
		})
	}
	table.Render()
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
