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

package resolver

import (
	"context"
	"time"

	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/cli"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/polaris"
	log "github.com/sirupsen/logrus"
)

const (
	outcomeSummary = "issueSummary"
	outcomeQueried = "queried"
)

// IssueQueryService runs an issue count query.
type IssueQueryService interface {
	QueryCounts(url string) ([]polaris.CountRecord, error)
}

// JobPoller blocks until every job behind the given urls is no longer pending.
type JobPoller interface {
	AwaitCompletion(ctx context.Context, jobStatusURLs []string) error
}

// Resolver works out the total issue count of a Polaris scan.  A Resolver
// holds no per-resolution state; concurrent calls are safe as long as its
// collaborators are.
type Resolver struct {
	poller JobPoller
	issues IssueQueryService
}

// NewResolver .....
func NewResolver(poller JobPoller, issues IssueQueryService) *Resolver {
	return &Resolver{poller: poller, issues: issues}
}

// Resolve parses a cli-scan.json document and resolves its total issue count.
func (r *Resolver) Resolve(ctx context.Context, rawManifest []byte) (int, error) {
	manifest, err := cli.ParseBytes(rawManifest)
	if err != nil {
		recordResolutionError(err)
		return 0, err
	}
	return r.ResolveManifest(ctx, manifest)
}

// ResolveFile resolves the total issue count of the cli-scan.json at path.
func (r *Resolver) ResolveFile(ctx context.Context, path string) (int, error) {
	manifest, err := cli.ParseFile(path)
	if err != nil {
		recordResolutionError(err)
		return 0, err
	}
	return r.ResolveManifest(ctx, manifest)
}

// ResolveManifest returns the precomputed total when the manifest has one.
// Otherwise it waits for every reported job and sums the issue counts from
// the manifest's issue api url.
func (r *Resolver) ResolveManifest(ctx context.Context, manifest *cli.ScanManifest) (int, error) {
	count, err := r.resolveManifest(ctx, manifest)
	if err != nil {
		recordResolutionError(err)
		return 0, err
	}
	return count, nil
}

func (r *Resolver) resolveManifest(ctx context.Context, manifest *cli.ScanManifest) (int, error) {
	if total, ok := manifest.TotalIssueCount(); ok {
		log.Debugf("using total issue count %d from the issue summary", total)
		recordResolution(outcomeSummary)
		return total, nil
	}

	issueAPIURL, ok := manifest.IssueAPIURL()
	if !ok {
		return 0, common.NewError(common.ErrorKindMissingIssueAPIURL, nil, "Synopsys Polaris cannot find the total issue count or issue api url in the cli-scan.json. Please ensure that you are using a supported version of the Polaris CLI.")
	}

	jobStatusURLs := manifest.JobStatusURLs()
	log.Debugf("polling %d job(s) before querying %s", len(jobStatusURLs), issueAPIURL)
	if err := r.poller.AwaitCompletion(ctx, jobStatusURLs); err != nil {
		return 0, err
	}

	start := time.Now()
	records, err := r.issues.QueryCounts(issueAPIURL)
	if err != nil {
		return 0, common.NewError(common.ErrorKindIssueQueryFailure, err, "There was a problem getting the issue counts from %s", issueAPIURL)
	}
	total := polaris.SumCounts(records)
	log.Debugf("summed %d issue count record(s) to %d in %s", len(records), total, time.Since(start))
	recordResolution(outcomeQueried)
	return total, nil
}
