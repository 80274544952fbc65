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
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/cli"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/poller"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/polaris"
)

const scenarioB = `{
	"version": "1.0",
	"scanInfo": {"issueApiUrl": "https://x/issues"},
	"toolJobInfo": {"coverity": {"jobStatusUrl": "https://x/job/1"}}
}`

func expectKind(err error, kind common.ErrorKind) {
	Expect(err).NotTo(BeNil())
	actual, ok := common.KindOf(err)
	Expect(ok).To(BeTrue(), "expected a domain error but got %v", err)
	Expect(actual).To(Equal(kind))
}

func RunResolverTests() {
	Describe("Resolver", func() {
		var jobs *scriptedJobs
		var issues *scriptedIssues
		var sleeper *instantSleeper
		var resolver *Resolver

		BeforeEach(func() {
			jobs = &scriptedJobs{states: map[string][]polaris.JobState{}}
			issues = &scriptedIssues{}
			sleeper = &instantSleeper{}
			resolver = NewResolver(poller.NewPollerWithSleeper(jobs, poller.DefaultWaitQuantum, sleeper), issues)
		})

		It("should return the issue summary total without any network calls", func() {
			count, err := resolver.Resolve(context.Background(), []byte(`{"version":"1.0","issueSummary":{"totalIssueCount":42}}`))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(42))
			Expect(jobs.queries).To(BeEmpty())
			Expect(issues.queries).To(BeEmpty())
		})

		It("should prefer the issue summary over the issue api", func() {
			manifest := `{"version":"2.0","issueSummary":{"totalIssueCount":0},"scanInfo":{"issueApiUrl":"https://x/issues"},
				"tools":[{"toolName":"coverity","jobStatusUrl":"https://x/job/1"}]}`
			count, err := resolver.Resolve(context.Background(), []byte(manifest))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
			Expect(jobs.queries).To(BeEmpty())
			Expect(issues.queries).To(BeEmpty())
		})

		It("should poll until the job completes and then query the issue counts", func() {
			jobs.states["https://x/job/1"] = []polaris.JobState{polaris.JobStateRunning, polaris.JobStateCompleted}
			issues.records = []polaris.CountRecord{{Value: 7}}
			count, err := resolver.Resolve(context.Background(), []byte(scenarioB))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(7))
			Expect(jobs.queries).To(Equal([]string{"https://x/job/1", "https://x/job/1"}))
			Expect(issues.queries).To(Equal([]string{"https://x/issues"}))
		})

		It("should fail an unsupported version", func() {
			_, err := resolver.Resolve(context.Background(), []byte(`{"version":"9.9","issueSummary":{"totalIssueCount":1}}`))
			expectKind(err, common.ErrorKindUnsupportedSchemaVersion)
		})

		It("should stop when cancelled while a job is queued", func() {
			jobs.states["https://x/job/1"] = []polaris.JobState{polaris.JobStateQueued}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sleeper.onSleep = func() {
				if sleeper.sleeps == 2 {
					cancel()
				}
			}
			_, err := resolver.Resolve(ctx, []byte(scenarioB))
			expectKind(err, common.ErrorKindPollCancelled)
			Expect(jobs.queries).To(HaveLen(2))
			Expect(issues.queries).To(BeEmpty())
		})

		It("should require an issue api url without an issue summary", func() {
			for _, manifest := range []string{
				`{"version":"1.0"}`,
				`{"version":"1.0","scanInfo":{}}`,
				`{"version":"1.0","scanInfo":{"issueApiUrl":""}}`,
				`{"version":"1.0","scanInfo":{"issueApiUrl":"   "}}`,
				`{"version":"1.0","scanInfo":null,"toolJobInfo":{"coverity":{"jobStatusUrl":"https://x/job/1"}}}`,
			} {
				_, err := resolver.Resolve(context.Background(), []byte(manifest))
				expectKind(err, common.ErrorKindMissingIssueAPIURL)
				Expect(err.Error()).To(ContainSubstring("Please ensure that you are using a supported version of the Polaris CLI"))
			}
			Expect(jobs.queries).To(BeEmpty())
			Expect(issues.queries).To(BeEmpty())
		})

		It("should query directly when no tool reported a job", func() {
			issues.records = []polaris.CountRecord{{Value: 3}, {Value: 5}, {Value: 0}}
			count, err := resolver.Resolve(context.Background(), []byte(`{"version":"1.0","scanInfo":{"issueApiUrl":"https://x/issues"}}`))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(8))
			Expect(jobs.queries).To(BeEmpty())
		})

		It("should return zero for an empty count result", func() {
			issues.records = []polaris.CountRecord{}
			count, err := resolver.Resolve(context.Background(), []byte(`{"version":"1.0","scanInfo":{"issueApiUrl":"https://x/issues"}}`))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("should not clamp negative counts", func() {
			issues.records = []polaris.CountRecord{{Value: 2}, {Value: -5}}
			count, err := resolver.Resolve(context.Background(), []byte(`{"version":"1.0","scanInfo":{"issueApiUrl":"https://x/issues"}}`))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(-3))
		})

		It("should proceed to the count query after a failed job", func() {
			jobs.states["https://x/job/1"] = []polaris.JobState{polaris.JobStateDispatched, polaris.JobStateFailed}
			issues.records = []polaris.CountRecord{{Value: 1}}
			count, err := resolver.Resolve(context.Background(), []byte(scenarioB))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("should poll every tool's job in tool name order", func() {
			manifest := `{"version":"2.0","scanInfo":{"issueApiUrl":"https://x/issues"},"tools":[
				{"toolName":"sca","jobStatusUrl":"https://x/job/sca"},
				{"toolName":"coverity","jobStatusUrl":"https://x/job/cov"},
				{"toolName":"local"}]}`
			jobs.states["https://x/job/sca"] = []polaris.JobState{polaris.JobStateCompleted}
			jobs.states["https://x/job/cov"] = []polaris.JobState{polaris.JobStateCompleted}
			issues.records = []polaris.CountRecord{{Value: 4}}
			count, err := resolver.Resolve(context.Background(), []byte(manifest))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(4))
			Expect(jobs.queries).To(Equal([]string{"https://x/job/cov", "https://x/job/sca"}))
		})

		It("should fail with JobLookupFailure when a job cannot be found", func() {
			_, err := resolver.Resolve(context.Background(), []byte(scenarioB))
			expectKind(err, common.ErrorKindJobLookupFailure)
			Expect(issues.queries).To(BeEmpty())
		})

		It("should propagate poll errors unchanged", func() {
			pollErr := common.NewError(common.ErrorKindPollCancelled, nil, "stopped")
			resolver = NewResolver(&failingPoller{err: pollErr}, issues)
			_, err := resolver.Resolve(context.Background(), []byte(scenarioB))
			Expect(err).To(BeIdenticalTo(pollErr))
		})

		It("should fail with IssueQueryFailure when the query fails", func() {
			jobs.states["https://x/job/1"] = []polaris.JobState{polaris.JobStateCompleted}
			issues.err = fmt.Errorf("got a 500 response instead of a 200")
			_, err := resolver.Resolve(context.Background(), []byte(scenarioB))
			expectKind(err, common.ErrorKindIssueQueryFailure)
			Expect(err.Error()).To(ContainSubstring("got a 500 response"))
		})

		It("should pass parse errors through", func() {
			_, err := resolver.Resolve(context.Background(), []byte(`{"version":`))
			expectKind(err, common.ErrorKindMalformedJSON)
			_, err = resolver.Resolve(context.Background(), []byte(`{"issueSummary":{"totalIssueCount":1}}`))
			expectKind(err, common.ErrorKindMissingVersionField)
		})

		It("should resolve a manifest from the default location", func() {
			root, err := os.MkdirTemp("", "polaris-resolver")
			Expect(err).To(BeNil())
			defer os.RemoveAll(root)
			path := cli.DefaultPath(root)
			Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(BeNil())
			Expect(os.WriteFile(path, []byte(`{"version":"1.0.4","issueSummary":{"totalIssueCount":12}}`), 0644)).To(BeNil())
			count, err := resolver.ResolveFile(context.Background(), path)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(12))
		})

		It("should give the same answer for an already parsed manifest", func() {
			manifest, err := cli.ParseString(`{"version":"1.0","issueSummary":{"totalIssueCount":5}}`)
			Expect(err).To(BeNil())
			count, err := resolver.ResolveManifest(context.Background(), manifest)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(5))
		})
	})
}
