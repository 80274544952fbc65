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

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/juju/errors"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
)

func post(handler http.Handler, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/issuecount", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeError(recorder *httptest.ResponseRecorder) ErrorResponse {
	var response ErrorResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(BeNil())
	return response
}

func RunServerTests() {
	Describe("issuecount", func() {
		var responder *mockResponder
		var handler http.Handler

		BeforeEach(func() {
			responder = &mockResponder{}
			handler = NewServeMux(responder)
		})

		It("should return the resolved count", func() {
			responder.count = 42
			recorder := post(handler, `{"version":"1.0","issueSummary":{"totalIssueCount":42}}`)
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("application/json"))
			var response IssueCount
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(BeNil())
			Expect(response.TotalIssueCount).To(Equal(42))
			Expect(responder.manifests).To(Equal([]string{`{"version":"1.0","issueSummary":{"totalIssueCount":42}}`}))
		})

		It("should reject a manifest over the size limit instead of truncating it", func() {
			defaultLimit := maxManifestBytes
			maxManifestBytes = 16
			defer func() { maxManifestBytes = defaultLimit }()
			recorder := post(handler, `{"version":"1.0","issueSummary":{"totalIssueCount":42}}`)
			Expect(recorder.Code).To(Equal(http.StatusRequestEntityTooLarge))
			response := decodeError(recorder)
			Expect(response.Kind).To(Equal("RequestTooLarge"))
			Expect(response.Message).To(ContainSubstring("16 bytes"))
			Expect(responder.manifests).To(BeEmpty())
		})

		It("should accept a manifest exactly at the size limit", func() {
			body := `{"version":"1.0"}`
			defaultLimit := maxManifestBytes
			maxManifestBytes = int64(len(body))
			defer func() { maxManifestBytes = defaultLimit }()
			recorder := post(handler, body)
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(responder.manifests).To(Equal([]string{body}))
		})

		It("should reject other methods", func() {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/issuecount", nil))
			Expect(recorder.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(recorder.Header().Get("Allow")).To(Equal(http.MethodPost))
			Expect(responder.manifests).To(BeEmpty())
		})

		It("should map manifest problems to 400", func() {
			responder.err = common.NewSchemaViolation("issueSummary.totalIssueCount", nil, "unexpected value in issueSummary")
			recorder := post(handler, `{}`)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			response := decodeError(recorder)
			Expect(response.Kind).To(Equal("SchemaViolation"))
			Expect(response.FieldPath).To(Equal("issueSummary.totalIssueCount"))
		})

		It("should surface the missing issue api url guidance unmodified", func() {
			message := "Synopsys Polaris cannot find the total issue count or issue api url in the cli-scan.json. Please ensure that you are using a supported version of the Polaris CLI."
			responder.err = errors.Annotate(common.NewError(common.ErrorKindMissingIssueAPIURL, nil, "%s", message), "resolving")
			recorder := post(handler, `{"version":"1.0"}`)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			response := decodeError(recorder)
			Expect(response.Kind).To(Equal("MissingIssueApiUrl"))
			Expect(response.Message).To(Equal(message))
		})

		It("should map upstream failures to 502", func() {
			for _, kind := range []common.ErrorKind{common.ErrorKindJobLookupFailure, common.ErrorKindIssueQueryFailure} {
				responder.err = common.NewError(kind, fmt.Errorf("connection refused"), "upstream")
				recorder := post(handler, `{}`)
				Expect(recorder.Code).To(Equal(http.StatusBadGateway))
				Expect(decodeError(recorder).Kind).To(Equal(kind.String()))
			}
		})

		It("should map cancellation to 503", func() {
			responder.err = common.NewError(common.ErrorKindPollCancelled, nil, "polling was cancelled")
			recorder := post(handler, `{}`)
			Expect(recorder.Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("should map unknown errors to 500", func() {
			responder.err = fmt.Errorf("boom")
			recorder := post(handler, `{}`)
			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(decodeError(recorder).Kind).To(Equal("InternalError"))
		})
	})

	Describe("stackdump", func() {
		It("should list the running goroutines", func() {
			handler := NewServeMux(&mockResponder{})
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stackdump", nil))
			Expect(recorder.Code).To(Equal(http.StatusOK))
			var dump StackDump
			Expect(json.Unmarshal(recorder.Body.Bytes(), &dump)).To(BeNil())
			Expect(dump.GoroutineCount).To(BeNumerically(">", 0))
			Expect(dump.Runtime).To(ContainSubstring("goroutine"))
		})

		It("should only allow GET", func() {
			handler := NewServeMux(&mockResponder{})
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/stackdump", nil))
			Expect(recorder.Code).To(Equal(http.StatusMethodNotAllowed))
		})
	})

	Describe("metrics", func() {
		It("should serve prometheus metrics", func() {
			handler := NewServeMux(&mockResponder{count: 1})
			post(handler, `{}`)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring("polaris_issues_http_responses"))
		})
	})
}
