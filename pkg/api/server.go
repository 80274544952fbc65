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
	"io"
	"net/http"

	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
	log "github.com/sirupsen/logrus"
)

var maxManifestBytes int64 = 16 << 20

// NewServeMux routes /metrics, /stackdump and /issuecount.
func NewServeMux(responder Responder) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/stackdump", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeJSON(w, "/stackdump", http.StatusMethodNotAllowed, &ErrorResponse{Kind: "MethodNotAllowed", Message: r.Method + " is not supported"})
			return
		}
		log.Debugf("http request: GET stackdump")
		writeJSON(w, "/stackdump", http.StatusOK, NewStackDump())
	})
	mux.HandleFunc("/issuecount", func(w http.ResponseWriter, r *http.Request) {
		// POST /issuecount
		//
		// body: the contents of a cli-scan.json
		// responses:
		//   200: IssueCount
		//   400: ErrorResponse, the manifest could not be used
		//   413: ErrorResponse, the body is larger than maxManifestBytes
		//   502: ErrorResponse, Polaris could not be reached or answered badly
		//   503: ErrorResponse, the request was cancelled while polling
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, "/issuecount", http.StatusMethodNotAllowed, &ErrorResponse{Kind: "MethodNotAllowed", Message: r.Method + " is not supported"})
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxManifestBytes))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Infof("rejecting issuecount POST larger than %d bytes", tooLarge.Limit)
			writeJSON(w, "/issuecount", http.StatusRequestEntityTooLarge, &ErrorResponse{Kind: "RequestTooLarge", Message: fmt.Sprintf("cli-scan.json must not exceed %d bytes", tooLarge.Limit)})
			return
		}
		if err != nil {
			log.Errorf("unable to read body for issuecount POST: %s", err.Error())
			writeJSON(w, "/issuecount", http.StatusBadRequest, &ErrorResponse{Kind: "BadRequest", Message: err.Error()})
			return
		}
		count, err := responder.Resolve(r.Context(), body)
		if err != nil {
			status := statusCode(err)
			log.Infof("issuecount POST failed with %d: %s", status, err.Error())
			writeJSON(w, "/issuecount", status, NewErrorResponse(err))
			return
		}
		writeJSON(w, "/issuecount", http.StatusOK, &IssueCount{TotalIssueCount: count})
	})
	return mux
}

func statusCode(err error) int {
	kind, ok := common.KindOf(err)
	switch {
	case !ok:
		return http.StatusInternalServerError
	case kind.IsManifestProblem():
		return http.StatusBadRequest
	case kind == common.ErrorKindPollCancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, path string, statusCode int, body interface{}) {
	recordHTTPResult(path, statusCode)
	jsonBytes, err := json.Marshal(body)
	if err != nil {
		log.Errorf("unable to serialize response for %s: %s", path, err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonBytes); err != nil {
		log.Errorf("unable to write response for %s: %s", path, err.Error())
	}
}
