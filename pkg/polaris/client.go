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

package polaris

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blackducksoftware/hub-client-go/hubclient"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// Client reads job statuses and issue counts from a Polaris server.  It holds
// no per-resolution state and may be shared between goroutines.
type Client struct {
	hubClient *hubclient.Client
	baseURL   *url.URL
}

// NewClient authenticates every request with accessToken as a bearer token.
// baseURL may be empty when every url handed to the client is absolute.
func NewClient(baseURL string, accessToken string, timeout time.Duration) (*Client, error) {
	var base *url.URL
	if strings.TrimSpace(baseURL) != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.Annotatef(err, "invalid Polaris url %s", baseURL)
		}
		base = parsed
	}
	if accessToken == "" {
		log.Warnf("no Polaris access token configured, requests to %s will be unauthenticated", baseURL)
	}
	hubClient, err := hubclient.NewWithToken(baseURL, accessToken, hubclient.HubClientDebugTimings, timeout)
	if err != nil {
		return nil, errors.Annotate(err, "unable to instantiate Polaris http client")
	}
	return &Client{hubClient: hubClient, baseURL: base}, nil
}

// BaseURL .....
func (c *Client) BaseURL() string {
	return c.hubClient.BaseURL()
}

func (c *Client) resolve(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", errors.Annotatef(err, "invalid url %s", rawURL)
	}
	if parsed.IsAbs() {
		return parsed.String(), nil
	}
	if c.baseURL == nil {
		return "", fmt.Errorf("relative url %s cannot be resolved without a Polaris url", rawURL)
	}
	return c.baseURL.ResolveReference(parsed).String(), nil
}

func (c *Client) getJSON(name string, rawURL string, result interface{}) error {
	resolved, err := c.resolve(rawURL)
	if err != nil {
		return err
	}
	start := time.Now()
	err = c.hubClient.HttpGetJSON(resolved, result, http.StatusOK)
	recordAPIResponseTime(name, time.Since(start))
	recordAPIResponse(name, err == nil)
	if err != nil {
		log.Errorf("%s request to %s failed: %s", name, resolved, err.Error())
		return errors.Annotatef(err, "GET %s", resolved)
	}
	return nil
}

// FetchStatus fetches the current state of the job behind jobStatusURL.
func (c *Client) FetchStatus(jobStatusURL string) (*JobStatus, error) {
	var resource JobResource
	if err := c.getJSON("jobStatus", jobStatusURL, &resource); err != nil {
		return nil, err
	}
	status, ok := resource.Status()
	if !ok {
		return nil, fmt.Errorf("job resource at %s has no status", jobStatusURL)
	}
	log.Debugf("job at %s is %s (%d%%)", jobStatusURL, status.State, status.Progress)
	return status, nil
}

// QueryCounts runs the issue count query at issueAPIURL.
func (c *Client) QueryCounts(issueAPIURL string) ([]CountRecord, error) {
	var resources CountV0Resources
	if err := c.getJSON("issueCount", issueAPIURL, &resources); err != nil {
		return nil, err
	}
	return resources.Records(), nil
}
