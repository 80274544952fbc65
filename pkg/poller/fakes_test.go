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

package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/polaris"
)

type fakeJobStatusService struct {
	mutex     sync.Mutex
	sequences map[string][]polaris.JobState
	failures  map[string]error
	missing   map[string]bool
	queries   []string
	onQuery   func(url string, count int)
}

func newFakeJobStatusService() *fakeJobStatusService {
	return &fakeJobStatusService{sequences: map[string][]polaris.JobState{}, failures: map[string]error{}, missing: map[string]bool{}}
}

// FetchStatus walks the sequence for url, repeating its last state once exhausted.
func (f *fakeJobStatusService) FetchStatus(url string) (*polaris.JobStatus, error) {
	f.mutex.Lock()
	f.queries = append(f.queries, url)
	count := f.queryCount(url)
	onQuery := f.onQuery
	f.mutex.Unlock()
	if onQuery != nil {
		onQuery(url, count)
	}
	if err, ok := f.failures[url]; ok {
		return nil, err
	}
	if f.missing[url] {
		return nil, nil
	}
	sequence, ok := f.sequences[url]
	if !ok || len(sequence) == 0 {
		return nil, fmt.Errorf("no job at %s", url)
	}
	index := count - 1
	if index >= len(sequence) {
		index = len(sequence) - 1
	}
	return &polaris.JobStatus{State: sequence[index]}, nil
}

func (f *fakeJobStatusService) queryCount(url string) int {
	count := 0
	for _, query := range f.queries {
		if query == url {
			count++
		}
	}
	return count
}

func (f *fakeJobStatusService) Queries() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string{}, f.queries...)
}

type fakeSleeper struct {
	sleeps  []time.Duration
	onSleep func(count int)
}

func (f *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	f.sleeps = append(f.sleeps, d)
	if f.onSleep != nil {
		f.onSleep(len(f.sleeps))
	}
	return ctx.Err()
}
