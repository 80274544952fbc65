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
	"time"

	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/polaris"
	log "github.com/sirupsen/logrus"
)

// DefaultWaitQuantum is how long the poller sleeps between queries of a
// pending job.
const DefaultWaitQuantum = 500 * time.Millisecond

// JobStatusService fetches the current status of a job.
type JobStatusService interface {
	FetchStatus(url string) (*polaris.JobStatus, error)
}

// PollState is the state of the loop waiting on a single job.
type PollState int

// .....
const (
	PollStateFetching  PollState = iota
	PollStateWaiting   PollState = iota
	PollStateTerminal  PollState = iota
	PollStateCancelled PollState = iota
	PollStateFailed    PollState = iota
)

// String .....
func (state PollState) String() string {
	switch state {
	case PollStateFetching:
		return "PollStateFetching"
	case PollStateWaiting:
		return "PollStateWaiting"
	case PollStateTerminal:
		return "PollStateTerminal"
	case PollStateCancelled:
		return "PollStateCancelled"
	case PollStateFailed:
		return "PollStateFailed"
	}
	panic(fmt.Errorf("invalid PollState value: %d", state))
}

// Poller waits for Polaris jobs to leave their pending states.  It keeps no
// state between calls to AwaitCompletion.
type Poller struct {
	service JobStatusService
	sleeper Sleeper
	wait    time.Duration
}

// NewPoller .....
func NewPoller(service JobStatusService, wait time.Duration) *Poller {
	return NewPollerWithSleeper(service, wait, NewTimerSleeper())
}

// NewPollerWithSleeper .....
func NewPollerWithSleeper(service JobStatusService, wait time.Duration, sleeper Sleeper) *Poller {
	if wait <= 0 {
		wait = DefaultWaitQuantum
	}
	return &Poller{service: service, sleeper: sleeper, wait: wait}
}

// WaitQuantum .....
func (p *Poller) WaitQuantum() time.Duration {
	return p.wait
}

// AwaitCompletion polls each url in order until its job reaches a terminal
// state.  There is no bound on how long a job may stay pending; callers that
// need one must cancel ctx.
func (p *Poller) AwaitCompletion(ctx context.Context, jobStatusURLs []string) error {
	if len(jobStatusURLs) == 0 {
		log.Debug("no job status urls to poll")
		return nil
	}
	announced := false
	for _, url := range jobStatusURLs {
		if err := p.awaitJob(ctx, url, &announced); err != nil {
			return err
		}
	}
	return nil
}

// awaitJob logs that it is waiting the first time any job of the call is
// seen pending.
func (p *Poller) awaitJob(ctx context.Context, url string, announced *bool) error {
	start := time.Now()
	state := PollStateFetching
	var status *polaris.JobStatus
	var err error
	for {
		switch state {
		case PollStateFetching:
			if ctx.Err() != nil {
				err = cancelled(url, ctx.Err())
				state = PollStateCancelled
				continue
			}
			status, err = p.service.FetchStatus(url)
			if err != nil {
				recordPollError()
				err = common.NewError(common.ErrorKindJobLookupFailure, err, "Could not get job status from url %s has the cli-scan.json been modified?", url)
				state = PollStateFailed
				continue
			}
			if status == nil {
				recordPollError()
				err = common.NewError(common.ErrorKindJobLookupFailure, nil, "Could not get job status from url %s has the cli-scan.json been modified?", url)
				state = PollStateFailed
				continue
			}
			recordPollAttempt(status.State)
			if status.State.IsPending() {
				if !*announced {
					log.Info("Waiting for jobs to complete")
					*announced = true
				}
				state = PollStateWaiting
			} else {
				state = PollStateTerminal
			}
			log.Debugf("job %s is %s, moving to %s", url, status.State, state)
		case PollStateWaiting:
			if sleepErr := p.sleeper.Sleep(ctx, p.wait); sleepErr != nil {
				err = cancelled(url, sleepErr)
				state = PollStateCancelled
				continue
			}
			state = PollStateFetching
		case PollStateTerminal:
			log.Debugf("job %s finished in state %s after %s", url, status.State, time.Since(start))
			p.finish(state, start)
			return nil
		case PollStateCancelled, PollStateFailed:
			log.Warnf("stopped polling job %s: %s", url, err.Error())
			p.finish(state, start)
			return err
		}
	}
}

func (p *Poller) finish(state PollState, start time.Time) {
	recordJobWaitTime(state, time.Since(start))
	recordPollOutcome(state)
}

func cancelled(url string, cause error) error {
	return common.NewError(common.ErrorKindPollCancelled, cause, "polling of job %s was cancelled", url)
}
