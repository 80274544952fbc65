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

// JobState is the lifecycle state reported by the Polaris jobs service.
type JobState string

// .....
const (
	JobStateQueued     JobState = "QUEUED"
	JobStateDispatched JobState = "DISPATCHED"
	JobStateRunning    JobState = "RUNNING"
	JobStateCompleted  JobState = "COMPLETED"
	JobStateFailed     JobState = "FAILED"
	JobStateCancelled  JobState = "CANCELLED"
)

// IsPending reports whether issue counts for the job are not yet final.
// Anything not known to be pending, including unrecognized states, is terminal.
func (state JobState) IsPending() bool {
	switch state {
	case JobStateQueued, JobStateRunning, JobStateDispatched:
		return true
	}
	return false
}

// JobStatus .....
type JobStatus struct {
	State    JobState `json:"state"`
	Progress int      `json:"progress,omitempty"`
}

// FailureInfo .....
type FailureInfo struct {
	UserFriendlyFailureReason string `json:"userFriendlyFailureReason,omitempty"`
	Exception                 string `json:"exception,omitempty"`
}

// JobAttributes .....
type JobAttributes struct {
	Status      *JobStatus   `json:"status"`
	FailureInfo *FailureInfo `json:"failureInfo,omitempty"`
	DateCreated string       `json:"dateCreated,omitempty"`
	DateStarted string       `json:"dateStarted,omitempty"`
	DateEnded   string       `json:"dateEnded,omitempty"`
}

// Job .....
type Job struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes *JobAttributes `json:"attributes"`
}

// JobResource is the document served at a job status url.
type JobResource struct {
	Data *Job `json:"data"`
}

// Status walks data.attributes.status, any of which may be missing.
func (resource *JobResource) Status() (*JobStatus, bool) {
	if resource == nil || resource.Data == nil || resource.Data.Attributes == nil || resource.Data.Attributes.Status == nil {
		return nil, false
	}
	return resource.Data.Attributes.Status, true
}

// CountV0Attributes .....
type CountV0Attributes struct {
	Value int `json:"value"`
}

// CountV0 .....
type CountV0 struct {
	ID         string            `json:"id,omitempty"`
	Type       string            `json:"type,omitempty"`
	Attributes CountV0Attributes `json:"attributes"`
}

// CountV0Resources is the document served by the issue count query api.
type CountV0Resources struct {
	Data []CountV0 `json:"data"`
}

// CountRecord is one row of an issue count query.
type CountRecord struct {
	Value int
}

// Records .....
func (resources *CountV0Resources) Records() []CountRecord {
	records := make([]CountRecord, 0, len(resources.Data))
	for _, count := range resources.Data {
		records = append(records, CountRecord{Value: count.Attributes.Value})
	}
	return records
}

// SumCounts adds up every record.  Negative values are kept as-is.
func SumCounts(records []CountRecord) int {
	total := 0
	for _, record := range records {
		total += record.Value
	}
	return total
}
