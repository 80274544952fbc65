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
	"bytes"
	"runtime"
	"runtime/pprof"

	log "github.com/sirupsen/logrus"
)

// StackDump shows what every goroutine is doing, most usefully which job
// status urls long-running resolutions are still polling.
type StackDump struct {
	Runtime         string `json:"runtime"`
	Goroutines      string `json:"goroutines"`
	GoroutineCount  int    `json:"goroutineCount"`
	Heap            string `json:"heap"`
	HeapRecordCount int    `json:"heapRecordCount"`
}

// NewStackDump .....
func NewStackDump() *StackDump {
	goroutines, goroutineCount := lookupProfile("goroutine")
	heap, heapCount := lookupProfile("heap")
	return &StackDump{
		Runtime:         runtimeStack(),
		Goroutines:      goroutines,
		GoroutineCount:  goroutineCount,
		Heap:            heap,
		HeapRecordCount: heapCount,
	}
}

func runtimeStack() string {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, true)
	return string(buf[:n])
}

func lookupProfile(name string) (string, int) {
	profile := pprof.Lookup(name)
	if profile == nil {
		return "", 0
	}
	var buffer bytes.Buffer
	if err := profile.WriteTo(&buffer, 1); err != nil {
		log.Errorf("unable to write %s profile: %s", name, err.Error())
	}
	return buffer.String(), profile.Count()
}
