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

package common

import (
	"fmt"

	"github.com/juju/errors"
)

// Error is the single terminal failure of a resolution.  FieldPath is only
// set for schema violations.
type Error struct {
	Kind      ErrorKind
	Message   string
	FieldPath string
	Cause     error
}

// NewError .....
func NewError(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewSchemaViolation builds a SchemaViolation pointing at fieldPath.
func NewSchemaViolation(fieldPath string, cause error, format string, args ...interface{}) *Error {
	err := NewError(ErrorKindSchemaViolation, cause, format, args...)
	err.FieldPath = fieldPath
	return err
}

func (e *Error) Error() string {
	message := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.FieldPath != "" {
		message = fmt.Sprintf("%s (at %s)", message, e.FieldPath)
	}
	if e.Cause != nil {
		message = fmt.Sprintf("%s: %s", message, e.Cause.Error())
	}
	return message
}

// Unwrap .....
func (e *Error) Unwrap() error {
	return e.Cause
}

// AsError finds the first *Error in err's chain, looking through juju
// annotations.
func AsError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	target, ok := AsError(err)
	if !ok {
		return 0, false
	}
	return target.Kind, true
}

// IsKind .....
func IsKind(err error, kind ErrorKind) bool {
	actual, ok := KindOf(err)
	return ok && actual == kind
}
