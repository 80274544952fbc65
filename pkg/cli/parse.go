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

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/sig-cpotts/synopsys-polaris-plugin/pkg/common"
	log "github.com/sirupsen/logrus"
)

// InlineSource identifies manifests that were not read from a file.
const InlineSource = "inline string"

// DefaultPath is where the Polaris CLI writes cli-scan.json inside a project.
func DefaultPath(projectRoot string) string {
	return filepath.Join(projectRoot, ".synopsys", "polaris", "cli-scan.json")
}

// ParseFromDefaultLocation .....
func ParseFromDefaultLocation(projectRoot string) (*ScanManifest, error) {
	return ParseFile(DefaultPath(projectRoot))
}

// ParseFile .....
func ParseFile(path string) (*ScanManifest, error) {
	file, err := os.Open(path)
	if err != nil {
		recordManifestParse("unknown", common.ErrorKindMalformedJSON.String())
		return nil, common.NewError(common.ErrorKindMalformedJSON, err, "There was a problem parsing the Polaris CLI response json at %s", path)
	}
	defer file.Close()
	return ParseReader(file, path)
}

// ParseReader reads all of reader; source is only used for logging and errors.
func ParseReader(reader io.Reader, source string) (*ScanManifest, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		recordManifestParse("unknown", common.ErrorKindMalformedJSON.String())
		return nil, common.NewError(common.ErrorKindMalformedJSON, err, "There was a problem parsing the Polaris CLI response json at %s", source)
	}
	return parse(raw, source)
}

// ParseString .....
func ParseString(raw string) (*ScanManifest, error) {
	return parse([]byte(raw), InlineSource)
}

// ParseBytes .....
func ParseBytes(raw []byte) (*ScanManifest, error) {
	return parse(raw, InlineSource)
}

func parse(raw []byte, source string) (*ScanManifest, error) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal(raw, &document); err != nil {
		recordManifestParse("unknown", common.ErrorKindMalformedJSON.String())
		return nil, common.NewError(common.ErrorKindMalformedJSON, err, "unable to parse %s as a json object", source)
	}
	if document == nil {
		recordManifestParse("unknown", common.ErrorKindMalformedJSON.String())
		return nil, common.NewError(common.ErrorKindMalformedJSON, nil, "%s is null, expected a json object", source)
	}
	return ParseDocument(document, source)
}

// ParseDocument binds an already decoded, versionless json object.
func ParseDocument(document map[string]json.RawMessage, source string) (*ScanManifest, error) {
	versionString, err := extractVersion(document)
	if err != nil {
		recordManifestParseError("unknown", err)
		return nil, err
	}

	strategy, version, err := ResolveStrategy(versionString)
	if err != nil {
		recordManifestParseError("unknown", err)
		return nil, err
	}
	log.WithFields(log.Fields{
		"version":  version.String(),
		"strategy": strategy.Name(),
		"source":   source,
	}).Debugf("resolved cli-scan.json version %s from %s", versionString, source)

	manifest, err := strategy.Bind(document)
	if err != nil {
		recordManifestParseError(version.String(), err)
		return nil, err
	}
	manifest.Version = version
	manifest.VersionString = versionString
	recordManifestParse(version.String(), "success")
	return manifest, nil
}

// extractVersion accepts a json string or number; null counts as absent.
func extractVersion(document map[string]json.RawMessage) (string, error) {
	raw, ok := document["version"]
	if !ok || isNull(raw) {
		return "", common.NewError(common.ErrorKindMissingVersionField, nil, "cli-scan.json does not contain a version")
	}

	var versionString string
	if err := json.Unmarshal(raw, &versionString); err == nil {
		return versionString, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err == nil {
		if number, ok := value.(json.Number); ok {
			return number.String(), nil
		}
	}
	return "", common.NewSchemaViolation("version", nil, "version must be a string, found %s", string(raw))
}
