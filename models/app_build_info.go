// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"io"
)

const unknownBuildValue = "N/A"

// AppBuildInfo carries the linker-injected build metadata of a binary.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values are reported as
// "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orUnknown(buildVersion),
		buildDate:    orUnknown(buildDate),
		buildCommit:  orUnknown(buildCommit),
	}
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// HasVersion reports whether a version was injected at build time.
func (a AppBuildInfo) HasVersion() bool {
	return a.buildVersion != unknownBuildValue
}

// Print writes the build metadata in the "Build version: ..." format.
func (a AppBuildInfo) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Build version: %s\n", a.buildVersion)
	_, _ = fmt.Fprintf(w, "Build date: %s\n", a.buildDate)
	_, _ = fmt.Fprintf(w, "Build commit: %s\n", a.buildCommit)
}
