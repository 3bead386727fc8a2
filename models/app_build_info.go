// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// notAvailable replaces build metadata the linker did not inject.
const notAvailable = "N/A"

// AppBuildInfo holds the linker-injected metadata of a peer binary.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo trims and stores the metadata passed via -ldflags.
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: strings.TrimSpace(version),
		date:    strings.TrimSpace(date),
		commit:  strings.TrimSpace(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }
func (a AppBuildInfo) BuildDate() string { return a.date }
func (a AppBuildInfo) BuildCommit() string { return a.commit }

// BuildField is one labelled line of build metadata.
type BuildField struct {
	Label string
	Value string
}

// Fields lists the build metadata in display order, with missing values
// shown as N/A.
func (a AppBuildInfo) Fields() []BuildField {
	return []BuildField{
		{Label: "Build version", Value: orNA(a.version)},
		{Label: "Build date", Value: orNA(a.date)},
		{Label: "Build commit", Value: orNA(a.commit)},
	}
}

// VersionInfo combines the configured peer version with the build metadata.
func (a AppBuildInfo) VersionInfo(version string) VersionInfo {
	return VersionInfo{
		Version:         version,
		BuildVersion:    a.version,
		BuildDate:       a.date,
		BuildCommit:     a.commit,
		ProtocolVersion: ProtocolVersion,
	}
}

func orNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}

// VersionInfo is the body of GET /api/version.
type VersionInfo struct {
	Version         string `json:"version"`
	BuildVersion    string `json:"build_version,omitempty"`
	BuildDate       string `json:"build_date,omitempty"`
	BuildCommit     string `json:"build_commit,omitempty"`
	ProtocolVersion uint16 `json:"protocol_version"`
}
