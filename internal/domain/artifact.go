package domain

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Extension identifies an artifact file. Matching is case-sensitive.
const Extension = ".apk"

// buildSuffix matches one build token sitting directly before the extension.
var buildSuffix = regexp.MustCompile(`(?:-release(?:-unsigned)?|-unsigned)\.apk$`)

// Artifact is a package file found under the source root
type Artifact struct {
	Path string // absolute source path
	Name string // e.g., "app-release-unsigned.apk"
}

// NewArtifact builds an Artifact from its source path
func NewArtifact(path string) Artifact {
	return Artifact{Path: path, Name: filepath.Base(path)}
}

// NormalizedName returns the artifact's name with its build suffix removed
func (a Artifact) NormalizedName() string {
	return NormalizeName(a.Name)
}

// IsArtifactName reports whether name carries the artifact extension
func IsArtifactName(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// NormalizeName strips -release-unsigned, -release or -unsigned when it
// immediately precedes the extension. Only that one token is removed.
//
//	app-release-unsigned.apk -> app.apk
//	app-unsigned-release.apk -> app-unsigned.apk
//	app.apk                  -> app.apk
func NormalizeName(name string) string {
	return buildSuffix.ReplaceAllLiteralString(name, Extension)
}

// CandidateName returns the n-th collision candidate for name: the stem,
// an underscore, n, then the extension. n < 1 returns name unchanged.
//
//	app.apk, 2 -> app_2.apk
//	.apk, 1    -> .apk_1
func CandidateName(name string, n int) string {
	if n < 1 {
		return name
	}
	ext := extension(name)
	stem := strings.TrimSuffix(name, ext)
	return stem + "_" + strconv.Itoa(n) + ext
}

// extension returns the suffix from the last dot. A leading dot marks a
// hidden name, not an extension, and a trailing dot has none.
func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}
