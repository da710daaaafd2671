// Package protocol holds the shared constants, record types, and SQLite
// schema used across the voicesort engine packages. It depends on nothing
// else in the module so that every package can import it.
package protocol

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Application directory layout. The app home defaults to ~/.voicesort and
// can be overridden with the VOICESORT_HOME environment variable.
const (
	AppDirName      = ".voicesort"
	ProjectsDirName = "projects"
	DBFileName      = "voicesort.db"
	ConfigFileName  = "config.toml"
)

// Reserved staging folder names. They are created as direct children of
// whatever directory holds a file at the moment it is excluded or deferred,
// and the scanner never descends into them.
const (
	ExcludeDirName = "_excluded_by_voice_sorter"
	DeferDirName   = "_deferred_by_voice_sorter"
)

// History actions. The first five drive operation-state reconstruction;
// the *_error actions are free-form diagnostics the reconstructor ignores.
const (
	ActionMove    = "move"
	ActionExclude = "exclude"
	ActionDefer   = "defer"
	ActionUndo    = "undo"
	ActionRedo    = "redo"

	ActionRestoreDeferredError = "restore_deferred_error"
	ActionUndoError            = "undo_error"
	ActionRedoError            = "redo_error"
)

// Per-project settings keys.
const (
	SettingRecursive  = "recursive"
	SettingLastOutput = "last_output"
	SettingProjectKey = "project_key"
)

// audioExts is the fixed allow-list of audio file extensions, lowercase.
var audioExts = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".flac": {},
	".ogg":  {},
	".m4a":  {},
	".aac":  {},
}

// IsAudioPath reports whether path has one of the allowed audio extensions.
// The comparison is case-insensitive.
func IsAudioPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := audioExts[ext]
	return ok
}

// IsStagingDir reports whether name is one of the reserved staging folder
// names.
func IsStagingDir(name string) bool {
	return name == ExcludeDirName || name == DeferDirName
}

var (
	wsRe      = regexp.MustCompile(`\s+`)
	badCharRe = regexp.MustCompile(`[\\/:*?"<>|]`)
)

// SafeName sanitizes a user-supplied name into a filesystem-safe folder or
// project key: whitespace runs collapse to underscores, leading/trailing
// dots and underscores are stripped, and path-hostile characters are
// replaced. An empty result becomes "Unnamed".
func SafeName(name string) string {
	s := wsRe.ReplaceAllString(strings.TrimSpace(name), "_")
	s = strings.Trim(s, "._")
	if s == "" {
		s = "Unnamed"
	}
	return badCharRe.ReplaceAllString(s, "_")
}
