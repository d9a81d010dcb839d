package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Color attributes for console output.
const (
	AdditionAttr = color.FgGreen // AdditionAttr marks added line counts.
	DeletionAttr = color.FgRed   // DeletionAttr marks deleted line counts.
)

// StatColors returns the colors for added and deleted counts.
// They are forced on or off, ignoring fatih/color's own terminal detection.
func StatColors(enabled bool) (add, del *color.Color) {
	add, del = color.New(AdditionAttr), color.New(DeletionAttr)
	if enabled {
		add.EnableColor()
		del.EnableColor()
	} else {
		add.DisableColor()
		del.DisableColor()
	}
	return add, del
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for numstat caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitactivity_cache.db"
	}
	return filepath.Join(homeDir, ".gitactivity_cache.db")
}

// ResolvePath returns the on-disk location of a user path given the directory
// git runs in. Absolute paths are returned unchanged.
func ResolvePath(repoPath, userPath string) string {
	if filepath.IsAbs(userPath) {
		return filepath.Clean(userPath)
	}
	return filepath.Join(repoPath, userPath)
}

// RepoRelativeKey converts a path on disk into the slash separated form git
// prints in numstat output, relative to the repository root.
// The repository root itself maps to ".". Paths outside the root keep their
// leading "..", so they never match a numstat line.
func RepoRelativeKey(repoRoot, diskPath string) (string, error) {
	absPath, err := filepath.Abs(diskPath)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}
	if resolved, err := filepath.EvalSymlinks(repoRoot); err == nil {
		repoRoot = resolved
	}
	rel, err := filepath.Rel(repoRoot, absPath)
	if err != nil {
		return "", fmt.Errorf("path is outside repository: %s", diskPath)
	}
	return filepath.ToSlash(rel), nil
}

// PathCovers reports whether a repository-relative key covers a numstat path,
// either by naming it exactly or by being one of its parent directories.
func PathCovers(key, path string) bool {
	if key == "." {
		return true
	}
	key = strings.TrimSuffix(key, "/")
	return path == key || strings.HasPrefix(path, key+"/")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseColorString parses the --color value. "auto" (or empty) defers to isTTY.
func ParseColorString(s string, isTTY func() bool) (bool, error) {
	if s == "" || strings.EqualFold(s, DefaultColor) {
		return isTTY(), nil
	}
	return ParseBoolString(s)
}
