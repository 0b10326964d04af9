package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandTilde resolves a leading ~ or ~/ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// tabCompletePath completes a partially typed directory path the way a
// shell would: a unique match completes fully with a trailing slash, a
// set of matches extends to their longest common prefix. Hidden
// directories are skipped. Returns the input unchanged when nothing
// matches.
func tabCompletePath(input string) string {
	path := strings.TrimSpace(input)
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			return home + "/"
		}
		return input
	}

	expanded := ExpandTilde(path)
	if isDir(expanded) && !strings.HasSuffix(input, "/") {
		return expanded + "/"
	}

	searchDir, prefix := expanded, ""
	if !isDir(expanded) {
		searchDir = filepath.Dir(expanded)
		prefix = filepath.Base(expanded)
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return input
	}
	var matches []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return input
	}
	sort.Strings(matches)

	if len(matches) == 1 {
		return filepath.Join(searchDir, matches[0]) + "/"
	}
	lcp := longestCommonPrefix(matches)
	if len(lcp) > len(prefix) {
		return filepath.Join(searchDir, lcp)
	}
	return input
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	first := strs[0]
	n := len(first)
	for _, s := range strs[1:] {
		if len(s) < n {
			n = len(s)
		}
		for i := 0; i < n; i++ {
			if s[i] != first[i] {
				n = i
				break
			}
		}
	}
	return first[:n]
}
