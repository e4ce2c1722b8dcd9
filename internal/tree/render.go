// Package tree renders directory hierarchies as indented text with
// box-drawing connectors.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	hiddenEntryPrefix = "."
)

// Render returns the textual tree for rootPath. The first line is the cleaned
// root path itself; every visible entry reachable by recursive descent follows
// on its own line, prefixed with connectors and padding describing its depth
// and sibling position. Entries whose names start with a dot are excluded
// before sibling positions are computed, and the remaining entries of each
// directory are ordered by case-insensitive name. Any listing failure aborts
// the whole render.
func Render(rootPath string) (string, error) {
	var outputBuilder strings.Builder
	outputBuilder.WriteString(filepath.Clean(rootPath))
	outputBuilder.WriteString("\n")
	if walkError := renderDirectory(&outputBuilder, rootPath, ""); walkError != nil {
		return "", walkError
	}
	return outputBuilder.String(), nil
}

// renderDirectory appends one line per visible entry of directoryPath and
// recurses into subdirectories. The prefix argument carries the accumulated
// padding for the current depth. Symbolic links are rendered as leaves because
// the directory listing does not resolve them, which also rules out cycles.
func renderDirectory(outputBuilder *strings.Builder, directoryPath string, prefix string) error {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return readDirectoryError
	}

	visibleEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if strings.HasPrefix(directoryEntry.Name(), hiddenEntryPrefix) {
			continue
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}
	// Stable sort over the lexical listing order keeps case-equal names in a
	// deterministic byte order.
	sort.SliceStable(visibleEntries, func(firstIndex, secondIndex int) bool {
		return strings.ToLower(visibleEntries[firstIndex].Name()) < strings.ToLower(visibleEntries[secondIndex].Name())
	})

	for entryIndex, directoryEntry := range visibleEntries {
		isLastSibling := entryIndex == len(visibleEntries)-1
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if isLastSibling {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		outputBuilder.WriteString(prefix + connector + directoryEntry.Name() + "\n")
		if directoryEntry.IsDir() {
			childPath := filepath.Join(directoryPath, directoryEntry.Name())
			if walkError := renderDirectory(outputBuilder, childPath, childPrefix); walkError != nil {
				return walkError
			}
		}
	}
	return nil
}
