package deploy

import (
	"strings"

	"rig-cli/internal/catalog"
)

// ParsePassLog decodes the line-oriented text of one deployer pass into
// the aggregated results, tagging every item with the pass's target
// label.
//
// The grammar (not a versioned contract; unknown lines are ignored):
//
//	=== Skills ===
//	  Deployed: <name>
//	    OK: <label>  |  Linked: <label>  |  > ln ...
//	  Skipped: <name> (<reason>)
//	=== Hooks ===
//	  Deployed: hook <name>
//	=== MCP ===
//	  Deployed: <name>
//	=== Permissions ===
//	  Included: <name>
//
// A category header resets the current category; a status line flushes
// the pending item and opens a new one; indented detail lines attach to
// the pending item; end of input flushes the last item.
func ParsePassLog(log, target string, results *Results) {
	var (
		category   catalog.Category
		inCategory bool

		pending        string
		pendingStatus  Status
		pendingReason  string
		pendingCat     catalog.Category
		pendingDetails []string
		havePending    bool
	)

	flush := func() {
		if havePending {
			results.Record(pending, pendingCat, pendingStatus, pendingReason, target, pendingDetails)
		}
		havePending = false
		pendingDetails = nil
	}

	headers := map[string]catalog.Category{
		"=== Skills ===":      catalog.CategorySkill,
		"=== Hooks ===":       catalog.CategoryHook,
		"=== MCP ===":         catalog.CategoryMcp,
		"=== Permissions ===": catalog.CategoryPermission,
	}

	for _, line := range strings.Split(log, "\n") {
		trimmed := strings.TrimSpace(line)

		if cat, ok := headers[trimmed]; ok {
			flush()
			category = cat
			inCategory = true
			continue
		}
		if !inCategory {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "Deployed: "):
			flush()
			name := strings.TrimPrefix(trimmed, "Deployed: ")
			pending = strings.TrimPrefix(name, "hook ")
			pendingStatus = StatusDeployed
			pendingReason = ""
			pendingCat = category
			havePending = true

		case strings.HasPrefix(trimmed, "Included: "):
			flush()
			pending = strings.TrimPrefix(trimmed, "Included: ")
			pendingStatus = StatusDeployed
			pendingReason = ""
			pendingCat = category
			havePending = true

		case strings.HasPrefix(trimmed, "Skipped: "):
			flush()
			rest := strings.TrimPrefix(trimmed, "Skipped: ")
			rest = strings.TrimPrefix(rest, "hook ")
			name, reason := splitSkipReason(rest)
			pending = name
			pendingStatus = StatusSkipped
			pendingReason = reason
			pendingCat = category
			havePending = true

		case strings.HasPrefix(trimmed, "OK:"),
			strings.HasPrefix(trimmed, "Linked:"),
			strings.HasPrefix(trimmed, "> ln"):
			if havePending {
				pendingDetails = append(pendingDetails, trimmed)
			}
		}
	}
	flush()
}

// splitSkipReason splits "name (reason)" on the last open paren; a line
// without one keeps the whole text as the name with reason "unknown".
func splitSkipReason(rest string) (name, reason string) {
	idx := strings.LastIndex(rest, "(")
	if idx < 0 {
		return rest, "unknown"
	}
	name = strings.TrimSpace(rest[:idx])
	reason = strings.TrimSuffix(rest[idx+1:], ")")
	return name, reason
}
