package deploy

import "rig-cli/internal/catalog"

// Status classifies an item's aggregated deploy outcome.
type Status int

const (
	StatusDeployed Status = iota
	StatusSkipped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusDeployed:
		return "deployed"
	case StatusSkipped:
		return "skipped"
	default:
		return "error"
	}
}

// Result is one item's outcome aggregated across every pass of a deploy
// session. Targets lists each pass label that reported the item;
// Details keeps the raw sub-lines in arrival order.
type Result struct {
	Name     string
	Category catalog.Category
	Status   Status
	Reason   string
	Targets  []string
	Details  []string
}

// Results accumulates per-item outcomes across passes, preserving
// first-observation order. Conflicting statuses resolve by precedence
// Error > Deployed > Skipped: the final view reflects the most severe
// failure, else the most successful outcome, while Targets keeps every
// pass that touched the item.
type Results struct {
	items map[string]*Result
	order []string
}

func NewResults() *Results {
	return &Results{items: map[string]*Result{}}
}

// Record folds one observation into the set.
func (r *Results) Record(name string, cat catalog.Category, status Status, reason, target string, details []string) {
	existing, ok := r.items[name]
	if !ok {
		r.order = append(r.order, name)
		r.items[name] = &Result{
			Name:     name,
			Category: cat,
			Status:   status,
			Reason:   reason,
			Targets:  []string{target},
			Details:  append([]string(nil), details...),
		}
		return
	}

	switch {
	case status == StatusError:
		existing.Status = StatusError
		existing.Reason = reason
	case status == StatusDeployed && existing.Status == StatusSkipped:
		existing.Status = StatusDeployed
		existing.Reason = ""
	}
	if !contains(existing.Targets, target) {
		existing.Targets = append(existing.Targets, target)
	}
	existing.Details = append(existing.Details, details...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (r *Results) byStatus(s Status) []*Result {
	var out []*Result
	for _, name := range r.order {
		if res := r.items[name]; res.Status == s {
			out = append(out, res)
		}
	}
	return out
}

func (r *Results) Deployed() []*Result { return r.byStatus(StatusDeployed) }
func (r *Results) Skipped() []*Result { return r.byStatus(StatusSkipped) }
func (r *Results) Errors() []*Result { return r.byStatus(StatusError) }

// Len is the number of distinct item names observed.
func (r *Results) Len() int { return len(r.order) }

func (r *Results) Clear() {
	r.items = map[string]*Result{}
	r.order = nil
}
