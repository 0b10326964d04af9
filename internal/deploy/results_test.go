package deploy

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rig-cli/internal/catalog"
)

func TestResults_DeployedUpgradesSkipped(t *testing.T) {
	t.Parallel()

	res := NewResults()
	res.Record("tool-a", catalog.CategorySkill, StatusSkipped, "filtered out", "global", nil)
	res.Record("tool-a", catalog.CategorySkill, StatusDeployed, "", "project:web", nil)

	deployed := res.Deployed()
	if len(deployed) != 1 {
		t.Fatalf("expected the item to end up deployed; skipped=%d deployed=%d",
			len(res.Skipped()), len(deployed))
	}
	got := deployed[0]
	if got.Reason != "" {
		t.Fatalf("upgrade must clear the skip reason; got %q", got.Reason)
	}
	if diff := cmp.Diff([]string{"global", "project:web"}, got.Targets); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestResults_ErrorWinsOverEverything(t *testing.T) {
	t.Parallel()

	res := NewResults()
	res.Record("tool-a", catalog.CategorySkill, StatusDeployed, "", "global", nil)
	res.Record("tool-a", catalog.CategorySkill, StatusError, "symlink failed", "project:web", nil)
	res.Record("tool-a", catalog.CategorySkill, StatusDeployed, "", "project:api", nil)

	errs := res.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one error result; got %d", len(errs))
	}
	if errs[0].Reason != "symlink failed" {
		t.Fatalf("error reason must stick; got %q", errs[0].Reason)
	}
	if len(res.Deployed()) != 0 {
		t.Fatalf("a later deploy must not mask the error")
	}
}

func TestResults_SkippedNeverDowngradesDeployed(t *testing.T) {
	t.Parallel()

	res := NewResults()
	res.Record("tool-a", catalog.CategorySkill, StatusDeployed, "", "global", nil)
	res.Record("tool-a", catalog.CategorySkill, StatusSkipped, "already present", "project:web", nil)

	deployed := res.Deployed()
	if len(deployed) != 1 || deployed[0].Reason != "" {
		t.Fatalf("deployed status must survive a later skip; got %+v", deployed)
	}
}

func TestResults_TargetDedup(t *testing.T) {
	t.Parallel()

	res := NewResults()
	res.Record("tool-a", catalog.CategorySkill, StatusDeployed, "", "global", nil)
	res.Record("tool-a", catalog.CategorySkill, StatusDeployed, "", "global", nil)

	got := res.Deployed()[0].Targets
	if diff := cmp.Diff([]string{"global"}, got); diff != "" {
		t.Fatalf("target recorded twice (-want +got):\n%s", diff)
	}
}

func TestResults_OrderAndDetails(t *testing.T) {
	t.Parallel()

	res := NewResults()
	res.Record("b", catalog.CategorySkill, StatusDeployed, "", "global", []string{"OK: one"})
	res.Record("a", catalog.CategoryHook, StatusDeployed, "", "global", nil)
	res.Record("b", catalog.CategorySkill, StatusDeployed, "", "project:web", []string{"OK: two"})

	deployed := res.Deployed()
	if len(deployed) != 2 || deployed[0].Name != "b" || deployed[1].Name != "a" {
		t.Fatalf("first-observation order broken: %+v", deployed)
	}
	if diff := cmp.Diff([]string{"OK: one", "OK: two"}, deployed[0].Details); diff != "" {
		t.Fatalf("details must accumulate across passes (-want +got):\n%s", diff)
	}
	if res.Len() != 2 {
		t.Fatalf("expected 2 distinct items; got %d", res.Len())
	}
}

func TestResults_Clear(t *testing.T) {
	t.Parallel()

	res := NewResults()
	res.Record("a", catalog.CategorySkill, StatusDeployed, "", "global", nil)
	res.Clear()
	if res.Len() != 0 || len(res.Deployed()) != 0 {
		t.Fatalf("clear must drop everything")
	}
}
