// Package deploy drives a deploy session: invoking the external
// deployer once per pass, decoding its line-oriented log, and folding
// per-item outcomes across passes into a single aggregated result set.
package deploy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// PassRequest describes one deployer invocation: either the global pass
// (empty ProjectPath) or one project-scoped pass.
type PassRequest struct {
	RepoRoot        string
	ConfigDir       string
	ProjectPath     string
	Include         []string
	OnPathScripts   map[string][]string
	DryRun          bool
	SkipPermissions bool
}

// Deployer performs the filesystem and settings work for one pass and
// returns the pass's log text. The error is the process-style outcome
// of the pass as a whole, independent of any individual item's status
// in the log.
type Deployer interface {
	Deploy(ctx context.Context, req PassRequest) (string, error)
}

// DeployerFunc adapts a function to the Deployer interface.
type DeployerFunc func(ctx context.Context, req PassRequest) (string, error)

func (f DeployerFunc) Deploy(ctx context.Context, req PassRequest) (string, error) {
	return f(ctx, req)
}

// ExecDeployer invokes an external deployer command per pass and
// captures its stdout as the pass log. Stderr is folded into the error
// on failure.
type ExecDeployer struct {
	// Command is the deployer argv prefix, e.g. ["deploy"] or
	// ["python3", "deploy.py"].
	Command []string
}

func (d ExecDeployer) args(req PassRequest) []string {
	args := append([]string{}, d.Command[1:]...)
	args = append(args, "--repo-root", req.RepoRoot, "--config-dir", req.ConfigDir)
	if req.ProjectPath != "" {
		args = append(args, "--project", req.ProjectPath)
	}
	for _, name := range req.Include {
		args = append(args, "--include", name)
	}
	// Deterministic argv for a deterministic request.
	skills := make([]string, 0, len(req.OnPathScripts))
	for skill := range req.OnPathScripts {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	for _, skill := range skills {
		for _, script := range req.OnPathScripts[skill] {
			args = append(args, "--on-path-script", skill+":"+script)
		}
	}
	if req.DryRun {
		args = append(args, "--dry-run")
	}
	if req.SkipPermissions {
		args = append(args, "--skip-permissions")
	}
	return args
}

func (d ExecDeployer) Deploy(ctx context.Context, req PassRequest) (string, error) {
	if len(d.Command) == 0 {
		return "", errors.New("deploy: no deployer command configured")
	}
	cmd := exec.CommandContext(ctx, d.Command[0], d.args(req)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return stdout.String(), fmt.Errorf("deployer pass failed: %w: %s", err, msg)
		}
		return stdout.String(), fmt.Errorf("deployer pass failed: %w", err)
	}
	return stdout.String(), nil
}
