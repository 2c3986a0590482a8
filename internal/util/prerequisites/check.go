// Package prerequisites checks that the host tools volplan shells out to
// are installed.
package prerequisites

import (
	"fmt"
	"strings"

	"k8s.io/utils/exec"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name or absolute path to look for.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// Package names the distribution package that provides the tool.
	Package string

	// VersionArgs are passed to the tool to print its version.
	VersionArgs []string
}

// DefaultTools returns the tools needed to apply LVM volume groups. lvm
// is looked up at lvmBinary when it is set.
func DefaultTools(lvmBinary string) []Tool {
	if lvmBinary == "" {
		lvmBinary = "lvm"
	}
	return []Tool{
		{
			Name:        lvmBinary,
			Required:    true,
			Description: "Required for creating physical volumes, volume groups and logical volumes",
			Package:     "lvm2",
			VersionArgs: []string{"version"},
		},
		{
			Name:        "mkfs",
			Required:    true,
			Description: "Required for creating filesystems on new logical volumes",
			Package:     "util-linux",
			VersionArgs: []string{"--version"},
		},
		{
			Name:        "mount",
			Required:    true,
			Description: "Required for mounting logical volumes",
			Package:     "util-linux",
			VersionArgs: []string{"--version"},
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "mkfs.xfs",
			Required:    false,
			Description: "Needed for the default xfs filesystem",
			Package:     "xfsprogs",
			VersionArgs: []string{"-V"},
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (package %s)", tool.Name, tool.Package))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available. A nil executor
// uses the host.
func Check(executor exec.Interface, tools []Tool) *CheckResults {
	if executor == nil {
		executor = exec.New()
	}
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := executor.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(executor, path, tool.VersionArgs)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckAll checks the default and optional tools.
func CheckAll(executor exec.Interface, lvmBinary string) *CheckResults {
	defaults := DefaultTools(lvmBinary)
	optional := OptionalTools()
	all := make([]Tool, 0, len(defaults)+len(optional))
	all = append(all, defaults...)
	all = append(all, optional...)
	return Check(executor, all)
}

// toolVersion returns the first non-empty output line of the version
// command, or "" when it cannot be determined.
func toolVersion(executor exec.Interface, path string, args []string) string {
	if len(args) == 0 {
		return ""
	}
	// #nosec G204 - path comes from trusted Tool definitions, not user input
	output, err := executor.Command(path, args...).Output()
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
