package main

import (
	"fmt"
	"io"

	"github.com/arthur-debert/atlas/pkg/commands/status"
	"github.com/arthur-debert/atlas/pkg/ui/styles"
)

// printStatus renders the human-readable status overview.
func printStatus(w io.Writer, report *status.Report, detailed bool) {
	heading := styles.GetStyle("Heading")
	toolName := styles.GetStyle("ToolName")
	good := styles.GetStyle("Success")
	bad := styles.GetStyle("Error")
	command := styles.GetStyle("Command")

	fmt.Fprintln(w, heading.Render("Atlas Build Optimizer Status"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading.Render("System"))
	fmt.Fprintf(w, "  OS: %s %s\n", report.System.OS, report.System.Arch)
	fmt.Fprintf(w, "  CPU Cores: %d\n", report.System.CPUCores)
	if report.System.RustVersion != "" {
		fmt.Fprintf(w, "  Rust: %s\n", report.System.RustVersion)
	}
	if report.System.CargoVersion != "" {
		fmt.Fprintf(w, "  Cargo: %s\n", report.System.CargoVersion)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading.Render("Tools"))
	for _, tool := range report.Tools {
		state := bad.Render("not installed")
		if tool.Installed {
			state = good.Render("installed")
		}
		if detailed && tool.Installed && tool.Version != "" {
			fmt.Fprintf(w, "  %s - %s (%s)\n", toolName.Render(tool.Name), state, tool.Version)
		} else {
			fmt.Fprintf(w, "  %s - %s\n", toolName.Render(tool.Name), state)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading.Render("Project"))
	if report.Project.Root == "" {
		fmt.Fprintln(w, "  No Rust project found")
	} else {
		fmt.Fprintf(w, "  Root: %s\n", report.Project.Root)
		if report.Project.Initialized {
			fmt.Fprintf(w, "  Optimization: %s\n", good.Render("initialized"))
		} else {
			fmt.Fprintf(w, "  Optimization: not initialized, run %s\n",
				command.Render("atlas init"))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading.Render("Configuration"))
	fmt.Fprintf(w, "  Path: %s\n", report.Config.Path)
	if !report.Config.Exists {
		fmt.Fprintln(w, "  Using built-in defaults")
	}

	if missing := report.MissingTools(); len(missing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading.Render("Recommendations"))
		fmt.Fprintf(w, "  Install missing tools with: %s\n",
			command.Render("atlas install-tools"))
		for _, name := range missing {
			fmt.Fprintf(w, "    %s\n", name)
		}
	}
}
