package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/atlas/pkg/commands/build"
	"github.com/arthur-debert/atlas/pkg/commands/configcmd"
	"github.com/arthur-debert/atlas/pkg/commands/dev"
	"github.com/arthur-debert/atlas/pkg/commands/initialize"
	"github.com/arthur-debert/atlas/pkg/commands/installtools"
	"github.com/arthur-debert/atlas/pkg/commands/optimize"
	"github.com/arthur-debert/atlas/pkg/commands/status"
	"github.com/arthur-debert/atlas/pkg/commands/update"
	"github.com/arthur-debert/atlas/pkg/tools"
	"github.com/arthur-debert/atlas/pkg/ui"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	var noBackup, noTools bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter()

			result, err := initialize.Initialize(initialize.Options{
				ProjectDir: flags.projectDir,
				NoBackup:   noBackup,
				NoTools:    noTools,
				Force:      flags.force,
				Confirm:    ui.NewConsoleConfirmer(),
			})
			if err != nil {
				return err
			}

			snap := result.Snapshot
			printer.Status(MsgDetectedSystem, snap.OS, snap.Arch, snap.CPUCores)

			report := result.Merge
			if report.ConfigBackupPath != "" {
				printer.Status(MsgBackupCreated, report.ConfigBackupPath)
			}
			if report.ManifestBackupPath != "" {
				printer.Status(MsgBackupCreated, report.ManifestBackupPath)
			}
			if report.ConfigWritten {
				printer.Success(MsgConfigInstalled, report.ConfigPath)
			} else {
				printer.Warning(MsgConfigSkipped)
			}
			if report.ProfilesAppended {
				printer.Success(MsgProfilesAdded)
				if report.ProfilesDuplicated {
					printer.Warning(MsgProfilesDuplicated)
				}
			} else {
				printer.Warning(MsgProfilesSkipped)
			}

			printToolResults(printer, result.ToolResults)
			printer.Success(MsgInitDone, result.ProjectRoot)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, MsgFlagNoBackup)
	cmd.Flags().BoolVar(&noTools, "no-tools", false, MsgFlagNoTools)
	return cmd
}

func printToolResults(printer *ui.Printer, results []tools.InstallResult) {
	for _, res := range results {
		switch {
		case res.Err != nil:
			printer.Error(MsgToolFailed, res.Tool, res.Err)
		case res.Skipped:
			printer.Status(MsgToolSkipped, res.Tool)
		default:
			printer.Success(MsgToolInstalled, res.Tool)
		}
	}
}

func newInstallToolsCmd(flags *rootFlags) *cobra.Command {
	var all, list bool

	cmd := &cobra.Command{
		Use:   "install-tools [tool...]",
		Short: MsgInstallToolsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter()

			result, err := installtools.InstallTools(installtools.Options{
				Tools: args,
				All:   all,
				List:  list,
			})
			if err != nil {
				return err
			}

			if list {
				for _, name := range result.Requested {
					if result.Snapshot.IsToolInstalled(name) {
						printer.Success("  %s installed", name)
					} else {
						printer.Warning("  %s not installed", name)
					}
				}
				return nil
			}

			printToolResults(printer, result.Results)
			if result.Failed() {
				return fmt.Errorf("some tools failed to install")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAllTools)
	cmd.Flags().BoolVar(&list, "list", false, MsgFlagListTools)
	return cmd
}

func newBuildCmd(flags *rootFlags) *cobra.Command {
	var release bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "build",
		Short: MsgBuildShort,
	}
	cmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, MsgFlagJobs)

	opts := func() build.Options {
		return build.Options{
			ProjectDir: flags.projectDir,
			Release:    release,
			Jobs:       jobs,
		}
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := build.Check(opts())
			return err
		},
	}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: MsgBuildBuildShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := build.Build(opts())
			return err
		},
	}
	buildCmd.Flags().BoolVar(&release, "release", false, MsgFlagRelease)

	testCmd := &cobra.Command{
		Use:   "test",
		Short: MsgTestShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := build.Test(opts())
			return err
		},
	}

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: MsgCleanShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := build.Clean(opts())
			return err
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: MsgStatsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := build.Stats(opts())
			return err
		},
	}

	cmd.AddCommand(checkCmd, buildCmd, testCmd, cleanCmd, statsCmd)
	return cmd
}

func newDevCmd(flags *rootFlags) *cobra.Command {
	var release bool

	cmd := &cobra.Command{
		Use:   "dev",
		Short: MsgDevShort,
	}

	opts := func() dev.Options {
		return dev.Options{
			ProjectDir: flags.projectDir,
			Release:    release,
		}
	}

	quickCheckCmd := &cobra.Command{
		Use:   "quick-check",
		Short: MsgQuickCheckShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dev.QuickCheck(opts())
			return err
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: MsgWatchShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.NewPrinter().Status(MsgWatchStarted)
			return dev.Watch(cmd.Context(), dev.WatchOptions{
				Options: opts(),
				Paths:   args,
			})
		},
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: MsgProfileShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := dev.Profile(opts()); err != nil {
				return err
			}
			ui.NewPrinter().Success(MsgProfileReport)
			return nil
		},
	}

	cleanBuildCmd := &cobra.Command{
		Use:   "clean-build",
		Short: MsgCleanBuildShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dev.CleanBuild(opts())
			return err
		},
	}
	cleanBuildCmd.Flags().BoolVar(&release, "release", false, MsgFlagRelease)

	cmd.AddCommand(quickCheckCmd, watchCmd, profileCmd, cleanBuildCmd)
	return cmd
}

func newOptimizeCmd(flags *rootFlags) *cobra.Command {
	var all, clean, deps, benchmark bool

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: MsgOptimizeShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter()

			// Bare `atlas optimize` means everything.
			if !clean && !deps && !benchmark {
				all = true
			}

			result, err := optimize.Optimize(optimize.Options{
				ProjectDir: flags.projectDir,
				All:        all,
				Clean:      clean,
				Deps:       deps,
				Benchmark:  benchmark,
			})
			if err != nil {
				return err
			}

			if result.Cleaned {
				printer.Success(MsgCleanedArtifacts,
					result.RemovedFiles, ui.FormatBytes(result.ReclaimedBytes))
			}
			if result.DepsSkipped {
				printer.Warning("cargo-udeps not installed. Install with: atlas install-tools cargo-udeps")
			}
			if result.Benchmarked {
				printer.Success(MsgBenchmarkResult, ui.FormatDuration(result.CheckDuration))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagOptAll)
	cmd.Flags().BoolVar(&clean, "clean", false, MsgFlagOptClean)
	cmd.Flags().BoolVar(&deps, "deps", false, MsgFlagOptDeps)
	cmd.Flags().BoolVar(&benchmark, "benchmark", false, MsgFlagOptBench)
	return cmd
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	var detailed, asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := status.Status(status.Options{
				ProjectDir: flags.projectDir,
			})
			if err != nil {
				return err
			}

			if asJSON {
				out, err := report.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			printStatus(cmd.OutOrStdout(), report, detailed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, MsgFlagDetailed)
	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	return cmd
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}

	opts := func() configcmd.Options {
		return configcmd.Options{Confirm: ui.NewConsoleConfirmer()}
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := configcmd.Show(opts())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: MsgConfigEditShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := configcmd.Edit(opts())
			return err
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: MsgConfigResetShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter()
			done, err := configcmd.Reset(opts(), flags.force)
			if err != nil {
				return err
			}
			if done {
				printer.Success(MsgConfigResetOK)
			} else {
				printer.Status(MsgConfigResetNo)
			}
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: MsgConfigValidShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configcmd.Validate(opts()); err != nil {
				return err
			}
			ui.NewPrinter().Success(MsgConfigValidOK)
			return nil
		},
	}

	var format, output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: MsgConfigExportShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := configcmd.ParseExportFormat(format)
			if err != nil {
				return err
			}
			content, err := configcmd.Export(opts(), exportFormat, output)
			if err != nil {
				return err
			}
			if output != "" {
				ui.NewPrinter().Success(MsgExportedTo, output)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "toml", MsgFlagFormat)
	exportCmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)

	cmd.AddCommand(showCmd, editCmd, resetCmd, validateCmd, exportCmd)
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: MsgUpdateShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter()
			result, err := update.Update(update.Options{Check: check})
			if err != nil {
				return err
			}
			if result.Updated {
				printer.Success(MsgUpdateDone)
			} else {
				printer.Success(MsgUpdateLatest, result.CurrentVersion)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, MsgFlagCheckOnly)
	return cmd
}
