package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/sarchlab/gatepipe/scenario"
)

var errScenariosFailed = errors.New("some scenarios failed")

var checkCmd = &cobra.Command{
	Use:   "check [scenario.yaml...]",
	Short: "Run scenario files and compare the final state with expectations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		builtin, _ := cmd.Flags().GetBool("builtin")
		watch, _ := cmd.Flags().GetBool("watch")

		if len(args) == 0 && !builtin {
			return errors.New("no scenario given, pass files or --builtin")
		}

		out := cmd.OutOrStdout()
		err := checkScenarios(out, args, builtin)

		if !watch {
			return err
		}

		if len(args) == 0 {
			return errors.New("--watch needs scenario files")
		}

		return watchScenarios(out, args, newLogger())
	},
}

func init() {
	checkCmd.Flags().Bool("builtin", false, "also run the built-in scenarios")
	checkCmd.Flags().Bool("watch", false, "run the files again whenever they change")
}

// checkScenarios runs every scenario and prints a report for each.
func checkScenarios(w io.Writer, paths []string, builtin bool) error {
	var scenarios []*scenario.Scenario

	if builtin {
		scenarios = append(scenarios, scenario.Builtin()...)
	}

	for _, p := range paths {
		s, err := scenario.Load(p)
		if err != nil {
			return err
		}

		scenarios = append(scenarios, s)
	}

	failed := 0

	for _, s := range scenarios {
		r, err := scenario.Run(s)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}

		r.Print(w)

		if !r.Passed() {
			failed++
		}
	}

	fmt.Fprintf(w, "%d scenarios, %d failed\n", len(scenarios), failed)

	if failed > 0 {
		return errScenariosFailed
	}

	return nil
}

func watchScenarios(w io.Writer, paths []string, logger hclog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool)

	// Editors replace files on save, so the directories are watched.
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}

		watched[abs] = true

		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	logger.Info("watching scenarios", "files", len(paths))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !watched[event.Name] ||
				!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			logger.Debug("scenario changed", "file", event.Name)

			if err := checkScenarios(w, paths, false); err != nil {
				logger.Warn("check failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Error("watch error", "error", err)
		}
	}
}
