/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebook/ifctl/iface"
	"github.com/facebook/ifctl/ifconfig"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	applyConfigFlag string
	applyIfaceFlag  []string
	applyStateFlag  string
	applyWatchFlag  bool
)

func init() {
	RootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&applyConfigFlag, "config", "c", "/etc/ifctl.yaml", "path to the config")
	applyCmd.Flags().StringSliceVarP(&applyIfaceFlag, "iface", "i", nil, "only apply to these interfaces")
	applyCmd.Flags().StringVarP(&applyStateFlag, "state", "s", "", "override state of every interface: up or down")
	applyCmd.Flags().BoolVarP(&applyWatchFlag, "watch", "w", false, "keep running and re-apply whenever the config changes")
}

func printResults(w io.Writer, results []ifconfig.Result) error {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(w, failString(), r.Name, r.Err)
			continue
		}
		fmt.Fprintln(w, okString(), r.Name, r.Changed)
	}
	if failed := ifconfig.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d interfaces failed", len(failed), len(results))
	}
	return nil
}

func applyRun(cfg *ifconfig.Config, watch bool, path string, prepare func(*ifconfig.Config)) error {
	open := ifconfig.ControllerOpener(iface.Default)
	err := printResults(os.Stdout, ifconfig.Apply(open, cfg))
	if !watch {
		return err
	}
	if err != nil {
		log.Error(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = ifconfig.Watch(ctx, path, prepare, func(cfg *ifconfig.Config) {
		if err := printResults(os.Stdout, ifconfig.Apply(open, cfg)); err != nil {
			log.Error(err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge interfaces to the state described in a config file",
	Run: func(c *cobra.Command, _ []string) {
		ConfigureVerbosity()

		setFlags := map[string]bool{
			"iface": c.Flags().Changed("iface"),
			"state": c.Flags().Changed("state"),
		}
		cfg, err := ifconfig.PrepareConfig(applyConfigFlag, applyIfaceFlag, applyStateFlag, setFlags)
		if err != nil {
			log.Fatal(err)
		}
		// reloads keep the CLI overrides
		prepare := func(cfg *ifconfig.Config) {
			ifconfig.ApplyOverrides(cfg, applyIfaceFlag, applyStateFlag, setFlags)
		}
		if err := applyRun(cfg, applyWatchFlag, applyConfigFlag, prepare); err != nil {
			log.Fatal(err)
		}
	},
}
