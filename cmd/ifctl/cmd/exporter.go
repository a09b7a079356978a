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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebook/ifctl/exporter"
	"github.com/facebook/ifctl/iface"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	exporterPortFlag int
	exporterAllFlag  bool
)

func init() {
	RootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().IntVarP(&exporterPortFlag, "port", "p", 9467, "port to serve /metrics on")
	exporterCmd.Flags().BoolVarP(&exporterAllFlag, "all", "a", false, "report every link via rtnetlink, not only those with an IPv4 address")
}

func exporterRun(port int, all bool) error {
	var lister exporter.Lister = iface.Default
	if all {
		lister = exporter.ListerFunc(func() ([]iface.Result, error) {
			return iface.ListAll(iface.NetlinkLister{})
		})
	}
	e, err := exporter.NewPrometheusExporter(fmt.Sprintf(":%d", port), exporter.NewCollector(lister))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return e.Start(ctx)
}

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Serve interface state as Prometheus metrics",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()

		if err := exporterRun(exporterPortFlag, exporterAllFlag); err != nil {
			log.Fatal(err)
		}
	},
}
