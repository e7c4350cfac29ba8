// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"runcshim/internal/runc"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List containers under the configured runtime root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRuncClient()
		if err != nil {
			return err
		}
		containers, err := client.List(cmd.Context())
		if err != nil {
			return describeFailure("list containers", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPID\tSTATUS\tBUNDLE\tCREATED")
		for _, c := range containers {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
				c.ID, c.Pid, c.Status, c.Bundle, c.Created.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var psCmd = &cobra.Command{
	Use:   "ps <container-id>",
	Short: "List the pids of every process inside a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRuncClient()
		if err != nil {
			return err
		}
		pids, err := client.Ps(cmd.Context(), args[0])
		if err != nil {
			return describeFailure("list processes", err)
		}
		for _, pid := range pids {
			fmt.Println(pid)
		}
		return nil
	},
}

var stateCmd = &cobra.Command{
	Use:   "state <container-id>",
	Short: "Show a container's state document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRuncClient()
		if err != nil {
			return err
		}
		state, err := client.State(cmd.Context(), args[0])
		if err != nil {
			return describeFailure("query state", err)
		}
		return printJSON(state)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <container-id>",
	Short: "Show a container's resource statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRuncClient()
		if err != nil {
			return err
		}
		stats, err := client.Stats(cmd.Context(), args[0])
		if err != nil {
			return describeFailure("query stats", err)
		}
		return printJSON(stats)
	},
}

var runtimeVersionCmd = &cobra.Command{
	Use:   "runtime-version",
	Short: "Show the configured runtime binary's version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRuncClient()
		if err != nil {
			return err
		}
		v, err := client.RuncVersion(cmd.Context())
		if err != nil {
			return describeFailure("query version", err)
		}
		fmt.Printf("runc: %s\nspec: %s\ncommit: %s\n", v.Runc, v.Spec, v.Commit)
		return nil
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeFailure keeps the runtime's own complaint visible: an ExitError
// carries both captured streams verbatim and they are what the operator
// needs to see.
func describeFailure(op string, err error) error {
	var exitErr *runc.ExitError
	if errors.As(err, &exitErr) {
		logger.Error("runtime command failed",
			"op", op, "status", exitErr.Status, "stderr", exitErr.Stderr)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
