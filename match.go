/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Seednode/flames/games/flames"
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match NAME NAME",
		Short: "Play a single round from the command line and print the trace.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := flames.Play(args[0], args[1])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(round)
			}

			return writeTrace(cmd.OutOrStdout(), round)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the round as JSON")

	return cmd
}

func writeTrace(w io.Writer, round flames.Round) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s & %s\n\n", round.NameA.Original, round.NameB.Original)

	for _, p := range round.Cancellation.Pairs {
		fmt.Fprintf(&b, "STRIKE: %s (%d <-> %d)\n", p.Letter, p.IndexA, p.IndexB)
	}
	fmt.Fprintf(&b, "REMAINING: %d\n\n", round.Cancellation.Remaining)

	for _, s := range round.Elimination.Order {
		fmt.Fprintf(&b, "ROUND %d: counted %d from %d, struck %s\n",
			s.Round+1, round.Elimination.Count, s.Start, s.Letter)
	}

	fmt.Fprintf(&b, "\nResult: %s %s\n%s\n",
		round.Relationship.Icon, round.Relationship.Name, round.Relationship.Message)

	_, err := io.WriteString(w, b.String())

	return err
}
