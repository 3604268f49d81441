package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"serverlister/core/games"

	"github.com/spf13/cobra"
)

// gamesCmd prints the supported games and their master server projects.
var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List supported games and master server projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printGames(cmd.OutOrStdout(), games.Default())
	},
}

func init() {
	RootCmd.AddCommand(gamesCmd)
}

func printGames(out io.Writer, table games.Table) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tGAMESPY NAME\tPROJECTS")
	for _, g := range table.Games() {
		projects := make([]string, 0, len(g.Projects))
		for _, p := range g.Projects {
			projects = append(projects, fmt.Sprintf("%s (%s)", p.Name, p.Address()))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.ID, g.GameName, strings.Join(projects, ", "))
	}
	return w.Flush()
}
