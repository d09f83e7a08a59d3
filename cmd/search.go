package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/config"
	"github.com/chatlens/chatlens/pkg/stats"
)

// Search command flags.
var (
	searchCaseSensitive bool
	searchFrom          string
	searchOutput        string
)

// NewSearchCommand creates the 'search' command.
func NewSearchCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "search <export> <keyword>",
		Short: "Search messages in a chat export",
		Long: `Search message bodies for a keyword. Matching is case-insensitive
unless --case-sensitive is set.

Examples:
  chatlens search chat.txt dinner
  chatlens search chat.txt Dinner --case-sensitive
  chatlens search chat.txt dinner --from "Ava"
  chatlens search chat.zip dinner -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, deps, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Match case exactly")
	cmd.Flags().StringVar(&searchFrom, "from", "", "Only messages from this participant")
	cmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Output format: text, json, yaml")

	return cmd
}

func runSearch(cmd *cobra.Command, deps *Deps, path, keyword string) error {
	format, err := deps.resolveOutput(searchOutput)
	if err != nil {
		return err
	}

	result, err := deps.loadTranscript(path)
	if err != nil {
		return err
	}

	cfg, err := deps.resolveConfig()
	if err != nil {
		return err
	}

	analyzer := stats.New(result, cfg.Analysis.MinWordLength)
	hits := analyzer.Search(keyword, searchCaseSensitive)
	if searchFrom != "" {
		filtered := hits[:0]
		for _, m := range hits {
			if m.Sender == searchFrom {
				filtered = append(filtered, m)
			}
		}
		hits = filtered
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(out, newReport(path, hits))
	case config.OutputFormatYAML:
		return outputYAML(out, newReport(path, hits))
	}

	fmt.Fprintf(out, "%d matches for %q\n\n", len(hits), keyword)
	for _, m := range hits {
		fmt.Fprintf(out, "%s  %s: %s\n",
			m.Timestamp.Format("2006-01-02 15:04"), m.Sender, truncate(m.Content, 120))
	}
	return nil
}
