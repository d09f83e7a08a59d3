package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/config"
)

// Parse command flags.
var (
	parseParticipantsOnly bool
	parseLimit            int
	parseOutput           string
)

// NewParseCommand creates the 'parse' command.
func NewParseCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "parse <export>",
		Short: "Parse a chat export into structured messages",
		Long: `Parse a chat export file into structured messages.

Accepts a plain .txt export or the .zip archive the phone produces. Both the
Android and the iOS line formats are detected automatically, as are UTF-8 and
UTF-16 encodings.

Examples:
  chatlens parse chat.txt
  chatlens parse "Chat - Ava.zip"
  chatlens parse chat.txt --participants-only
  chatlens parse chat.txt --limit 20
  chatlens parse chat.txt -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, deps, args[0])
		},
	}

	cmd.Flags().BoolVar(&parseParticipantsOnly, "participants-only", false, "List participants instead of messages")
	cmd.Flags().IntVar(&parseLimit, "limit", 0, "Print at most this many messages (0 = all)")
	cmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Output format: text, json, yaml")

	return cmd
}

func runParse(cmd *cobra.Command, deps *Deps, path string) error {
	format, err := deps.resolveOutput(parseOutput)
	if err != nil {
		return err
	}

	result, err := deps.loadTranscript(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if parseParticipantsOnly {
		switch format {
		case config.OutputFormatJSON:
			return outputJSON(out, newReport(path, result.Participants))
		case config.OutputFormatYAML:
			return outputYAML(out, newReport(path, result.Participants))
		default:
			for _, p := range result.Participants {
				fmt.Fprintln(out, p)
			}
			return nil
		}
	}

	messages := result.Messages
	if parseLimit > 0 && len(messages) > parseLimit {
		messages = messages[:parseLimit]
	}

	switch format {
	case config.OutputFormatJSON:
		return outputJSON(out, newReport(path, messages))
	case config.OutputFormatYAML:
		return outputYAML(out, newReport(path, messages))
	}

	fmt.Fprintf(out, "Format: %s\n", result.Format)
	fmt.Fprintf(out, "Participants: %d\n", len(result.Participants))
	fmt.Fprintf(out, "Messages: %d\n\n", len(result.Messages))
	for _, m := range messages {
		tag := ""
		switch {
		case m.IsSystem:
			tag = " [system]"
		case m.IsMedia:
			tag = fmt.Sprintf(" [%s]", m.MediaKind)
		}
		fmt.Fprintf(out, "%s  %s:%s %s\n",
			m.Timestamp.Format("2006-01-02 15:04"), m.Sender, tag, truncate(m.Content, 120))
	}
	return nil
}
