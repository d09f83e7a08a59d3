package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/config"
	"github.com/chatlens/chatlens/pkg/patterns"
)

// Patterns command flags.
var (
	patternsGapHours    float64
	patternsMaxResponse float64
	patternsOutput      string
)

// participantPatterns holds the response metrics for one participant.
type participantPatterns struct {
	Participant    string  `json:"participant" yaml:"participant"`
	Responses      int     `json:"responses" yaml:"responses"`
	AvgMinutes     float64 `json:"avg_response_minutes,omitempty" yaml:"avg_response_minutes,omitempty"`
	MedianMinutes  float64 `json:"median_response_minutes,omitempty" yaml:"median_response_minutes,omitempty"`
	Conversations  int     `json:"conversations_started" yaml:"conversations_started"`
}

// patternsReport is the machine-readable patterns payload.
type patternsReport struct {
	GapHours           float64               `json:"conversation_gap_hours" yaml:"conversation_gap_hours"`
	MaxResponseMinutes float64               `json:"max_response_minutes" yaml:"max_response_minutes"`
	Participants       []participantPatterns `json:"participants" yaml:"participants"`
}

// NewPatternsCommand creates the 'patterns' command.
func NewPatternsCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "patterns <export>",
		Short: "Analyze conversation dynamics in a chat export",
		Long: `Analyze conversation dynamics: how quickly each participant responds
and who starts conversations after a silence.

A response is a message immediately following one from another participant;
gaps longer than --max-response minutes do not count as responses. A message
after more than --gap hours of silence starts a new conversation.

Examples:
  chatlens patterns chat.txt
  chatlens patterns chat.txt --gap 12
  chatlens patterns chat.txt --max-response 240 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatterns(cmd, deps, args[0])
		},
	}

	cmd.Flags().Float64Var(&patternsGapHours, "gap", 0, "Silence hours that start a new conversation (default from config)")
	cmd.Flags().Float64Var(&patternsMaxResponse, "max-response", 0, "Longest gap in minutes still counted as a response (default from config)")
	cmd.Flags().StringVarP(&patternsOutput, "output", "o", "", "Output format: text, json, yaml")

	return cmd
}

func runPatterns(cmd *cobra.Command, deps *Deps, path string) error {
	format, err := deps.resolveOutput(patternsOutput)
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

	gapHours := cfg.Analysis.ConversationGapHours
	if patternsGapHours > 0 {
		gapHours = patternsGapHours
	}
	maxRespMinutes := cfg.Analysis.MaxResponseTimeMinutes
	if patternsMaxResponse > 0 {
		maxRespMinutes = patternsMaxResponse
	}

	gap := time.Duration(gapHours * float64(time.Hour))
	maxResponse := time.Duration(maxRespMinutes * float64(time.Minute))
	analyzer := patterns.New(result.Messages, gap, maxResponse)

	starters := analyzer.ConversationStarters()
	report := &patternsReport{
		GapHours:           gapHours,
		MaxResponseMinutes: maxRespMinutes,
	}
	for _, p := range result.Participants {
		pp := participantPatterns{
			Participant:   p,
			Responses:     len(analyzer.ResponseTimes(p)),
			Conversations: starters[p],
		}
		if avg, ok := analyzer.AvgResponseTime(p); ok {
			pp.AvgMinutes = avg.Minutes()
		}
		if med, ok := analyzer.MedianResponseTime(p); ok {
			pp.MedianMinutes = med.Minutes()
		}
		report.Participants = append(report.Participants, pp)
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(out, newReport(path, report))
	case config.OutputFormatYAML:
		return outputYAML(out, newReport(path, report))
	}
	return outputPatternsText(out, report)
}

func outputPatternsText(out io.Writer, r *patternsReport) error {
	fmt.Fprintf(out, "Conversation gap: %.1fh, response cap: %.0fm\n\n", r.GapHours, r.MaxResponseMinutes)
	fmt.Fprintf(out, "%-20s %10s %12s %12s %14s\n", "PARTICIPANT", "RESPONSES", "AVG", "MEDIAN", "CONVERSATIONS")
	for _, pp := range r.Participants {
		avg, med := "-", "-"
		if pp.Responses > 0 {
			avg = formatDuration(time.Duration(pp.AvgMinutes * float64(time.Minute)))
			med = formatDuration(time.Duration(pp.MedianMinutes * float64(time.Minute)))
		}
		fmt.Fprintf(out, "%-20s %10d %12s %12s %14d\n",
			truncate(pp.Participant, 20), pp.Responses, avg, med, pp.Conversations)
	}
	return nil
}
