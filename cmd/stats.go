package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/config"
	"github.com/chatlens/chatlens/pkg/stats"
	"github.com/chatlens/chatlens/pkg/transcript"
)

// Stats command flags.
var (
	statsTopWords    int
	statsEmoji       bool
	statsParticipant string
	statsOutput      string
)

// statsReport is the machine-readable stats payload.
type statsReport struct {
	Format           string                        `json:"format" yaml:"format"`
	MessageCount     int                           `json:"message_count" yaml:"message_count"`
	MediaCount       int                           `json:"media_count" yaml:"media_count"`
	LinkCount        int                           `json:"link_count" yaml:"link_count"`
	Participants     []string                      `json:"participants" yaml:"participants"`
	FirstMessage     time.Time                     `json:"first_message" yaml:"first_message"`
	LastMessage      time.Time                     `json:"last_message" yaml:"last_message"`
	DurationDays     int                           `json:"duration_days" yaml:"duration_days"`
	ByParticipant    map[string]int                `json:"messages_by_participant" yaml:"messages_by_participant"`
	MediaBy          map[string]int                `json:"media_by_participant" yaml:"media_by_participant"`
	AvgLength        map[string]float64            `json:"avg_message_length" yaml:"avg_message_length"`
	MediaKinds       map[transcript.MediaKind]int  `json:"media_kinds" yaml:"media_kinds"`
	ByHour           map[int]int                   `json:"messages_by_hour" yaml:"messages_by_hour"`
	ByWeekday        map[string]int                `json:"messages_by_weekday" yaml:"messages_by_weekday"`
	ByMonth          map[string]int                `json:"messages_by_month" yaml:"messages_by_month"`
	MostActive       string                        `json:"most_active_participant" yaml:"most_active_participant"`
	MostActiveHour   *int                          `json:"most_active_hour,omitempty" yaml:"most_active_hour,omitempty"`
	MostActiveDate   string                        `json:"most_active_date" yaml:"most_active_date"`
	TopWords         []stats.WordCount             `json:"top_words,omitempty" yaml:"top_words,omitempty"`
	TopEmoji         []stats.WordCount             `json:"top_emoji,omitempty" yaml:"top_emoji,omitempty"`
	LinksByPart      map[string][]string           `json:"links_by_participant,omitempty" yaml:"links_by_participant,omitempty"`
}

// NewStatsCommand creates the 'stats' command.
func NewStatsCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "stats <export>",
		Short: "Show message statistics for a chat export",
		Long: `Show message statistics for a chat export: totals, per-participant
activity, activity over time, media breakdown, and word/emoji frequency.

Examples:
  chatlens stats chat.txt
  chatlens stats chat.txt --top 30
  chatlens stats chat.txt --emoji
  chatlens stats chat.txt --participant "Ava" --top 15
  chatlens stats chat.zip -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, deps, args[0])
		},
	}

	cmd.Flags().IntVar(&statsTopWords, "top", 20, "Size of the word frequency table")
	cmd.Flags().BoolVar(&statsEmoji, "emoji", false, "Include an emoji frequency table")
	cmd.Flags().StringVar(&statsParticipant, "participant", "", "Restrict frequency tables to one participant")
	cmd.Flags().StringVarP(&statsOutput, "output", "o", "", "Output format: text, json, yaml")

	return cmd
}

func runStats(cmd *cobra.Command, deps *Deps, path string) error {
	format, err := deps.resolveOutput(statsOutput)
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
	report := buildStatsReport(result, analyzer)
	if statsEmoji {
		report.TopEmoji = analyzer.EmojiFrequency(statsTopWords, statsParticipant)
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(out, newReport(path, report))
	case config.OutputFormatYAML:
		return outputYAML(out, newReport(path, report))
	}
	return outputStatsText(out, report)
}

func buildStatsReport(result *transcript.Result, analyzer *stats.Analyzer) *statsReport {
	first, last := analyzer.TimeRange()

	byWeekday := make(map[string]int)
	for day, n := range analyzer.MessagesByWeekday() {
		byWeekday[day.String()] = n
	}

	r := &statsReport{
		Format:         result.Format,
		MessageCount:   analyzer.MessageCount(),
		MediaCount:     analyzer.MediaCount(),
		LinkCount:      analyzer.LinkCount(),
		Participants:   analyzer.Participants(),
		FirstMessage:   first,
		LastMessage:    last,
		DurationDays:   analyzer.DurationDays(),
		ByParticipant:  analyzer.MessagesByParticipant(),
		MediaBy:        analyzer.MediaByParticipant(),
		AvgLength:      analyzer.AvgMessageLengthByParticipant(),
		MediaKinds:     analyzer.MediaKinds(),
		ByHour:         analyzer.MessagesByHour(),
		ByWeekday:      byWeekday,
		ByMonth:        analyzer.MessagesByMonth(),
		MostActive:     analyzer.MostActiveParticipant(),
		MostActiveDate: analyzer.MostActiveDate(),
		TopWords:       analyzer.WordFrequency(statsTopWords, statsParticipant),
		LinksByPart:    analyzer.LinksByParticipant(),
	}
	if hour, ok := analyzer.MostActiveHour(); ok {
		r.MostActiveHour = &hour
	}
	return r
}

func outputStatsText(out io.Writer, r *statsReport) error {
	fmt.Fprintf(out, "Format:       %s\n", r.Format)
	fmt.Fprintf(out, "Messages:     %d (%d media, %d links)\n", r.MessageCount, r.MediaCount, r.LinkCount)
	fmt.Fprintf(out, "Participants: %d\n", len(r.Participants))
	if !r.FirstMessage.IsZero() {
		fmt.Fprintf(out, "Period:       %s to %s (%d days)\n",
			r.FirstMessage.Format("2006-01-02"), r.LastMessage.Format("2006-01-02"), r.DurationDays)
	}
	fmt.Fprintln(out)

	if len(r.ByParticipant) > 0 {
		fmt.Fprintln(out, "Messages by participant:")
		width := terminalWidth() - 40
		max := 0
		for _, n := range r.ByParticipant {
			if n > max {
				max = n
			}
		}
		for _, p := range r.Participants {
			n := r.ByParticipant[p]
			fmt.Fprintf(out, "  %-20s %6d  %s\n", truncate(p, 20), n, bar(n, max, width))
		}
		fmt.Fprintln(out)
	}

	if len(r.MediaKinds) > 0 {
		fmt.Fprintln(out, "Media:")
		kinds := make([]string, 0, len(r.MediaKinds))
		for k := range r.MediaKinds {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(out, "  %-12s %d\n", k, r.MediaKinds[transcript.MediaKind(k)])
		}
		fmt.Fprintln(out)
	}

	if len(r.ByHour) > 0 {
		fmt.Fprintln(out, "Activity by hour:")
		width := terminalWidth() - 20
		max := 0
		for _, n := range r.ByHour {
			if n > max {
				max = n
			}
		}
		for hour := 0; hour < 24; hour++ {
			n, ok := r.ByHour[hour]
			if !ok {
				continue
			}
			fmt.Fprintf(out, "  %02d:00 %6d  %s\n", hour, n, bar(n, max, width))
		}
		fmt.Fprintln(out)
	}

	if r.MostActive != "" {
		fmt.Fprintf(out, "Most active participant: %s\n", r.MostActive)
	}
	if r.MostActiveHour != nil {
		fmt.Fprintf(out, "Most active hour:        %02d:00\n", *r.MostActiveHour)
	}
	if r.MostActiveDate != "" {
		fmt.Fprintf(out, "Most active date:        %s\n", r.MostActiveDate)
	}
	fmt.Fprintln(out)

	if len(r.TopWords) > 0 {
		fmt.Fprintln(out, "Top words:")
		for _, wc := range r.TopWords {
			fmt.Fprintf(out, "  %-20s %d\n", wc.Word, wc.Count)
		}
		fmt.Fprintln(out)
	}

	if len(r.TopEmoji) > 0 {
		fmt.Fprintln(out, "Top emoji:")
		for _, wc := range r.TopEmoji {
			fmt.Fprintf(out, "  %-4s %d\n", wc.Word, wc.Count)
		}
	}
	return nil
}
