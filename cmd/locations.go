package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/config"
	"github.com/chatlens/chatlens/pkg/locations"
	"github.com/chatlens/chatlens/pkg/transcript"
)

// Locations command flags.
var (
	locationsCoordsOnly bool
	locationsOutput     string
)

// locationsReport is the machine-readable locations payload.
type locationsReport struct {
	Count         int                                  `json:"count" yaml:"count"`
	ByParticipant map[string]int                       `json:"by_participant" yaml:"by_participant"`
	BySource      map[transcript.LocationSource]int    `json:"by_source" yaml:"by_source"`
	Bounds        *locations.Bounds                    `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Shares        []locations.Share                    `json:"shares" yaml:"shares"`
}

// NewLocationsCommand creates the 'locations' command.
func NewLocationsCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "locations <export>",
		Short: "List locations shared in a chat export",
		Long: `List the locations shared in a chat export, grouped by sender and map
service, with the bounding box of all shares that carry coordinates.

Google Maps and Apple Maps links carry coordinates; Foursquare links carry a
venue name instead. Use --with-coords to keep only mappable shares.

Examples:
  chatlens locations chat.txt
  chatlens locations chat.txt --with-coords
  chatlens locations chat.zip -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocations(cmd, deps, args[0])
		},
	}

	cmd.Flags().BoolVar(&locationsCoordsOnly, "with-coords", false, "Only shares with coordinates")
	cmd.Flags().StringVarP(&locationsOutput, "output", "o", "", "Output format: text, json, yaml")

	return cmd
}

func runLocations(cmd *cobra.Command, deps *Deps, path string) error {
	format, err := deps.resolveOutput(locationsOutput)
	if err != nil {
		return err
	}

	result, err := deps.loadTranscript(path)
	if err != nil {
		return err
	}

	analyzer := locations.New(result.Messages)

	shares := analyzer.All()
	if locationsCoordsOnly {
		shares = analyzer.WithCoordinates()
	}

	report := &locationsReport{
		Count:         analyzer.Count(),
		ByParticipant: analyzer.CountByParticipant(),
		BySource:      analyzer.CountBySource(),
		Shares:        shares,
	}
	if b, ok := analyzer.BoundingBox(); ok {
		report.Bounds = &b
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(out, newReport(path, report))
	case config.OutputFormatYAML:
		return outputYAML(out, newReport(path, report))
	}
	return outputLocationsText(out, report)
}

func outputLocationsText(out io.Writer, r *locationsReport) error {
	fmt.Fprintf(out, "Locations shared: %d\n\n", r.Count)

	if len(r.BySource) > 0 {
		fmt.Fprintln(out, "By source:")
		for _, src := range []transcript.LocationSource{
			transcript.SourceGoogleMaps, transcript.SourceAppleMaps, transcript.SourceFoursquare,
		} {
			if n := r.BySource[src]; n > 0 {
				fmt.Fprintf(out, "  %-12s %d\n", src, n)
			}
		}
		fmt.Fprintln(out)
	}

	for _, s := range r.Shares {
		coords := "-"
		if s.HasCoordinates() {
			coords = fmt.Sprintf("%.5f, %.5f", *s.Latitude, *s.Longitude)
		}
		place := s.PlaceName
		if place == "" {
			place = string(s.Source)
		}
		fmt.Fprintf(out, "%s  %-20s %-24s %s\n",
			s.Timestamp.Format("2006-01-02 15:04"), truncate(s.Sender, 20), truncate(place, 24), coords)
	}

	if r.Bounds != nil {
		b := r.Bounds
		fmt.Fprintf(out, "\nBounding box: (%.5f, %.5f) to (%.5f, %.5f), center (%.5f, %.5f)\n",
			b.MinLatitude, b.MinLongitude, b.MaxLatitude, b.MaxLongitude,
			b.CenterLatitude, b.CenterLongitude)
	}
	return nil
}
