package main

import (
	"errors"
	"fmt"

	"github.com/ferraz/discovery-go/internal/format"
	"github.com/ferraz/discovery-go/internal/session"
	"github.com/ferraz/discovery-go/internal/ui"
	"github.com/spf13/cobra"
)

var flagResultsHTML string

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the most recent search results",
	Long: `Redisplay the last saved search results.

Results older than one hour are discarded. Use --html to export them
as a standalone page.`,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().StringVar(&flagResultsHTML, "html", "", "Write results to this HTML file")
}

func runResults(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer st.Close()

	bridge := session.NewBridge(st, logger)
	state, err := bridge.Restore()
	if err != nil {
		if errors.Is(err, session.ErrNothingToRestore) {
			render.RenderInfo("No recent results")
			return nil
		}
		render.RenderError(err.Error())
		return err
	}

	if state.Query != "" {
		render.RenderTitle("Results for: " + state.Query)
	}
	render.RenderResults(state.Results)

	if flagResultsHTML != "" {
		t := ui.Transcript{
			Title:    state.Query,
			Thoughts: state.ThoughtHistory,
			Results:  state.Results,
		}
		opts := format.Options{Italics: cfg.Italics}
		if err := ui.SaveTranscript(flagResultsHTML, t, opts); err != nil {
			render.RenderError(err.Error())
			return err
		}
		render.RenderSuccess(fmt.Sprintf("Saved %d results to %s", len(state.Results), flagResultsHTML))
	}

	return nil
}
