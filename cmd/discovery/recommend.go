package main

import (
	"fmt"

	"github.com/ferraz/discovery-go/internal/dispatch"
	"github.com/ferraz/discovery-go/internal/session"
	"github.com/ferraz/discovery-go/pkg/models"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get personalized content recommendations",
	Long:  `Stream recommendations based on your activity profile.`,
	RunE:  runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer st.Close()

	cli, err := newClient(st)
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer cli.Close()

	sess := session.New()
	bridge := session.NewBridge(st, logger)
	d := dispatch.New(sess, render, logger, bridge)

	ctx, cancel := signalContext()
	defer cancel()

	gen := d.Begin("recommendations")
	ch, err := cli.RecommendationsStream(ctx)
	if err != nil {
		render.RenderError(err.Error())
		return err
	}

	for ev := range ch {
		d.Dispatch(gen, ev)
	}
	render.NewLine()

	if d.Phase() == dispatch.PhaseError {
		return fmt.Errorf("recommendations failed")
	}

	if d.Phase() == dispatch.PhaseComplete && !flagIncognito {
		var response string
		if last, ok := sess.LastTurn(); ok && last.Role == models.RoleAssistant {
			response = last.Content
		}
		appendHistory(models.HistoryEntry{
			Kind:     "recommend",
			Query:    "recommendations",
			Response: truncateResponse(response, 500),
		})
	}

	return nil
}
