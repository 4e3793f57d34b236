package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ferraz/discovery-go/internal/dispatch"
	"github.com/ferraz/discovery-go/internal/format"
	"github.com/ferraz/discovery-go/internal/session"
	"github.com/ferraz/discovery-go/internal/ui"
	"github.com/ferraz/discovery-go/pkg/models"
	"github.com/spf13/cobra"
)

var (
	flagChatTitle       string
	flagChatURL         string
	flagChatDescription string
	flagChatType        string
	flagChatFromLast    int
	flagChatTranscript  string
	flagChatSync        bool
	flagChatReset       bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat about a discovered item",
	Long: `Start an interactive chat session about a content item.

The item can be given explicitly with --title/--url, or picked from the
most recent search results with --from-last N. Type 'exit' to leave.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&flagChatTitle, "title", "", "Item title")
	chatCmd.Flags().StringVar(&flagChatURL, "url", "", "Item URL")
	chatCmd.Flags().StringVar(&flagChatDescription, "description", "", "Item description")
	chatCmd.Flags().StringVar(&flagChatType, "type", "article", "Item type (article, video, podcast, blog)")
	chatCmd.Flags().IntVar(&flagChatFromLast, "from-last", 0, "Pick item N from the last saved results")
	chatCmd.Flags().StringVar(&flagChatTranscript, "transcript", "", "Write an HTML transcript to this file on exit")
	chatCmd.Flags().BoolVar(&flagChatSync, "sync-history", false, "Load the backend's stored conversation first")
	chatCmd.Flags().BoolVar(&flagChatReset, "reset", false, "Clear the backend's session for this item first")
}

// resolveArticle picks the chat subject from flags or saved results.
func resolveArticle(bridge *session.Bridge) (models.ContentItem, error) {
	if flagChatFromLast > 0 {
		state, err := bridge.Restore()
		if err != nil {
			return models.ContentItem{}, fmt.Errorf("no recent results to pick from")
		}
		if flagChatFromLast > len(state.Results) {
			return models.ContentItem{}, fmt.Errorf("index out of range: %d (have %d results)", flagChatFromLast, len(state.Results))
		}
		return state.Results[flagChatFromLast-1], nil
	}

	if flagChatTitle == "" && flagChatURL == "" {
		return models.ContentItem{}, fmt.Errorf("specify --title/--url or --from-last")
	}

	return models.ContentItem{
		Type:        models.ContentType(flagChatType),
		Title:       flagChatTitle,
		URL:         flagChatURL,
		Description: flagChatDescription,
	}, nil
}

func runChat(cmd *cobra.Command, args []string) error {
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

	bridge := session.NewBridge(st, logger)
	article, err := resolveArticle(bridge)
	if err != nil {
		render.RenderError(err.Error())
		return err
	}

	if flagChatReset {
		if err := cli.ClearChat(article); err != nil {
			logger.Warnf("failed to clear backend chat session: %v", err)
		}
	}

	sess := session.New()
	// No persister: a chat session carries no results, and saving it would
	// overwrite the last search snapshot with an empty one.
	d := dispatch.New(sess, render, logger, nil)

	if flagChatSync {
		turns, err := cli.ChatHistory(article)
		if err != nil {
			logger.Warnf("failed to load backend history: %v", err)
		} else if len(turns) > 0 {
			sess.SetHistory(turns)
			render.RenderInfo(fmt.Sprintf("Loaded %d prior turns", len(turns)))
		}
	}

	title := article.Title
	if title == "" {
		title = article.URL
	}
	render.RenderTitle("Chat: " + title)
	render.RenderInfo("Type a message, or 'exit' to leave")
	render.NewLine()

	ctx, cancel := signalContext()
	defer cancel()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		// History travels without the current message; the message is its
		// own request field.
		prior := sess.History()
		sess.AppendTurn(models.ConversationTurn{Role: models.RoleUser, Content: message})

		gen := d.Begin(message)
		ch, err := cli.ChatStream(ctx, message, article, prior)
		if err != nil {
			render.RenderError(err.Error())
			break
		}

		for ev := range ch {
			d.Dispatch(gen, ev)
		}
		render.NewLine()

		if ctx.Err() != nil {
			break
		}

		if d.Phase() == dispatch.PhaseComplete && !flagIncognito {
			var response string
			if last, ok := sess.LastTurn(); ok && last.Role == models.RoleAssistant {
				response = last.Content
			}
			appendHistory(models.HistoryEntry{
				Kind:     "chat",
				Query:    message,
				Response: truncateResponse(response, 500),
			})
		}
	}

	if flagChatTranscript != "" {
		t := ui.Transcript{
			Title:    title,
			Turns:    sess.History(),
			Thoughts: sess.ThoughtHistory(),
		}
		opts := format.Options{Italics: cfg.Italics}
		if err := ui.SaveTranscript(flagChatTranscript, t, opts); err != nil {
			render.RenderError(err.Error())
			return err
		}
		render.RenderSuccess("Transcript saved to " + flagChatTranscript)
	}

	return nil
}
