package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"researchbot"
	"researchbot/internal/presentation/tui"
	"researchbot/pkg/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat [topic]",
	Short: "Start an interactive research dialogue in the terminal",
	Long: `Opens a dialogue session on the terminal. The topic can be passed as an
argument; otherwise you are prompted for it. The session walks through
answering, an optional comprehension quiz and topic switching until you
decide to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := createLogger(cmd, cfg)

		app, err := researchbot.New(cfg, researchbot.WithLogger(logger))
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		render := func(s string) string { return s }
		if interactive {
			tui.PrintBanner()
			render = tui.NewRenderer()
		}

		if err := app.Retrieval().EnsureReady(ctx); err != nil {
			logger.Warn("document index unavailable, falling back to model knowledge", "err", err)
		}

		reader := bufio.NewReader(os.Stdin)
		topic := ""
		if len(args) > 0 {
			topic = strings.TrimSpace(args[0])
		}
		for topic == "" {
			fmt.Print("What would you like to research? ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			topic = strings.TrimSpace(line)
		}

		ctrl, err := app.NewSession()
		if err != nil {
			return err
		}

		events, err := ctrl.Start(ctx, topic)
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		for {
			prompt := printEvents(events, render)
			if ctrl.Phase() != session.PhaseAwaitingInput {
				return nil
			}
			fmt.Print(prompt + " ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			events, err = ctrl.Resume(ctx, strings.TrimSpace(line))
			if err != nil {
				return fmt.Errorf("resume session: %w", err)
			}
		}
	},
}

// printEvents renders assistant messages and returns the prompt line for
// the pending input request, if any.
func printEvents(events []session.Event, render func(string) string) string {
	prompt := ""
	for _, ev := range events {
		switch {
		case ev.Message != nil:
			fmt.Print(render(ev.Message.Content))
			fmt.Println()
		case ev.Request != nil:
			prompt = ev.Request.Prompt
			if !ev.Request.FreeText() {
				prompt = fmt.Sprintf("%s [%s]", prompt, strings.Join(ev.Request.Options, "/"))
			}
		}
	}
	return prompt
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
