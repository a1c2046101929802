package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Gameplay commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameSkipCmd())
	cmd.AddCommand(newGameAnswerCmd())
	cmd.AddCommand(newGameVoteCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var hostID string

	cmd := &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			req := map[string]string{"host_id": hostID}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/start", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&hostID, "host", "", "Host key from session create (required)")
	_ = cmd.MarkFlagRequired("host")

	return cmd
}

func newGameSkipCmd() *cobra.Command {
	var hostID string

	cmd := &cobra.Command{
		Use:   "skip <code>",
		Short: "Skip the current phase (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			req := map[string]string{"host_id": hostID}
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/skip", code), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Phase skipped")
			return nil
		},
	}

	cmd.Flags().StringVar(&hostID, "host", "", "Host key from session create (required)")
	_ = cmd.MarkFlagRequired("host")

	return cmd
}

func newGameAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <code> <text...>",
		Short: "Submit an answer for the current riddle",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			text := strings.Join(args[1:], " ")

			if cfg.PlayerID == "" {
				return fmt.Errorf("no player identity; join a session first or pass --player")
			}

			req := map[string]string{"player_id": cfg.PlayerID, "answer": text}
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/answers", code), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Answer submitted")
			return nil
		},
	}
}

func newGameVoteCmd() *cobra.Command {
	var voteType string

	cmd := &cobra.Command{
		Use:   "vote <code> <answer-id>",
		Short: "Vote for an answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			answerID := args[1]

			if cfg.PlayerID == "" {
				return fmt.Errorf("no player identity; join a session first or pass --player")
			}

			req := map[string]string{
				"voter_id":  cfg.PlayerID,
				"vote_type": voteType,
				"answer_id": answerID,
			}
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/votes", code), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Vote cast (%s)", voteType))
			return nil
		},
	}

	cmd.Flags().StringVar(&voteType, "type", "correct", "Vote type: correct, funniest")

	return cmd
}
