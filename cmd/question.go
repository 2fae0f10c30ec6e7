package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/draft"
	"github.com/abhisek/masterly/internal/tracker"
)

func newQuestionCmd(e *env) *cobra.Command {
	questionCmd := &cobra.Command{
		Use:   "question",
		Short: "Author and list questions",
	}
	questionCmd.AddCommand(newQuestionAddCmd(e), newQuestionListCmd(e), newQuestionDraftCmd(e))
	return questionCmd
}

func newQuestionAddCmd(e *env) *cobra.Command {
	var (
		topic, newTopic string
		in              tracker.QuestionInput
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question to an existing or new topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			if topic != "" {
				t, ok := e.svc.TopicByName(topic)
				if !ok {
					return apperr.NotFound("no topic named %q; use --new-topic to create it", topic)
				}
				in.TopicID = t.ID
			}
			in.NewTopic = newTopic
			q, err := e.svc.CreateQuestion(ctxOf(cmd), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added question %s (score %.2f)\n", q.ID, q.Score)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&topic, "topic", "", "Existing topic name")
	f.StringVar(&newTopic, "new-topic", "", "Create this topic for the question")
	f.StringVar(&in.Text, "text", "", "Question text")
	f.StringVarP(&in.Options.A, "a", "a", "", "Option A")
	f.StringVarP(&in.Options.B, "b", "b", "", "Option B")
	f.StringVarP(&in.Options.C, "c", "c", "", "Option C")
	f.StringVarP(&in.Options.D, "d", "d", "", "Option D")
	f.StringVar(&in.Correct, "correct", "", "Correct option letter")
	f.IntVar(&in.Difficulty, "difficulty", 0, "Difficulty level, 1-5")
	f.IntVar(&in.Effort, "effort", 0, "Expected effort in seconds, 10-300")
	cmd.MarkFlagsMutuallyExclusive("topic", "new-topic")
	return cmd
}

func newQuestionListCmd(e *env) *cobra.Command {
	var topic string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID := ""
			if topic != "" {
				t, ok := e.svc.TopicByName(topic)
				if !ok {
					return apperr.NotFound("no topic named %q", topic)
				}
				topicID = t.ID
			}
			qs := e.svc.ListQuestions(topicID)
			if len(qs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No questions yet.")
				return nil
			}
			for _, q := range qs {
				fmt.Fprintf(cmd.OutOrStdout(), "%5.2f  d%g  %3gs  %s\n", q.Score, q.Difficulty, q.Effort, q.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "Only this topic")
	return cmd
}

func newQuestionDraftCmd(e *env) *cobra.Command {
	var (
		topic      string
		guidance   string
		difficulty int
		save       bool
	)
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Ask the configured LLM to draft a question",
		Long: "Drafts a multiple-choice question for a topic with the configured LLM provider. " +
			"The draft is checked and printed; --save adds it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !e.cfg.LLMConfigured {
				return errors.New("no LLM provider configured; set ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY")
			}
			ctx := ctxOf(cmd)

			in := draft.Input{Topic: topic, Guidance: guidance, Difficulty: difficulty}
			t, known := e.svc.TopicByName(topic)
			if known {
				in.Topic = t.Name
				for _, q := range e.svc.ListQuestions(t.ID) {
					in.Existing = append(in.Existing, q.Text)
				}
			}

			provider, err := e.newProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.log)
			if err != nil {
				return err
			}
			d, err := draft.New(provider, draft.DefaultConfig(), e.log).Draft(ctx, in)
			if err != nil {
				return err
			}
			printDraft(cmd.OutOrStdout(), d)

			if !save {
				return nil
			}
			qi := tracker.QuestionInput{
				Text:       d.Text,
				Options:    d.Options,
				Correct:    string(d.Correct),
				Difficulty: d.Difficulty,
				Effort:     d.Effort,
			}
			if known {
				qi.TopicID = t.ID
			} else {
				qi.NewTopic = topic
			}
			q, err := e.svc.CreateQuestion(ctx, qi)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved as %s (score %.2f)\n", q.ID, q.Score)
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "Topic to draft for (created on --save if new)")
	cmd.Flags().StringVar(&guidance, "guidance", "", "Extra instructions, e.g. \"about rivers\"")
	cmd.Flags().IntVar(&difficulty, "difficulty", 0, "Pin the difficulty level, 1-5")
	cmd.Flags().BoolVar(&save, "save", false, "Add the draft to the question bank")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func printDraft(w io.Writer, d *draft.Draft) {
	fmt.Fprintln(w, d.Text)
	for _, o := range catalog.AllOptions {
		mark := " "
		if o == d.Correct {
			mark = "*"
		}
		fmt.Fprintf(w, " %s %s) %s\n", mark, o, d.Options.Text(o))
	}
	fmt.Fprintf(w, "difficulty %d, effort %ds\n", d.Difficulty, d.Effort)
	if d.Rationale != "" {
		fmt.Fprintf(w, "why: %s\n", d.Rationale)
	}
}
