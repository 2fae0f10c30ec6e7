package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/masterly/internal/app"
	"github.com/abhisek/masterly/internal/config"
	"github.com/abhisek/masterly/internal/llm"
	"github.com/abhisek/masterly/internal/logging"
	"github.com/abhisek/masterly/internal/store"
	"github.com/abhisek/masterly/internal/tracker"
)

// env is what every command except version works with. It is filled in
// by the root command's PersistentPreRunE and released by execute.
type env struct {
	cfg   *config.Config
	log   *logging.Logger
	store *store.Store
	svc   *tracker.Service

	// newProvider builds the LLM provider for drafting.
	newProvider func(ctx context.Context, cfg llm.Config, rec llm.Recorder, log *logging.Logger) (llm.Provider, error)
}

// Execute runs the command line.
func Execute() error {
	e := &env{newProvider: llm.New}
	return e.execute(newRootCmd(e))
}

// execute runs root and closes the store whether or not the command failed.
// Cobra skips post-run hooks after an error.
func (e *env) execute(root *cobra.Command) error {
	defer e.close()
	return root.Execute()
}

func newRootCmd(e *env) *cobra.Command {
	var o config.Overrides

	root := &cobra.Command{
		Use:   "masterly",
		Short: "Multiple-choice quizzes that track what you have mastered",
		Long: "masterly asks you the questions you have not answered correctly yet, " +
			"scores each answer by difficulty and effort, and keeps going until you know them all.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd.Context(), o, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(e.svc, e.log)
		},
	}

	root.PersistentFlags().StringVar(&o.DBPath, "db", "", "Path to SQLite database file (overrides MASTERLY_DB)")
	root.PersistentFlags().StringVar(&o.LogFile, "log-file", "", "Log file path, - for stderr (overrides MASTERLY_LOG_FILE)")
	root.PersistentFlags().StringVar(&o.LogLevel, "log-level", "", "debug, info, warn or error (overrides MASTERLY_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&o.EnvFile, "env-file", "", "dotenv file to load (default .env)")

	root.AddCommand(
		newUserCmd(e),
		newTopicCmd(e),
		newQuestionCmd(e),
		newStatsCmd(e),
		newExportCmd(e),
		newImportCmd(e),
		newResetCmd(e),
		newHistoryCmd(e),
		newLLMCmd(e),
		newVersionCmd(),
	)
	return root
}

func (e *env) open(ctx context.Context, o config.Overrides, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(o)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("open database failed", "path", cfg.DBPath, "error", err)
		log.Sync()
		return fmt.Errorf("open database: %w", err)
	}

	svc, err := tracker.Open(ctx, tracker.Options{
		Persister: tracker.NewStorePersister(st.SnapshotRepo()),
		History:   st.EventRepo(),
		Logger:    log,
	})
	if svc == nil {
		st.Close()
		log.Sync()
		return err
	}
	if err != nil {
		// Defaults are loaded and usable; the user should still know.
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}

	e.cfg, e.log, e.store, e.svc = cfg, log, st, svc
	log.Debug("started", "command", cmd.CommandPath(), "db", cfg.DBPath)
	return nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
		e.store = nil
	}
	if e.log != nil {
		e.log.Sync()
	}
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
