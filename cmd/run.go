package cmd

import (
	"fmt"

	"github.com/abhisek/orientation/internal/app"
	"github.com/abhisek/orientation/internal/certificate"
	"github.com/abhisek/orientation/internal/i18n"
	"github.com/abhisek/orientation/internal/logging"
	"github.com/abhisek/orientation/internal/quiz"
	"github.com/abhisek/orientation/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	prefs := st.PreferenceRepo()
	lang, source, err := resolveLanguage(ctx, cmd, cfg, prefs)
	if err != nil {
		return err
	}
	log.Info("display language", zap.String("language", lang.String()), zap.String("source", string(source)))

	bank, err := quiz.LoadBank(resolveQuestionsPath(cmd, cfg))
	if err != nil {
		log.Error("question bank rejected", zap.Error(err))
		return err
	}

	catalog := i18n.Default()
	opts := app.Options{
		Engine:   quiz.NewEngine(bank, quiz.WithLogger(log)),
		Catalog:  catalog,
		Language: lang,
		Prefs:    prefs,
		Logger:   log,
	}
	if cfg.Certificate.Enabled {
		opts.Renderer = certificate.NewPNGRenderer(cfg.Certificate.Dir, catalog, certificate.WithLogger(log))
	}

	return app.Run(opts)
}
