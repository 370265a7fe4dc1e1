package application

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chefclub/publisher/internal/config"
	"github.com/chefclub/publisher/internal/feeds"
	"github.com/chefclub/publisher/internal/links"
	"github.com/chefclub/publisher/internal/output"
)

// Option configures optional App behaviour.
type Option func(*App)

// WithDryRun makes Prepare log destructive steps instead of performing them.
func WithDryRun(enabled bool) Option {
	return func(a *App) {
		a.dryRun = enabled
	}
}

// WithCleaner overrides the default output cleaner (primarily for tests).
func WithCleaner(cleaner output.Cleaner) Option {
	return func(a *App) {
		a.cleaner = cleaner
	}
}

// App encapsulates the publish-preparation pipeline and its dependencies.
type App struct {
	cfg     config.Settings
	policy  links.Policy
	feeds   feeds.Resolver
	cleaner output.Cleaner
	logger  *zap.Logger
	dryRun  bool
}

// New initializes the application with all dependencies from the provided settings.
func New(cfg config.Settings, logger *zap.Logger, opts ...Option) (*App, error) {
	policy, err := links.NewPolicy(cfg.SiteURL, cfg.RelativeURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to build link policy: %w", err)
	}

	app := &App{
		cfg:     cfg,
		policy:  policy,
		feeds:   feeds.NewResolver(policy, cfg.FeedAllAtom, cfg.CategoryFeedAtom, cfg.TagFeedAtom),
		cleaner: output.NewDirCleaner(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(app)
	}

	return app, nil
}

// Feeds returns the feed resolver built from the settings.
func (a *App) Feeds() feeds.Resolver {
	return a.feeds
}

// Prepare runs the publish-preparation steps: it logs the effective publish
// profile and clears the output directory when the settings request it.
func (a *App) Prepare() error {
	a.logProfile()

	if !a.cfg.DeleteOutputDirectory {
		a.logger.Debug("output directory cleanup disabled")
		return nil
	}

	if a.dryRun {
		a.logger.Info("dry run: would clean output directory", zap.String("dir", a.cfg.OutputDir))
		return nil
	}

	if err := a.cleaner.Clean(a.cfg.OutputDir); err != nil {
		return fmt.Errorf("clean output directory: %w", err)
	}
	a.logger.Info("cleaned output directory", zap.String("dir", a.cfg.OutputDir))

	return nil
}

func (a *App) logProfile() {
	linkMode := "absolute"
	if a.policy.Relative() {
		linkMode = "relative"
	}

	fields := []zap.Field{
		zap.String("site_url", a.cfg.SiteURL),
		zap.String("link_mode", linkMode),
		zap.String("output_dir", a.cfg.OutputDir),
		zap.Bool("comments", a.cfg.CommentsEnabled()),
	}
	if all, ok := a.feeds.All(); ok {
		fields = append(fields, zap.String("feed_all", a.feeds.Link(all)))
	}

	a.logger.Info("publish profile", fields...)
}
