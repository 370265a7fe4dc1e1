package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/chefclub/publisher/internal/application"
	"github.com/chefclub/publisher/internal/config"
	"github.com/chefclub/publisher/internal/logging"
)

func main() {
	kingpinApp := kingpin.New("publisher", "Prepares a static-site publish run: resolves the publish profile and readies the output directory")
	configFile := kingpinApp.Flag("config", "Path to the base YAML site profile").String()
	publishFile := kingpinApp.Flag("publish-config", "Path to the publish YAML profile overriding the base").String()
	siteURL := kingpinApp.Flag("site-url", "Canonical base URL of the published site").String()
	outputDir := kingpinApp.Flag("output", "Generator output directory").String()
	relativeURLs := kingpinApp.Flag("relative-urls", "Emit site-relative links instead of absolute ones (true/false)").String()
	deleteOutput := kingpinApp.Flag("delete-output", "Clear the output directory before the rebuild (true/false)").String()
	disqusSitename := kingpinApp.Flag("disqus-sitename", "Disqus forum identifier enabling the comment widget").String()
	dryRun := kingpinApp.Flag("dry-run", "Log destructive steps without performing them").Bool()
	verbose := kingpinApp.Flag("verbose", "Enable debug logging").Short('v').Bool()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.Overrides{
		ConfigFile:  *configFile,
		PublishFile: *publishFile,
	}

	if *siteURL != "" {
		overrides.SiteURL = siteURL
	}

	if *outputDir != "" {
		overrides.OutputDir = outputDir
	}

	if *disqusSitename != "" {
		overrides.DisqusSitename = disqusSitename
	}

	var err error
	if overrides.RelativeURLs, err = boolFlag("relative-urls", *relativeURLs); err != nil {
		panic(err.Error())
	}

	if overrides.DeleteOutput, err = boolFlag("delete-output", *deleteOutput); err != nil {
		panic(err.Error())
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, application.WithDryRun(*dryRun))
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Prepare(); err != nil {
		logger.Fatal("failed to prepare publish run", zap.Error(err))
	}
}

// boolFlag parses an optional true/false flag value, nil when unset.
func boolFlag(name, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for --%s: %q", name, value)
	}
	return &parsed, nil
}
