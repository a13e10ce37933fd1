package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/covtools/xml2lcov/internal/config"
	"github.com/covtools/xml2lcov/internal/exec"
	"github.com/covtools/xml2lcov/internal/logging"
	"github.com/covtools/xml2lcov/internal/stamp"
	"github.com/covtools/xml2lcov/internal/translate"
)

// NewXML2LCOVCommand creates the root command for the xml2lcov tool.
func NewXML2LCOVCommand() *cobra.Command {
	var (
		output          string
		testName        string
		exclude         string
		versionScript   string
		python          bool
		deriveFunctions bool
		tabWidth        int
		checksum        bool
		keepGoing       bool
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "xml2lcov [flags] coverage.xml",
		Short: "Translate Cobertura-style XML coverage data into LCOV format.",
		Long: `xml2lcov reads a coverage report in the Cobertura XML schema (as written
by Cobertura or by Coverage.py) and writes an equivalent LCOV tracefile.

The XML format does not identify individual branch expressions; it only
reports how many of a line's branches were taken. This tool assumes the
first M of N branches are the ones taken, which makes merged results a
lower bound on true branch coverage.

For Python input, function start/end lines are not present in the XML
either; with --python --derive-functions they are reconstructed from
source indentation.

Configuration:
  Default values are loaded from xml2lcov.yaml when present.
  Command line flags override the config file values.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("xml2lcov")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Config file values are defaults; flags win when set.
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("test-name") {
				cfg.TestName = testName
			}
			if cmd.Flags().Changed("exclude") {
				cfg.ExcludePatterns = exclude
			}
			if cmd.Flags().Changed("version-script") {
				cfg.VersionScript = versionScript
			}
			if cmd.Flags().Changed("python") {
				cfg.Python = python
			}
			if cmd.Flags().Changed("derive-functions") {
				cfg.DeriveFunctions = deriveFunctions
			}
			if cmd.Flags().Changed("tab-width") {
				cfg.TabWidth = tabWidth
			}
			if cmd.Flags().Changed("checksum") {
				cfg.Checksum = checksum
			}
			if cmd.Flags().Changed("keep-going") {
				cfg.KeepGoing = keepGoing
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbose = verbose
			}
			cfg.Input = args[0]

			logging.SetVerbose(cfg.Verbose)
			return runTranslate(cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "coverage.info", "LCOV tracefile to write")
	cmd.Flags().StringVar(&testName, "test-name", "", "test name written to the TN: record")
	cmd.Flags().StringVar(&exclude, "exclude", "", "comma-separated glob patterns of files to skip")
	cmd.Flags().StringVar(&versionScript, "version-script", "", "external command used to stamp per-file versions")
	cmd.Flags().BoolVar(&python, "python", false, "input was produced from indentation-significant Python source")
	cmd.Flags().BoolVar(&deriveFunctions, "derive-functions", false, "derive function coverpoints from source indentation")
	cmd.Flags().IntVar(&tabWidth, "tab-width", config.DefaultTabWidth, "tab width assumed during derivation")
	cmd.Flags().BoolVar(&checksum, "checksum", false, "attach a content checksum to each DA record")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "warn and continue on recoverable errors instead of aborting")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")

	return cmd
}

func runTranslate(cfg *config.Config) error {
	logger := logging.Component("app")

	outFile, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output %s: %w", cfg.Output, err)
	}

	translator, err := translate.NewReportTranslator(cfg, outFile)
	if err != nil {
		outFile.Close()
		return err
	}
	if err := translator.Run(cfg.Input); err != nil {
		outFile.Close()
		return err
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close output %s: %w", cfg.Output, err)
	}

	// Version stamping re-opens the tracefile, so it runs only after the
	// file is closed.
	stamper := stamp.New(exec.NewCommandExecutor())
	if err := stamper.Apply(cfg.Output, cfg.VersionScript, cfg.Checksum); err != nil {
		if cfg.KeepGoing {
			logger.Warnf("version stamping failed: %v", err)
			return nil
		}
		return err
	}
	return nil
}
