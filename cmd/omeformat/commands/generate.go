package commands

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ome-nbo-tools/ome-nbo-formatter/config"
	"github.com/ome-nbo-tools/ome-nbo-formatter/convert"
	"github.com/ome-nbo-tools/ome-nbo-formatter/display"
	"github.com/ome-nbo-tools/ome-nbo-formatter/jsonschema"
	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/logger"
	"github.com/ome-nbo-tools/ome-nbo-formatter/profile"
	"github.com/ome-nbo-tools/ome-nbo-formatter/watch"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

var (
	generateOutput       string
	generatePartition    bool
	generateProfilePath  string
	generateElements     []string
	generateDocOverrides string
	generateJSONOut      string
	generateWatch        bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate <schema.xsd>",
	Short: "Convert an XML Schema into a LinkML schema",
	Long: `Convert an XML Schema document into a LinkML YAML schema.

The source file is parsed and resolved into a type graph, converted
into classes, slots and enums, and written as a single YAML document
or as one standalone document per class with --partition.

Settings are resolved in precedence order: flags over the conversion
profile over omeformat.toml defaults.

Examples:
  omeformat generate ome.xsd                        # ome.yaml next to the source
  omeformat generate ome.xsd -o schemas/ome.yaml    # Explicit output path
  omeformat generate ome.xsd --partition -o out/    # One file per class
  omeformat generate ome.xsd --elements OME         # Only the OME tree
  omeformat generate ome.xsd --json-out ome.json    # Keep the JSON Schema view
  omeformat generate ome.xsd --watch                # Regenerate on change`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file, or directory with --partition (default: derived from the source name)")
	GenerateCmd.Flags().BoolVar(&generatePartition, "partition", false, "Write one standalone schema file per class")
	GenerateCmd.Flags().StringVarP(&generateProfilePath, "profile", "p", "", "Conversion profile TOML (default: profile.path from config)")
	GenerateCmd.Flags().StringSliceVar(&generateElements, "elements", nil, "Restrict processing to the named top-level elements")
	GenerateCmd.Flags().StringVar(&generateDocOverrides, "doc-overrides", "", "YAML file with attribute description overrides")
	GenerateCmd.Flags().StringVar(&generateJSONOut, "json-out", "", "Also write the intermediate JSON Schema view to this path")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the inputs change")
	GenerateCmd.Flags().Bool("json", false, "Output the run summary as JSON")
}

// generateFlags captures the generate flag values for one invocation
type generateFlags struct {
	output       string
	partition    bool
	profilePath  string
	elements     []string
	docOverrides string
	jsonOut      string
	watch        bool
}

func currentGenerateFlags() generateFlags {
	return generateFlags{
		output:       generateOutput,
		partition:    generatePartition,
		profilePath:  generateProfilePath,
		elements:     generateElements,
		docOverrides: generateDocOverrides,
		jsonOut:      generateJSONOut,
		watch:        generateWatch,
	}
}

// generateSettings is the fully resolved plan for one generation run.
// Flag values win over profile values, which win over config defaults.
type generateSettings struct {
	source       string
	output       string
	partition    bool
	jsonOut      string
	elements     []string
	docOverrides string
	meta         linkml.Metadata

	// watchPaths are the non-source inputs regeneration depends on
	watchPaths []string
}

func resolveSettings(cfg *config.Config, flags generateFlags, source string) (*generateSettings, error) {
	s := &generateSettings{
		source:    source,
		partition: flags.partition,
		jsonOut:   flags.jsonOut,
	}

	profilePath := flags.profilePath
	if profilePath == "" {
		profilePath = cfg.Profile.Path
	}
	if profilePath != "" {
		prof, err := profile.Load(profilePath)
		if err != nil {
			return nil, err
		}
		s.meta = prof.Metadata()
		s.elements = prof.Elements.TopLevel
		s.docOverrides = prof.Docs.Overrides
		s.watchPaths = append(s.watchPaths, profilePath)
	}

	if len(flags.elements) > 0 {
		s.elements = flags.elements
	}
	if flags.docOverrides != "" {
		s.docOverrides = flags.docOverrides
	}
	if s.docOverrides != "" {
		s.watchPaths = append(s.watchPaths, s.docOverrides)
	}

	if s.meta.License == "" {
		s.meta.License = cfg.GetOutputLicense()
	}
	if s.meta.SchemaVersion == "" {
		s.meta.SchemaVersion = cfg.GetOutputVersion()
	}

	s.output = flags.output
	if s.output == "" {
		if s.partition {
			s.output = cfg.GetOutputDir()
		} else {
			s.output = filepath.Join(cfg.GetOutputDir(), derivedOutputName(source))
		}
	}

	return s, nil
}

// derivedOutputName maps a source path like schemas/ome.xsd to ome.yaml
func derivedOutputName(source string) string {
	base := filepath.Base(source)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".yaml"
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	flags := currentGenerateFlags()
	settings, err := resolveSettings(cfg, flags, args[0])
	if err != nil {
		return err
	}

	jsonOutput := display.ShouldOutputJSON(cmd)

	runOnce := func() error {
		summary, err := generateOnce(settings, jsonOutput)
		if err != nil {
			return err
		}
		if jsonOutput {
			return display.OutputJSON(summary)
		}
		display.RenderRunSummary(*summary)
		return nil
	}

	if err := runOnce(); err != nil {
		return err
	}

	if !flags.watch {
		return nil
	}

	paths := append([]string{settings.source}, settings.watchPaths...)
	watcher, err := watch.New(paths, cfg.GetWatchDebounce(), func() {
		if err := runOnce(); err != nil {
			logger.Errorw("Regeneration failed", "error", err)
			if !jsonOutput {
				pterm.Error.Printf("Regeneration failed: %v\n", err)
			}
		}
	}, logger.Logger.Named("watch"))
	if err != nil {
		return err
	}
	watcher.Start()
	defer watcher.Stop()

	if !jsonOutput {
		pterm.Info.Printf("Watching %d input(s) for changes, Ctrl+C to stop\n", len(paths))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if !jsonOutput {
		pterm.Println()
		pterm.Info.Println("Watch stopped")
	}
	return nil
}

// generateOnce runs one conversion with terminal feedback
func generateOnce(s *generateSettings, jsonOutput bool) (*display.RunSummary, error) {
	var spinner *pterm.SpinnerPrinter
	if !jsonOutput {
		spinner, _ = pterm.DefaultSpinner.Start("Converting " + s.source)
	}

	summary, err := convertAndWrite(s)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Conversion failed")
		}
		return nil, err
	}

	if spinner != nil {
		spinner.Success("Conversion complete")
	}
	return summary, nil
}

// convertAndWrite loads the source, runs the conversion and writes
// every requested artifact
func convertAndWrite(s *generateSettings) (*display.RunSummary, error) {
	src, err := xsd.Load(s.source)
	if err != nil {
		return nil, err
	}

	var overrides convert.DocOverrides
	if s.docOverrides != "" {
		overrides, err = convert.LoadDocOverrides(s.docOverrides)
		if err != nil {
			return nil, err
		}
	}

	hints := jsonschema.Build(src)

	conv := convert.New(convert.Options{
		Metadata:         s.meta,
		DocOverrides:     overrides,
		Hints:            hints,
		TopLevelElements: s.elements,
	}, logger.Logger.Named("convert"))

	result, err := conv.Convert(src)
	if err != nil {
		return nil, err
	}

	var outputs []string
	if s.partition {
		if err := linkml.WritePartitioned(s.output, result.Schema); err != nil {
			return nil, err
		}
		outputs = append(outputs, s.output)
	} else {
		if dir := filepath.Dir(s.output); dir != "." {
			if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
				return nil, err
			}
		}
		if err := linkml.WriteFile(s.output, result.Schema); err != nil {
			return nil, err
		}
		outputs = append(outputs, s.output)
	}

	if s.jsonOut != "" {
		if dir := filepath.Dir(s.jsonOut); dir != "." {
			if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
				return nil, err
			}
		}
		if err := jsonschema.WriteFile(s.jsonOut, hints); err != nil {
			return nil, err
		}
		outputs = append(outputs, s.jsonOut)
	}

	return &display.RunSummary{
		RunID:      result.RunID,
		Source:     s.source,
		Outputs:    outputs,
		Classes:    result.Stats.Classes,
		Slots:      result.Stats.Slots,
		Enums:      result.Stats.Enums,
		UniqueKeys: result.Stats.UniqueKeys,
		Rules:      result.Stats.Rules,
		DurationMS: result.Duration.Milliseconds(),
	}, nil
}
