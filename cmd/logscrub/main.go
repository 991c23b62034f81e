package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/logscrub/logscrub"
	"github.com/logscrub/logscrub/core"
	"github.com/logscrub/logscrub/mcpserver"
)

var (
	outputPath     string
	fieldName      string
	policyPath     string
	preserveIDs    bool
	rawstringLines bool
	verbose        bool
	reportPath     string
)

var rootCmd = &cobra.Command{
	Use:   "logscrub",
	Short: "Anonymize JSON log exports before sharing them",
	Long: `logscrub rewrites JSON log exports so they can be shared outside the
team that produced them. It extracts embedded payloads from export
wrappers, scrubs values in place while preserving every key and nesting
level, or reduces records to a pure structure outline.`,
	Version:       logscrub.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Pull embedded JSON payloads out of an export batch",
	Long: `Reads a JSON array of wrapper records, parses the embedded payload
field of each element and writes one payload per line. Records without
a usable payload are skipped and counted, never fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, core.ModeExtract)
	},
}

var scrubCmd = &cobra.Command{
	Use:   "scrub <file>",
	Short: "Anonymize string values while preserving record structure",
	Long: `Reads one JSON document per line and rewrites every string value:
recognized emails, URLs, IPv4 addresses and phone numbers become
category placeholders, ID-like fields can keep a stable digest, and
everything else is replaced by filler of the same length.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, core.ModeScrub)
	},
}

var structureCmd = &cobra.Command{
	Use:   "structure <file>",
	Short: "Reduce records to their structural outline",
	Long: `Reads one JSON document per line and replaces every scalar with a
placeholder naming its type, keeping keys, nesting and order intact.
The result shows the shape of the data with none of its content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, core.ModeStructure)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the transforms as MCP tools over stdio",
	Long: `Starts a Model Context Protocol server on stdin/stdout exposing
scrub_record, structure_record and extract_records. Diagnostics go to
stderr so the protocol channel stays clean.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.New(newLogger(verbose)).ServeStdio()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", "", "append a JSONL run report to this file")

	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default derives from the input name)")
	extractCmd.Flags().StringVar(&fieldName, "field", "", "wrapper field holding the embedded JSON (default @rawstring)")

	scrubCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default derives from the input name)")
	scrubCmd.Flags().BoolVar(&preserveIDs, "preserve-ids", false, "replace ID-like fields with stable digests instead of filler")
	scrubCmd.Flags().BoolVar(&rawstringLines, "rawstring", false, "treat each line as a JSON string holding the embedded document")
	scrubCmd.Flags().StringVar(&policyPath, "policy", "", "load scrubbing policy from a YAML file")

	structureCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default derives from the input name)")
	structureCmd.Flags().BoolVar(&rawstringLines, "rawstring", false, "treat each line as a JSON string holding the embedded document")
	structureCmd.Flags().StringVar(&policyPath, "policy", "", "load scrubbing policy from a YAML file")

	rootCmd.AddCommand(extractCmd, scrubCmd, structureCmd, mcpCmd)
}

// newLogger writes human-readable diagnostics to stderr, keeping stdout
// free for data and protocol traffic
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// buildPolicy starts from the policy file when given, otherwise the
// defaults, then applies the mode and any explicitly set flags on top
func buildPolicy(cmd *cobra.Command, mode core.Mode) (*core.Policy, error) {
	policy := core.DefaultPolicy()
	if policyPath != "" {
		loaded, err := core.LoadPolicy(policyPath)
		if err != nil {
			return nil, err
		}
		policy = loaded
	}

	policy.Mode = mode
	if cmd.Flags().Changed("preserve-ids") {
		policy.PreserveIDs = preserveIDs
	}
	if cmd.Flags().Changed("rawstring") {
		policy.RawstringLines = rawstringLines
	}
	if fieldName != "" {
		policy.RawField = fieldName
	}
	return policy, nil
}

func runTransform(cmd *cobra.Command, args []string, mode core.Mode) error {
	log := newLogger(verbose)

	policy, err := buildPolicy(cmd, mode)
	if err != nil {
		return err
	}

	proc := logscrub.NewProcessor(policy, log)
	stats, outPath, err := proc.ProcessFile(args[0], outputPath)
	if err != nil {
		return err
	}

	fmt.Println(stats.Summary())
	log.Info().Str("output", outPath).Msg("wrote transformed export")

	if reportPath != "" {
		report := core.NewRunReport(policy, args[0], outPath, stats)
		if err := core.AppendReport(reportPath, report); err != nil {
			return fmt.Errorf("failed to append run report: %w", err)
		}
		log.Debug().Str("report", reportPath).Msg("appended run report")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
