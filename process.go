package logscrub

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/logscrub/logscrub/core"
)

// MaxLineBytes is the largest input line the processor accepts. Export
// lines hold one event each; anything past this is not a log record.
const MaxLineBytes = 16 << 20

// Processor drives whole-file and whole-stream runs for one policy.
// Records are handled strictly one at a time; a bad record is counted
// and skipped, never aborting the run.
type Processor struct {
	policy *core.Policy
	log    zerolog.Logger
}

// NewProcessor creates a processor bound to a policy and logger
func NewProcessor(policy *core.Policy, log zerolog.Logger) *Processor {
	return &Processor{policy: policy, log: log}
}

// ProcessLines reads one JSON document per line from r, transforms each
// under the policy and writes one compact document per line to w. Blank
// and whitespace-only lines are skipped; they are not records.
func (p *Processor) ProcessLines(r io.Reader, w io.Writer) (core.Stats, error) {
	var stats core.Stats
	walker := core.NewWalker(p.policy, &stats)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.TotalRecords++

		value, err := p.decodeLine(line)
		if err != nil {
			stats.InvalidRecords++
			p.log.Warn().Int("line", lineNo).Err(err).Msg("skipping invalid line")
			continue
		}

		encoded, err := core.EncodeValue(walker.Walk(value))
		if err != nil {
			stats.InvalidRecords++
			p.log.Warn().Int("line", lineNo).Err(err).Msg("skipping unencodable line")
			continue
		}

		if _, err := fmt.Fprintln(w, string(encoded)); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
		stats.ValidRecords++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}

	return stats, nil
}

// decodeLine parses one line, unwrapping embedded-JSON strings when the
// policy asks for it. A rawstring line that decodes to a non-string is
// treated as the document itself.
func (p *Processor) decodeLine(line string) (any, error) {
	value, err := core.DecodeValue([]byte(line))
	if err != nil {
		return nil, err
	}
	if !p.policy.RawstringLines {
		return value, nil
	}
	embedded, ok := value.(string)
	if !ok {
		return value, nil
	}
	return core.DecodeValue([]byte(embedded))
}

// ProcessBatch reads an extract-mode batch (a JSON array of wrapper
// records) from r and writes the embedded documents to w, one compact
// document per line
func (p *Processor) ProcessBatch(r io.Reader, w io.Writer) (core.Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Stats{}, fmt.Errorf("failed to read input: %w", err)
	}

	values, stats, err := p.extractValues(data)
	if err != nil {
		return stats, err
	}
	if err := writeValues(w, values); err != nil {
		return stats, err
	}
	return stats, nil
}

// extractValues runs the extractor with the policy's wrapper field
func (p *Processor) extractValues(data []byte) ([]any, core.Stats, error) {
	extractor := core.NewExtractor().WithLogger(p.log)
	if p.policy.RawField != "" {
		extractor.Field = p.policy.RawField
	}
	return extractor.Extract(data)
}

// writeValues encodes each value onto its own output line
func writeValues(w io.Writer, values []any) error {
	for _, v := range values {
		encoded, err := core.EncodeValue(v)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(encoded)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// ProcessFile opens the input, resolves the output path (an empty
// outputPath selects the conventional name for the mode) and runs the
// policy's mode over the whole file. The resolved output path is
// returned for reporting. In extract mode the entire input is parsed
// before the output file is created, so a fatal parse failure leaves no
// partial output behind.
func (p *Processor) ProcessFile(inputPath, outputPath string) (core.Stats, string, error) {
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath, p.policy.Mode)
	}

	if p.policy.Mode == core.ModeExtract {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return core.Stats{}, "", fmt.Errorf("failed to read input file: %w", err)
		}

		values, stats, err := p.extractValues(data)
		if err != nil {
			return stats, "", fmt.Errorf("extraction failed for %s: %w", inputPath, err)
		}

		out, err := os.Create(outputPath)
		if err != nil {
			return stats, "", fmt.Errorf("failed to create output file: %w", err)
		}
		werr := writeValues(out, values)
		cerr := out.Close()
		if werr != nil {
			return stats, "", werr
		}
		if cerr != nil {
			return stats, "", fmt.Errorf("failed to finalize output file: %w", cerr)
		}
		return stats, outputPath, nil
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return core.Stats{}, "", fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return core.Stats{}, "", fmt.Errorf("failed to create output file: %w", err)
	}

	stats, perr := p.ProcessLines(in, out)
	cerr := out.Close()
	if perr != nil {
		return stats, "", perr
	}
	if cerr != nil {
		return stats, "", fmt.Errorf("failed to finalize output file: %w", cerr)
	}
	return stats, outputPath, nil
}

// DefaultOutputPath returns the conventional output name for a mode:
// the input path with a mode suffix before the extension
func DefaultOutputPath(path string, mode core.Mode) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	switch mode {
	case core.ModeExtract:
		return stem + "_rawstring_only" + ext
	case core.ModeScrub:
		return stem + "_scrubbed" + ext
	case core.ModeStructure:
		return stem + "_structure_only" + ext
	default:
		return stem + "_processed" + ext
	}
}
