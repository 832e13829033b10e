package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"blockcheck/core/position"
	"blockcheck/core/reconcile"

	"gopkg.in/yaml.v3"
)

// Format selects the detailed report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or yaml)", s)
	}
}

// Sources names the two fingerprint files of a comparison.
type Sources struct {
	Reference  string `json:"reference" yaml:"reference"`
	Comparison string `json:"comparison" yaml:"comparison"`
}

// Document is the structured form of a detailed report.
type Document struct {
	Sources         Sources           `json:"sources" yaml:"sources"`
	ThresholdBlocks int               `json:"threshold_blocks" yaml:"threshold_blocks"`
	NonCritical     bool              `json:"non_critical" yaml:"non_critical"`
	Summary         reconcile.Summary `json:"summary" yaml:"summary"`
	MatchedRange    *IndexRange       `json:"matched_range,omitempty" yaml:"matched_range,omitempty"`
	MismatchedRange *IndexRange       `json:"mismatched_range,omitempty" yaml:"mismatched_range,omitempty"`

	OnlyInReference  []string             `json:"only_in_reference" yaml:"only_in_reference"`
	OnlyInComparison []string             `json:"only_in_comparison" yaml:"only_in_comparison"`
	Mismatched       []reconcile.Mismatch `json:"mismatched" yaml:"mismatched"`
}

// IndexRange is an inclusive positional range.
type IndexRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func indexRange(indices []int) *IndexRange {
	lo, hi, ok := position.Range(indices)
	if !ok {
		return nil
	}
	return &IndexRange{Min: lo, Max: hi}
}

// NewDocument assembles a Document from a reconciliation result.
func NewDocument(result *reconcile.Result, sources Sources, threshold int) *Document {
	return &Document{
		Sources:          sources,
		ThresholdBlocks:  threshold,
		NonCritical:      result.NonCritical(threshold),
		Summary:          result.Summary,
		MatchedRange:     indexRange(result.MatchedIndices),
		MismatchedRange:  indexRange(result.MismatchedIndices),
		OnlyInReference:  result.OnlyInReference,
		OnlyInComparison: result.OnlyInComparison,
		Mismatched:       result.Mismatched,
	}
}

// Write encodes doc in the requested format.
func Write(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return WriteText(w, doc)
	}
}

// WriteText writes the human-readable detailed report.
func WriteText(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	s := doc.Summary

	fmt.Fprintf(bw, "Total reference: %d\n", s.TotalReference)
	fmt.Fprintf(bw, "Total comparison: %d\n", s.TotalComparison)
	fmt.Fprintf(bw, "Common: %d\n", s.Common)
	fmt.Fprintf(bw, "Only in reference: %d\n", s.OnlyInReference)
	fmt.Fprintf(bw, "Only in comparison: %d\n", s.OnlyInComparison)
	fmt.Fprintf(bw, "Mismatched: %d\n", s.Mismatched)
	if doc.NonCritical {
		fmt.Fprintf(bw, "All differences are within the last ~%d blocks, not critical.\n", doc.ThresholdBlocks)
	}
	fmt.Fprintln(bw)

	if len(doc.OnlyInReference) > 0 {
		fmt.Fprintln(bw, "Only in reference:")
		for _, p := range doc.OnlyInReference {
			fmt.Fprintln(bw, p)
		}
		fmt.Fprintln(bw)
	}

	if len(doc.OnlyInComparison) > 0 {
		fmt.Fprintln(bw, "Only in comparison:")
		for _, p := range doc.OnlyInComparison {
			fmt.Fprintln(bw, p)
		}
		fmt.Fprintln(bw)
	}

	if len(doc.Mismatched) > 0 {
		fmt.Fprintln(bw, "Mismatched files:")
		for _, m := range doc.Mismatched {
			fmt.Fprintf(bw, "%s\n  %s: %s\n  %s: %s\n", m.Path, doc.Sources.Reference, m.Reference, doc.Sources.Comparison, m.Comparison)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// WriteSummary writes the short overview: matched and mismatched counts with
// their index ranges.
func WriteSummary(w io.Writer, doc *Document) error {
	var b strings.Builder

	b.WriteString("Summary:\n")
	b.WriteString(fmt.Sprintf("Matched: %d", doc.Summary.Matched))
	if r := doc.MatchedRange; r != nil {
		b.WriteString(fmt.Sprintf(" [%d-%d]", r.Min, r.Max))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Mismatched: %d", doc.Summary.Mismatched))
	if r := doc.MismatchedRange; r != nil {
		b.WriteString(fmt.Sprintf(" [%d-%d]", r.Min, r.Max))
	}
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSyncList writes one path per line in plan order.
func WriteSyncList(w io.Writer, plan *reconcile.Plan) error {
	bw := bufio.NewWriter(w)
	for _, p := range plan.Paths() {
		if _, err := bw.WriteString(p + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
