package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"
)

// DiffResult is a rendered dyff comparison.
type DiffResult struct {
	// Changes is the number of differences dyff reported.
	Changes int

	// Report is the human-readable report. Empty when Changes is zero.
	Report string
}

// DiffValues compares two values as YAML documents. Both sides are
// marshaled with sorted keys so only content differences are reported.
func DiffValues(fromName string, from any, toName string, to any, useColor bool) (*DiffResult, error) {
	fromYAML, err := yaml.Marshal(from)
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", fromName, err)
	}

	toYAML, err := yaml.Marshal(to)
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", toName, err)
	}

	return DiffYAML(fromName, fromYAML, toName, toYAML, useColor)
}

// DiffYAML computes a YAML-aware diff of two single-document inputs.
func DiffYAML(fromName string, from []byte, toName string, to []byte, useColor bool) (*DiffResult, error) {
	fromInput, err := parseYAMLInput(fromName, from)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fromName, err)
	}

	toInput, err := parseYAMLInput(toName, to)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", toName, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return nil, fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return &DiffResult{}, nil
	}

	rendered, err := renderDyffReport(report, useColor)
	if err != nil {
		return nil, err
	}

	return &DiffResult{Changes: len(report.Diffs), Report: rendered}, nil
}

// parseYAMLInput parses YAML bytes into a dyff input file. Blank input is
// treated as an empty mapping so both sides always hold one document.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("{}")
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// DiffSummary returns a one-line summary for a change count.
func DiffSummary(changes int) string {
	switch changes {
	case 0:
		return "No changes detected."
	case 1:
		return "1 difference"
	default:
		return strconv.Itoa(changes) + " differences"
	}
}

// IndentDiff indents a diff string for display under a heading.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
