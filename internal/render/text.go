// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     render
// Description: Styled table output for terminals
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	radast "github.com/msto63/radscene/foundation/rad/ast"
)

// Color Palette - Same as the viewer for consistency
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

var columns = []string{"MODIFIER", "TYPE", "NAME", "ARGUMENTS"}

// TextRenderer writes an aligned table followed by a per-type summary
type TextRenderer struct{}

// Render implements Renderer
func (r *TextRenderer) Render(w io.Writer, prims []*radast.Primitive) error {
	re := lipgloss.NewRenderer(w)
	headerStyle := re.NewStyle().Foreground(ColorPrimary).Bold(true)
	typeStyle := re.NewStyle().Foreground(ColorSecondary)
	polygonStyle := re.NewStyle().Foreground(ColorAccent)
	mutedStyle := re.NewStyle().Foreground(ColorTextMuted)

	rows := make([][]string, len(prims))
	for i, p := range prims {
		rows[i] = []string{p.Modifier, p.Type, p.Name, p.ArgumentSummary()}
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := lipgloss.Width(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(formatRow(columns, widths)))
	b.WriteString("\n")

	for i, row := range rows {
		line := formatRow(row, widths)
		if prims[i].Kind() == radast.KindPolygon {
			line = polygonStyle.Render(line)
		} else {
			line = typeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(summaryLine(prims)))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return renderError(err, FormatText)
	}
	return nil
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return strings.Join(parts, "  ")
}

func summaryLine(prims []*radast.Primitive) string {
	if len(prims) == 0 {
		return "0 records"
	}

	counts := TypeSummary(prims)
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s %d", c.Type, c.Count)
	}

	noun := "records"
	if len(prims) == 1 {
		noun = "record"
	}
	return fmt.Sprintf("%d %s: %s", len(prims), noun, strings.Join(parts, ", "))
}
