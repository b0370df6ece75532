// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/plutus/lib/plutus"
)

// Styler renders command output for one destination writer: JSON
// syntax highlighting and Plutus Data trees, styled according to the
// destination's color profile.
type Styler struct {
	profile  termenv.Profile
	renderer *lipgloss.Renderer
	width    int

	constructor lipgloss.Style
	container   lipgloss.Style
	integer     lipgloss.Style
	bytes       lipgloss.Style
	faint       lipgloss.Style
}

// NewStyler returns a Styler for w. mode is "auto", "always" or
// "never"; auto colors only terminals and honors NO_COLOR. Tree labels
// are truncated to the terminal width when w is a terminal.
func NewStyler(w io.Writer, mode string) (*Styler, error) {
	var profile termenv.Profile
	switch mode {
	case "auto", "":
		profile = termenv.NewOutput(w).EnvColorProfile()
	case "always":
		profile = termenv.ANSI256
	case "never":
		profile = termenv.Ascii
	default:
		return nil, Validation("unknown color mode %q (expected auto, always or never)", mode)
	}

	// SetColorProfile is required: the renderer otherwise re-detects
	// the profile from the environment and ignores the option.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	width := 0
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		if columns, _, err := term.GetSize(int(file.Fd())); err == nil {
			width = columns
		}
	}

	return &Styler{
		profile:     profile,
		renderer:    renderer,
		width:       width,
		constructor: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		container:   renderer.NewStyle().Foreground(lipgloss.Color("75")),
		integer:     renderer.NewStyle().Foreground(lipgloss.Color("141")),
		bytes:       renderer.NewStyle().Foreground(lipgloss.Color("214")),
		faint:       renderer.NewStyle().Faint(true),
	}, nil
}

// Color reports whether output is styled.
func (s *Styler) Color() bool { return s.profile != termenv.Ascii }

// SetWidth overrides the truncation width. Zero disables truncation.
func (s *Styler) SetWidth(width int) { s.width = width }

// HighlightJSON returns text with JSON syntax highlighting, or text
// unchanged when color is off or highlighting fails.
func (s *Styler) HighlightJSON(text string) string {
	if !s.Color() {
		return text
	}
	var formatter string
	switch s.profile {
	case termenv.TrueColor:
		formatter = "terminal16m"
	case termenv.ANSI256:
		formatter = "terminal256"
	default:
		formatter = "terminal16"
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, text, "json", formatter, "monokai"); err != nil {
		return text
	}
	return buffer.String()
}

// RenderData draws data as an indented tree, one node per line.
// Leaf labels longer than the terminal width are truncated.
func (s *Styler) RenderData(data plutus.Data) string {
	node := s.dataNode(data)
	if leaf, ok := node.(string); ok {
		return leaf
	}
	return node.(*tree.Tree).String()
}

// dataNode returns a string for leaves and a *tree.Tree for containers.
func (s *Styler) dataNode(data plutus.Data) any {
	switch value := data.(type) {
	case plutus.Integer:
		return s.truncate(s.integer.Render(value.Value().String()))

	case plutus.ByteArray:
		label := "h''"
		if value.Len() > 0 {
			label = "h'" + value.Hex() + "'"
		}
		return s.truncate(s.bytes.Render(label) + s.faint.Render(fmt.Sprintf(" (%d bytes)", value.Len())))

	case plutus.List:
		root := s.container.Render("list") + s.faint.Render(fmt.Sprintf(" (%d)", value.Len()))
		branch := s.newTree(root)
		for _, item := range value.Items() {
			branch.Child(s.dataNode(item))
		}
		return branch

	case plutus.Map:
		root := s.container.Render("map") + s.faint.Render(fmt.Sprintf(" (%d)", value.Len()))
		branch := s.newTree(root)
		for _, entry := range value.Entries() {
			branch.Child(s.entryNode(entry))
		}
		return branch

	case plutus.Constr:
		root := s.constructor.Render(fmt.Sprintf("constr %d", value.Index()))
		branch := s.newTree(root)
		for _, field := range value.Fields() {
			branch.Child(s.dataNode(field))
		}
		return branch

	default:
		return fmt.Sprintf("%v", data)
	}
}

// entryNode draws a map entry as "key =>" with the value beneath it.
// Container keys are shown abbreviated on the label line.
func (s *Styler) entryNode(entry plutus.Entry) *tree.Tree {
	var label string
	switch key := s.dataNode(entry.Key).(type) {
	case string:
		label = key
	default:
		label = s.container.Render(entry.Key.String())
	}
	return s.newTree(s.truncate(label + s.faint.Render(" =>"))).Child(s.dataNode(entry.Value))
}

func (s *Styler) newTree(root string) *tree.Tree {
	return tree.Root(root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.faint.PaddingRight(1))
}

// truncate shortens a styled label to the terminal width, leaving room
// for the tree's indentation.
func (s *Styler) truncate(label string) string {
	const indentAllowance = 8
	if s.width <= indentAllowance || ansi.StringWidth(label) <= s.width-indentAllowance {
		return label
	}
	return ansi.Truncate(label, s.width-indentAllowance, "…")
}
