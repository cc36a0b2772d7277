package main

import (
	"strings"

	"github.com/vango-dev/patterns/pkg/catalog"
)

// renderGroups draws the grouped list. The pattern with id cursor, if
// any, is marked.
func renderGroups(groups catalog.Groups, cursor string) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(categoryStyle(g.Category).Render("● " + g.Category.Label()))
		b.WriteString(mutedStyle.Render("  " + g.Category.Intent()))
		b.WriteString("\n")

		for _, p := range g.Patterns {
			marker := "  "
			name := titleStyle.Render(p.Name)
			if p.ID == cursor {
				marker = cursorStyle.Render("> ")
				name = cursorStyle.Render(p.Name)
			}
			card := cardStyle.BorderForeground(categoryColor(g.Category)).Render(
				name + "\n" + mutedStyle.Render(p.Description),
			)
			b.WriteString(indent(card, marker))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderPattern draws the detail view of p.
func renderPattern(p catalog.Pattern, siblings []catalog.Pattern) string {
	var b strings.Builder

	b.WriteString(mutedStyle.Render("patterns / " + p.Category.Label() + " / "))
	b.WriteString(titleStyle.Render(p.Name))
	b.WriteString("\n\n")
	b.WriteString(categoryStyle(p.Category).Render(p.Category.Label()))
	b.WriteString("\n")
	b.WriteString(p.Description)
	b.WriteString("\n")

	if p.HasDiagram() {
		b.WriteString("\n")
		b.WriteString(diagramStyle.Render(p.Diagram))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString("  Type    " + p.Category.Label() + "\n")
	b.WriteString("  Intent  " + p.Category.Intent() + "\n")
	b.WriteString("  Scope   " + p.Category.Scope() + "\n")

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("When to Use"))
	b.WriteString("\n")
	for _, item := range p.Category.WhenToUse() {
		b.WriteString("  - " + item + "\n")
	}

	if len(siblings) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Also in " + p.Category.Label()))
		b.WriteString("\n")
		for _, s := range siblings {
			b.WriteString("  " + s.Name + mutedStyle.Render("  "+s.ID) + "\n")
		}
	}

	return b.String()
}

// indent prefixes the first line of s with marker and the rest with
// matching blank space.
func indent(s, marker string) string {
	lines := strings.Split(s, "\n")
	pad := strings.Repeat(" ", 2)
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
