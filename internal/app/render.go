package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/ui/style"
	"go.trai.ch/zerr"
)

// statusDeclared marks rules that come from the workspace rather than an expansion.
const statusDeclared = "declared"

var statusColors = map[string]lipgloss.Color{
	string(domain.ChangeStatusNew):       style.Green,
	string(domain.ChangeStatusChanged):   style.Yellow,
	string(domain.ChangeStatusUnchanged): style.Slate,
	statusDeclared:                       style.Slate,
}

func buildGraph(rules []*domain.BuildRule) (*domain.RuleGraph, error) {
	graph := domain.NewRuleGraph()
	for _, rule := range rules {
		if err := graph.AddRule(rule); err != nil {
			return nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, zerr.Wrap(err, "invalid rule graph")
	}
	return graph, nil
}

// renderGraph writes one line per rule in dependency order, followed by its deps
// and a summary of change statuses. Colors are only emitted when w is a terminal.
func renderGraph(w io.Writer, graph *domain.RuleGraph, statuses map[domain.TargetIdentity]domain.ChangeStatus) error {
	counts := make(map[domain.ChangeStatus]int)
	renderer := lipgloss.NewRenderer(w)

	for rule := range graph.Walk() {
		status := statusDeclared
		if s, ok := statuses[rule.Target()]; ok {
			status = string(s)
			counts[s]++
		}

		label := renderer.NewStyle().Foreground(statusColors[status]).Render(fmt.Sprintf("%-9s", status))
		if _, err := fmt.Fprintf(w, "%s %-16s %s\n", label, rule.Kind(), rule.Target()); err != nil {
			return err
		}
		for dep := range rule.Deps().All() {
			if _, err := fmt.Fprintf(w, "    -> %s\n", dep); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%d rules: %d new, %d changed, %d unchanged\n",
		graph.Len(),
		counts[domain.ChangeStatusNew],
		counts[domain.ChangeStatusChanged],
		counts[domain.ChangeStatusUnchanged],
	)
	return err
}
