package render

import (
	"fmt"
	"io"
	"strings"
)

// WriteTerminal prints a view model as a human-readable report.
func WriteTerminal(w io.Writer, vm ViewModel) {
	fmt.Fprintf(w, "Confidence: %s (%s)\n", vm.Summary.ConfidenceLabel, vm.Summary.Tier)
	fmt.Fprintf(w, "Pages:      %d\n", vm.Summary.PageCount)
	fmt.Fprintf(w, "Words:      %s\n", vm.Summary.Words)
	fmt.Fprintf(w, "Characters: %s\n", vm.Summary.Characters)
	if vm.Summary.HasBadge {
		fmt.Fprintf(w, "Type:       %s\n", vm.Summary.Badge)
	}

	fmt.Fprintf(w, "\n%s\n", strings.TrimRight(vm.Text, "\n"))

	if !vm.ShowPages {
		return
	}

	fmt.Fprintf(w, "\nPer-page breakdown:\n")
	for _, p := range vm.Pages {
		fmt.Fprintf(w, "  Page %d: %s (%s), %d words\n",
			p.Number, p.ConfidenceLabel, p.Tier, p.WordCount)
	}
}
