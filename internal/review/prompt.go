package review

import "strings"

const (
	promptSeparator = "\n\n---\n\n"
	diffLabel       = "Diff:\n"
)

// BuildPrompt joins the instructions and the diff into the single prompt sent
// to the model. Both are used verbatim; nothing is escaped or truncated.
func BuildPrompt(instructions, diff string) string {
	var b strings.Builder
	b.Grow(len(instructions) + len(promptSeparator) + len(diffLabel) + len(diff))
	b.WriteString(instructions)
	b.WriteString(promptSeparator)
	b.WriteString(diffLabel)
	b.WriteString(diff)
	return b.String()
}
