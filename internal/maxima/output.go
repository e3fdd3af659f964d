package maxima

import (
	"regexp"
	"strings"
)

// outputLabel matches a result line such as "(%o3) a*(c+b)".
var outputLabel = regexp.MustCompile(`^\(%o(\d+)\)\s?(.*)$`)

// Output is the raw stdout of one CAS run, one element per line.
type Output []string

// Results returns the expressions printed on "(%oN)" lines, in order,
// with the label stripped.
func (o Output) Results() []string {
	var out []string
	for _, line := range o {
		m := outputLabel.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		out = append(out, strings.TrimSpace(m[2]))
	}
	return out
}

// Last returns the last result, or "" if there is none.
func (o Output) Last() string {
	results := o.Results()
	if len(results) == 0 {
		return ""
	}
	return results[len(results)-1]
}
