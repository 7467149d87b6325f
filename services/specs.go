package services

import "strings"

const specsHeader = "watch information"

// ParseSpecs converts a newline-delimited "label / value" blob into a map of
// attribute name to value. The blob alternates label and value lines; a
// leading "Watch Information" header is noise and dropped. Labels from the
// warranty boilerplate onward are discarded, except the single field
// literally named "Warranty Type".
func ParseSpecs(blob string) map[string]string {
	specs := make(map[string]string)
	if strings.TrimSpace(blob) == "" {
		return specs
	}

	var lines []string
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > 0 && strings.EqualFold(lines[0], specsHeader) {
		lines = lines[1:]
	}

	for i := 0; i+1 < len(lines); i += 2 {
		label := lines[i]
		lower := strings.ToLower(label)
		if strings.Contains(lower, "warranty") && !strings.Contains(lower, "warranty type") {
			break
		}
		specs[label] = lines[i+1]
	}
	// An odd trailing line has no value to pair with and is dropped.

	return specs
}
