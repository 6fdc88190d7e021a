package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/wefunk-cue/internal/download"
)

// ParseRange reads a show range typed by the user: "386", "380-390" or
// "380 390".
func ParseRange(input string) (start, end int, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, 0, fmt.Errorf("empty input: %w", download.ErrInvalidRange)
	}

	if strings.HasPrefix(input, "-") || strings.HasSuffix(input, "-") {
		return 0, 0, fmt.Errorf("%q: %w", input, download.ErrInvalidRange)
	}

	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '-' || r == ' ' || r == '\t'
	})
	if len(fields) < 1 || len(fields) > 2 {
		return 0, 0, fmt.Errorf("%q: %w", input, download.ErrInvalidRange)
	}

	start, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a show number: %w", fields[0], download.ErrInvalidRange)
	}
	end = start
	if len(fields) == 2 {
		end, err = strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%q is not a show number: %w", fields[1], download.ErrInvalidRange)
		}
	}

	if err := download.ValidateRange(start, end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
