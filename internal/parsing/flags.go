package parsing

import (
	"strings"

	"github.com/jonathan/redflag/internal/types"
)

// section is the scanner state while walking the response lines.
type section int

const (
	sectionNone section = iota
	sectionKeyPoints
	sectionRed
	sectionGreen
)

// headerSection returns the section a header line opens. Headers are
// matched case-insensitively and checked in a fixed order so a line opens
// at most one section.
func headerSection(lower string) (section, bool) {
	switch {
	case strings.Contains(lower, "red flags:"):
		return sectionRed, true
	case strings.Contains(lower, "green flags:"):
		return sectionGreen, true
	case strings.Contains(lower, "key points:"):
		return sectionKeyPoints, true
	default:
		return sectionNone, false
	}
}

// bullet returns the text of a "-" bullet line.
func bullet(line string) (string, bool) {
	if !strings.HasPrefix(line, "-") {
		return "", false
	}
	text := strings.TrimSpace(strings.TrimPrefix(line, "-"))
	return text, text != ""
}

// ParseFlagResponse converts the model's semi-structured assessment into a
// FlagJudgment. Only empty input is an error; any other text degrades to
// defaults (green verdict, placeholder flag lists).
func ParseFlagResponse(text string) (types.FlagJudgment, error) {
	if strings.TrimSpace(text) == "" {
		return types.FlagJudgment{}, ErrEmptyResponse
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	judgment := types.FlagJudgment{Flag: verdict(lines)}

	state := sectionNone
	hasKeyPoints := false
	var keyPoints, allBullets []string
	for _, line := range lines {
		if next, ok := headerSection(strings.ToLower(line)); ok {
			state = next
			if next == sectionKeyPoints {
				hasKeyPoints = true
			}
			continue
		}

		item, ok := bullet(line)
		if !ok {
			continue
		}
		allBullets = append(allBullets, item)

		switch state {
		case sectionKeyPoints:
			keyPoints = append(keyPoints, item)
		case sectionRed:
			judgment.RedFlags = append(judgment.RedFlags, item)
		case sectionGreen:
			judgment.GreenFlags = append(judgment.GreenFlags, item)
		}
	}

	// Without a "Key Points:" header every bullet counts as reasoning.
	if !hasKeyPoints {
		keyPoints = allBullets
	}
	judgment.Reasoning = strings.Join(keyPoints, "\n")

	if len(judgment.RedFlags) == 0 {
		judgment.RedFlags = []string{types.NoRedFlags}
	}
	if len(judgment.GreenFlags) == 0 {
		judgment.GreenFlags = []string{types.NoGreenFlags}
	}

	return judgment, nil
}

// verdict reads the first "flag:" line. Anything other than an explicit red
// verdict is green.
func verdict(lines []string) types.Flag {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "flag:") {
			continue
		}
		if strings.Contains(lower, "red") {
			return types.FlagRed
		}
		return types.FlagGreen
	}
	return types.FlagGreen
}
