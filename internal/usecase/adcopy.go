package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// AdCopy is the five-field bundle the ad prompt asks the model for.
type AdCopy struct {
	Headline         string `json:"headline"`
	Body             string `json:"body"`
	FacebookCaption  string `json:"facebook_caption"`
	NextdoorCaption  string `json:"nextdoor_caption"`
	InstagramCaption string `json:"instagram_caption"`
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseAdCopy recovers structured copy from raw model output. Strict first:
// extract a fenced or bare JSON object and unmarshal it. When that fails,
// fall back to positional line assignment (line 0 headline, lines 1-2 body,
// lines 3-5 the captions) with templated defaults for absent lines.
// Pure function, no network.
func ParseAdCopy(raw, service, city string) AdCopy {
	if out, ok := parseStrict(raw); ok {
		return out
	}
	return parseLines(raw, service, city)
}

func parseStrict(raw string) (AdCopy, bool) {
	candidate := stripFences(raw)
	match := jsonObjectPattern.FindString(candidate)
	if match == "" {
		return AdCopy{}, false
	}

	var out AdCopy
	if err := json.Unmarshal([]byte(match), &out); err != nil {
		return AdCopy{}, false
	}
	if out.Headline == "" && out.Body == "" {
		return AdCopy{}, false
	}
	return out, true
}

func parseLines(raw, service, city string) AdCopy {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	pick := func(i int, fallback string) string {
		if i < len(lines) {
			return lines[i]
		}
		return fallback
	}

	var bodyParts []string
	for i := 1; i <= 2 && i < len(lines); i++ {
		bodyParts = append(bodyParts, lines[i])
	}
	body := strings.Join(bodyParts, " ")
	if body == "" {
		body = fmt.Sprintf("Quality %s you can count on. Serving %s and surrounding areas.", service, city)
	}

	return AdCopy{
		Headline:         pick(0, fmt.Sprintf("Professional %s in %s", service, city)),
		Body:             body,
		FacebookCaption:  pick(3, fmt.Sprintf("Looking for %s in %s? We've got you covered.", service, city)),
		NextdoorCaption:  pick(4, fmt.Sprintf("Your neighbors trust us for %s in %s.", service, city)),
		InstagramCaption: pick(5, fmt.Sprintf("%s done right. %s locals, get in touch!", service, city)),
	}
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
