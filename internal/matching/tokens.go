package matching

import "strings"

// ParseCSVTokens splits raw on commas and returns the trimmed, lowercased,
// non-empty tokens in their original order. Duplicates are kept.
func ParseCSVTokens(raw string) []string {
	tokens := make([]string, 0)
	if raw == "" {
		return tokens
	}

	for _, part := range strings.Split(raw, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens
}

// AnyTokenPresent reports whether at least one needle occurs in haystack.
// Empty needles or an empty haystack never match.
func AnyTokenPresent(needles []string, haystack string) bool {
	if len(needles) == 0 || haystack == "" {
		return false
	}

	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// SkillsOverlap reports whether any user skill and any job skill contain one
// another, so "react" matches "react native" and the other way round.
// Both lists are expected to be lowercased already.
func SkillsOverlap(userSkills, jobSkills []string) bool {
	if len(userSkills) == 0 || len(jobSkills) == 0 {
		return false
	}

	for _, us := range userSkills {
		for _, js := range jobSkills {
			if strings.Contains(js, us) || strings.Contains(us, js) {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
