package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FuzzyMatch performs fuzzy string matching using Levenshtein distance
// Returns the minimum edit distance between the shorter string and the best matching substring of the longer
func FuzzyMatch(str1, str2 string) int {
	// Normalize strings: lowercase and remove extra spaces
	str1 = strings.ToLower(strings.TrimSpace(str1))
	str2 = strings.ToLower(strings.TrimSpace(str2))

	var shorter, longer string
	if len(str1) <= len(str2) {
		shorter = str1
		longer = str2
	} else {
		shorter = str2
		longer = str1
	}

	// slide the shorter string across the longer one
	minDistance := math.MaxInt32

	for i := 0; i <= len(longer)-len(shorter); i++ {
		substring := longer[i : i+len(shorter)]
		distance := LevenshteinDistance(shorter, substring)
		if distance < minDistance {
			minDistance = distance
		}
		if minDistance == 0 {
			break
		}
	}

	return minDistance
}

// LevenshteinDistance calculates the Levenshtein distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}

	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

// FuzzyMatchScore returns a similarity score between 0.0 and 1.0
// where 1.0 is a perfect match and 0.0 is completely different
func FuzzyMatchScore(str1, str2 string) float64 {
	distance := LevenshteinDistance(strings.ToLower(strings.TrimSpace(str1)), strings.ToLower(strings.TrimSpace(str2)))
	maxLen := len(str1)
	if len(str2) > maxLen {
		maxLen = len(str2)
	}

	if maxLen == 0 {
		return 1.0 // Both strings are empty
	}

	return 1.0 - (float64(distance) / float64(maxLen))
}

// ClosestMatch returns the candidate most similar to term, or "" when there are no candidates.
// Ties resolve to the earliest candidate.
func ClosestMatch(term string, candidates []string) string {
	best := ""
	bestScore := math.Inf(-1)
	for _, c := range candidates {
		score := FuzzyMatchScore(term, c)
		if FuzzyMatch(term, c) == 0 {
			// full substring hit ("Man" in "Man City") beats edit distance
			score += 1.0
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// GetAsInteger converts various types to integer
// If s is an integer, return it
// If s is a string that represents an integer, convert it to an integer and return it
// Whole-number floats (and strings such as "2.0") are accepted
// If s is any other type, return an error
func GetAsInteger(s any) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("cannot convert nil to integer")
	}

	switch v := s.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("int64 value %d is out of int range", v)
		}
		return int(v), nil
	case float32:
		if v != float32(int(v)) {
			return 0, fmt.Errorf("float32 value %f is not a whole number", v)
		}
		return int(v), nil
	case float64:
		if math.IsNaN(v) || v != float64(int(v)) {
			return 0, fmt.Errorf("float64 value %f is not a whole number", v)
		}
		return int(v), nil
	case string:
		t := strings.TrimSpace(v)
		if result, err := strconv.Atoi(t); err == nil {
			return result, nil
		}
		// pandas-exported files sometimes carry goals as "2.0"
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string '%s' to integer: %w", v, err)
		}
		return GetAsInteger(f)
	default:
		return 0, fmt.Errorf("cannot convert type %T to integer", s)
	}
}
