package errors

import (
	"fmt"
	"strings"
)

// DeclarationHeaders are the visibility-and-keyword pairs the dispatcher accepts.
var DeclarationHeaders = []string{"pub trait", "pub struct", "pub enum"}

// SuggestDeclaration suggests a fix when input does not start with a known
// declaration header. It looks at the first two whitespace-separated tokens
// and uses Levenshtein distance to find the closest header.
func SuggestDeclaration(input string) string {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return "Input is empty; expected a 'pub trait', 'pub struct', or 'pub enum' declaration"
	}

	// Keyword present but visibility missing: "struct Point { ... }"
	for _, header := range DeclarationHeaders {
		keyword := strings.TrimPrefix(header, "pub ")
		if tokens[0] == keyword {
			return fmt.Sprintf("Add the visibility marker: '%s'", header)
		}
	}

	if len(tokens) < 2 {
		return fmt.Sprintf("Valid declarations start with: %s", strings.Join(DeclarationHeaders, ", "))
	}

	return SuggestName(tokens[0]+" "+tokens[1], DeclarationHeaders)
}

// SuggestName suggests the closest valid name when an unknown one is used.
// It uses Levenshtein distance to find similar names.
func SuggestName(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	// Find the closest match
	minDistance := 1000
	var bestMatch string

	for _, name := range valid {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest if the distance is reasonable (< 4 edits)
	if minDistance < 4 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	return fmt.Sprintf("Valid declarations start with: %s", strings.Join(valid, ", "))
}

// SuggestColonPair suggests the "name: Type" shape for fields and parameters.
func SuggestColonPair(what string) string {
	return fmt.Sprintf("Write each %s as 'name: Type'", what)
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	// Create distance matrix
	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	// Initialize first column and row
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	// Compute distances
	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
