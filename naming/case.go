// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// Case is a naming convention applied to a composed lookup key.
type Case string

// Supported naming conventions.
const (
	// Lower lowercases every character and keeps separators as they are.
	Lower Case = "lowercase"
	// Upper uppercases every character and keeps separators as they are.
	Upper          Case = "UPPERCASE"
	Pascal         Case = "PascalCase"
	Camel          Case = "camelCase"
	Snake          Case = "snake_case"
	ScreamingSnake Case = "SCREAMING_SNAKE_CASE"
	Kebab          Case = "kebab-case"
	ScreamingKebab Case = "SCREAMING-KEBAB-CASE"
)

var caseAliases = map[string]Case{
	"lowercase":            Lower,
	"lower":                Lower,
	"UPPERCASE":            Upper,
	"UPPER":                Upper,
	"PascalCase":           Pascal,
	"camelCase":            Camel,
	"snake_case":           Snake,
	"SCREAMING_SNAKE_CASE": ScreamingSnake,
	"kebab-case":           Kebab,
	"SCREAMING-KEBAB-CASE": ScreamingKebab,
}

// ParseCase returns the Case registered under name. Both the canonical
// spelling and the short aliases "lower" and "UPPER" are accepted.
func ParseCase(name string) (Case, error) {
	if c, ok := caseAliases[name]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown naming case %q", name)
}

// Valid reports whether c is one of the supported conventions.
func (c Case) Valid() bool {
	_, ok := caseAliases[string(c)]
	return ok
}

// Apply converts s to the naming convention c. An empty Case returns s
// unchanged.
func (c Case) Apply(s string) string {
	switch c {
	case "":
		return s
	case Lower:
		return strings.ToLower(s)
	case Upper:
		return strings.ToUpper(s)
	case Pascal:
		return joinWords(Words(s), "", func(i int, w string) string { return title(w) })
	case Camel:
		return joinWords(Words(s), "", func(i int, w string) string {
			if i == 0 {
				return strings.ToLower(w)
			}
			return title(w)
		})
	case Snake:
		return joinWords(Words(s), "_", func(_ int, w string) string { return strings.ToLower(w) })
	case ScreamingSnake:
		return joinWords(Words(s), "_", func(_ int, w string) string { return strings.ToUpper(w) })
	case Kebab:
		return joinWords(Words(s), "-", func(_ int, w string) string { return strings.ToLower(w) })
	case ScreamingKebab:
		return joinWords(Words(s), "-", func(_ int, w string) string { return strings.ToUpper(w) })
	}
	return s
}

// Words splits s into words. Underscores, hyphens, dots and whitespace
// separate words, as do lower-to-upper transitions ("someName") and the end
// of an acronym ("JSONData" becomes "JSON", "Data"). Digits stay attached to
// the word they follow, so "V1" is one word.
func Words(s string) []string {
	runes := []rune(s)
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

func joinWords(words []string, sep string, fn func(i int, w string) string) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(fn(i, w))
	}
	return b.String()
}

func title(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
