// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/manorquest/types"
)

var directionExpansions = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
}

var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
}

var verbAliases = map[string]string{
	// Look
	"l": "look",

	// Movement
	"walk": "go",
	"run":  "go",
	"move": "go",
	"head": "go",

	// Combat
	"attack": "fight",
	"hit":    "fight",
	"kill":   "fight",
	"strike": "fight",

	// Search
	"explore": "search",
	"x":       "search",

	// Talk
	"ask":      "talk",
	"speak":    "talk",
	"chat":     "talk",
	"converse": "talk",

	// Steal
	"rob":        "steal",
	"pickpocket": "steal",
	"pilfer":     "steal",

	// Inspect
	"examine": "inspect",
	"read":    "inspect",
	"check":   "inspect",

	// Gift
	"give":  "gift",
	"offer": "gift",

	// Miscellaneous
	"inv":  "inventory",
	"i":    "inventory",
	"?":    "help",
	"h":    "help",
	"exit": "quit",
	"q":    "quit",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "from": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "n", "south", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Intent{Verb: "go", Object: dir}
		}
		if directionNames[words[0]] {
			return types.Intent{Verb: "go", Object: words[0]}
		}
	}

	words = expandMultiWordVerbs(words)
	if len(words) == 0 {
		return types.Intent{}
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	if verb == "go" && len(rest) == 1 {
		if dir, ok := directionExpansions[rest[0]]; ok {
			rest[0] = dir
		}
	}

	object, target := splitOnPreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "look around", "talk to", "steal from" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look":
		if words[1] == "around" {
			return append([]string{"search"}, words[2:]...)
		}
		if words[1] == "at" {
			return append([]string{"inspect"}, words[2:]...)
		}
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "steal":
		if words[1] == "from" {
			return append([]string{"steal"}, words[2:]...)
		}
	case "go":
		if words[1] == "to" {
			return append([]string{"go"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
