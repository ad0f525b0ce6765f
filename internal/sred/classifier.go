package sred

import (
	"sort"
	"strings"
)

// vocabEntry binds a recognized message prefix to its role.
type vocabEntry struct {
	prefix string
	role   TagRole
}

// tagVocabulary is the built-in tag table. Order matters only for
// deterministic iteration; prefixes never overlap.
var tagVocabulary = []vocabEntry{
	{"exp:", RoleStart},
	{"obs:", RoleIntermediate},
	{"test:", RoleIntermediate},
	{"succeed:", RoleEnd},
	{"pivot:", RoleEnd},
	{"stop:", RoleEnd},
	{"fail:", RoleEnd},
}

// extendVocabulary returns the built-in table plus the given per-project
// additions, sorted for deterministic matching. Built-in prefixes cannot be
// overridden; a colliding addition is ignored.
func extendVocabulary(extra map[string]TagRole) []vocabEntry {
	vocab := make([]vocabEntry, len(tagVocabulary), len(tagVocabulary)+len(extra))
	copy(vocab, tagVocabulary)

	builtin := make(map[string]struct{}, len(tagVocabulary))
	for _, entry := range tagVocabulary {
		builtin[entry.prefix] = struct{}{}
	}

	prefixes := make([]string, 0, len(extra))
	for prefix := range extra {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		lower := strings.ToLower(prefix)
		if _, ok := builtin[lower]; ok {
			continue
		}
		vocab = append(vocab, vocabEntry{prefix: lower, role: extra[prefix]})
	}
	return vocab
}

// ClassifyMessage determines a commit message's tag role by case-insensitive
// prefix match against the built-in vocabulary. It is total and pure: any
// message outside the vocabulary yields ("", RoleNone).
func ClassifyMessage(message string) (tag string, role TagRole) {
	return classifyMessage(tagVocabulary, message)
}

func classifyMessage(vocab []vocabEntry, message string) (tag string, role TagRole) {
	lower := strings.ToLower(message)
	for _, entry := range vocab {
		if strings.HasPrefix(lower, entry.prefix) {
			return entry.prefix, entry.role
		}
	}
	return "", RoleNone
}

// classify turns raw records into classified commits, dropping every record
// whose message is outside the tag vocabulary. Dropped commits are invisible
// to session accounting entirely.
func classify(records []Record, vocab []vocabEntry) []Commit {
	commits := make([]Commit, 0, len(records))
	for _, r := range records {
		tag, role := classifyMessage(vocab, r.Message)
		if role == RoleNone {
			continue
		}
		commits = append(commits, Commit{
			Hash:      r.Hash,
			Timestamp: r.Timestamp,
			Message:   r.Message,
			Tag:       tag,
			Role:      role,
		})
	}
	return commits
}
