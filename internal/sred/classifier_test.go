package sred

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMessage_Vocabulary(t *testing.T) {
	cases := []struct {
		message string
		tag     string
		role    TagRole
	}{
		{"exp: try caching layer", "exp:", RoleStart},
		{"obs: cache hit rate at 40%", "obs:", RoleIntermediate},
		{"test: add benchmark for warm path", "test:", RoleIntermediate},
		{"succeed: caching works", "succeed:", RoleEnd},
		{"pivot: switch to LRU", "pivot:", RoleEnd},
		{"stop: out of time", "stop:", RoleEnd},
		{"fail: cache invalidation too complex", "fail:", RoleEnd},
		{"fix typo in readme", "", RoleNone},
		{"experiment without colon prefix", "", RoleNone},
		{"", "", RoleNone},
	}

	for _, tc := range cases {
		tag, role := ClassifyMessage(tc.message)
		assert.Equal(t, tc.tag, tag, "message %q", tc.message)
		assert.Equal(t, tc.role, role, "message %q", tc.message)
	}
}

func TestClassifyMessage_CaseInsensitive(t *testing.T) {
	tag, role := ClassifyMessage("EXP: Try Caching Layer")
	assert.Equal(t, "exp:", tag)
	assert.Equal(t, RoleStart, role)

	tag, role = ClassifyMessage("Fail: did not work")
	assert.Equal(t, "fail:", tag)
	assert.Equal(t, RoleEnd, role)
}

func TestExtendVocabulary_AddsProjectTags(t *testing.T) {
	vocab := extendVocabulary(map[string]TagRole{
		"Spike:": RoleStart,
		"probe:": RoleIntermediate,
	})

	tag, role := classifyMessage(vocab, "spike: try a throwaway parser")
	assert.Equal(t, "spike:", tag)
	assert.Equal(t, RoleStart, role)

	tag, role = classifyMessage(vocab, "PROBE: measure allocation rate")
	assert.Equal(t, "probe:", tag)
	assert.Equal(t, RoleIntermediate, role)

	// The built-in table still applies unchanged.
	tag, role = classifyMessage(vocab, "exp: baseline")
	assert.Equal(t, "exp:", tag)
	assert.Equal(t, RoleStart, role)
}

func TestExtendVocabulary_BuiltinsNotOverridable(t *testing.T) {
	vocab := extendVocabulary(map[string]TagRole{"exp:": RoleEnd})

	tag, role := classifyMessage(vocab, "exp: still opens a session")
	assert.Equal(t, "exp:", tag)
	assert.Equal(t, RoleStart, role)
}

func TestParseTagRole(t *testing.T) {
	role, err := ParseTagRole("Intermediate")
	assert.NoError(t, err)
	assert.Equal(t, RoleIntermediate, role)

	_, err = ParseTagRole("none")
	assert.Error(t, err)
	_, err = ParseTagRole("opener")
	assert.Error(t, err)
}

func TestClassify_DropsUntaggedRecords(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	records := []Record{
		{Hash: "aaaa1111", Timestamp: base, Message: "exp: start work"},
		{Hash: "bbbb2222", Timestamp: base.Add(time.Hour), Message: "chore: bump deps"},
		{Hash: "cccc3333", Timestamp: base.Add(2 * time.Hour), Message: "succeed: done"},
	}

	commits := classify(records, tagVocabulary)

	assert.Len(t, commits, 2)
	assert.Equal(t, "aaaa1111", commits[0].Hash)
	assert.Equal(t, RoleStart, commits[0].Role)
	assert.Equal(t, "cccc3333", commits[1].Hash)
	assert.Equal(t, RoleEnd, commits[1].Role)
}
