package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommandArgs(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        []string
	}

	testCases := []TestCase{
		{
			description: "should discard first word",
			args:        "!weather Toronto",
			want:        []string{"Toronto"},
		},
		{
			description: "should only discard first word",
			args:        "!weather New   York",
			want:        []string{"New", "York"},
		},
		{
			description: "empty on no args",
			args:        "!weather",
			want:        nil,
		},
		{
			description: "empty on no input",
			args:        "",
			want:        nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommandArgs(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParseCommand(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "should return first word",
			args:        "!help",
			want:        "!help",
		},
		{
			description: "should discard following words",
			args:        "!help !weather now",
			want:        "!help",
		},
		{
			description: "should lowercase",
			args:        "!HELP",
			want:        "!help",
		},
		{
			description: "should strip bot mention",
			args:        "!help@cortex_bot",
			want:        "!help",
		},
		{
			description: "leading whitespace",
			args:        "   !stock AAPL",
			want:        "!stock",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommand(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("hello Cortex", []string{"cortex"}))
	assert.True(t, ContainsAny("THANKS CORTEX!", []string{"bye cortex", "thanks cortex"}))
	assert.False(t, ContainsAny("hello there", []string{"cortex"}))
	assert.False(t, ContainsAny("anything", []string{"", "  "}))
	assert.False(t, ContainsAny("anything", nil))
}

func TestMuteRecordMuted(t *testing.T) {
	assert.False(t, MuteRecord{}.Muted())
}
