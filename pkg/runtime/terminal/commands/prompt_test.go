package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrompter_Scope(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		defaultRegion string
		expected      string
	}{
		{"accepts typed region", "eu-west-1\n", "us-east-1", "eu-west-1"},
		{"empty answer keeps default", "\n", "eu-central-1", "eu-central-1"},
		{"blank default falls back to us-east-1", "\n", "", "us-east-1"},
		{"trims whitespace", "  ap-south-1  \n", "us-east-1", "ap-south-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tc.input), &out)
			assert.Equal(t, tc.expected, p.Scope(tc.defaultRegion))
			assert.Contains(t, out.String(), "Region to assess")
		})
	}
}

func TestPrompter_ConfirmShortfall(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"y continues", "y\n", true},
		{"yes continues", "YES\n", true},
		{"n aborts", "n\n", false},
		{"empty answer defaults to abort", "\n", false},
		{"closed input aborts", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tc.input), &out)
			assert.Equal(t, tc.expected, p.ConfirmShortfall(58))
			assert.Contains(t, out.String(), "58%")
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}
