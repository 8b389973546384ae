package formatting_test

import (
	"errors"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/formatting"
)

type payload struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    payload
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"name":"acme","score":42}`,
			want:    payload{Name: "acme", Score: 42},
		},
		{
			name:    "json fence",
			content: "```json\n{\"name\":\"acme\",\"score\":42}\n```",
			want:    payload{Name: "acme", Score: 42},
		},
		{
			name:    "bare fence",
			content: "```\n{\"name\":\"acme\",\"score\":7}\n```",
			want:    payload{Name: "acme", Score: 7},
		},
		{
			name:    "surrounding whitespace",
			content: "  \n{\"name\":\"acme\",\"score\":1}\n  ",
			want:    payload{Name: "acme", Score: 1},
		},
		{
			name:    "not json",
			content: "the model apologizes and refuses",
			wantErr: true,
		},
		{
			name:    "fence with broken json",
			content: "```json\n{\"name\": \n```",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formatting.Parse[payload](tc.content)
			if tc.wantErr {
				if !errors.Is(err, formatting.ErrParseFailed) {
					t.Errorf("error = %v, want ErrParseFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Parse() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{512, 0, "512 B"},
		{1024, 0, "1 KB"},
		{1536, 1, "1.5 KB"},
		{52428800, 0, "50 MB"},
		{1073741824, 2, "1.00 GB"},
	}

	for _, tc := range tests {
		if got := formatting.FormatBytes(tc.n, tc.precision); got != tc.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tc.n, tc.precision, got, tc.want)
		}
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"50MB", 52428800, false},
		{"1.5 KB", 1536, false},
		{"1024", 1024, false},
		{"2gb", 2147483648, false},
		{"", 0, true},
		{"fifty megabytes", 0, true},
		{"10XB", 0, true},
	}

	for _, tc := range tests {
		got, err := formatting.ParseBytes(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseBytes(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBytes(%q) error = %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBytes(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
