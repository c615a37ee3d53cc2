package filefind

import "testing"

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{
			name:    "match any .txt file",
			pattern: "*.txt",
			input:   "report.txt",
			want:    true,
		},
		{
			name:    "match exact name",
			pattern: "report.txt",
			input:   "report.txt",
			want:    true,
		},
		{
			name:    "no match different extension",
			pattern: "*.txt",
			input:   "report.md",
			want:    false,
		},
		{
			name:    "whole name must match",
			pattern: "report",
			input:   "report.txt",
			want:    false,
		},
		{
			name:    "question mark single char",
			pattern: "file?.log",
			input:   "file1.log",
			want:    true,
		},
		{
			name:    "question mark rejects two chars",
			pattern: "file?.log",
			input:   "file12.log",
			want:    false,
		},
		{
			name:    "character class match",
			pattern: "file[0-9].log",
			input:   "file7.log",
			want:    true,
		},
		{
			name:    "character class no match",
			pattern: "file[0-9].log",
			input:   "fileX.log",
			want:    false,
		},
		{
			name:    "alternatives",
			pattern: "*.{go,md}",
			input:   "README.md",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompilePattern(tt.pattern)
			if err != nil {
				t.Fatalf("CompilePattern(%q): %v", tt.pattern, err)
			}
			if got := p.Match(tt.input); got != tt.want {
				t.Errorf("Match(%q) against %q = %v, want %v", tt.input, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestCompilePatternInvalid(t *testing.T) {
	if _, err := CompilePattern("[unterminated"); err == nil {
		t.Error("expected error for unterminated character class")
	}
}

func TestNormalizePatterns(t *testing.T) {
	precompiled := MustCompilePattern("*.go")

	patterns, err := normalizePatterns("like", []Matchable{Glob("*.txt"), precompiled})
	if err != nil {
		t.Fatalf("normalizePatterns: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("got %d patterns, want 2", len(patterns))
	}
	if patterns[0].String() != "*.txt" {
		t.Errorf("order not preserved: first pattern is %q", patterns[0])
	}
	if patterns[1] != precompiled {
		t.Error("precompiled pattern did not pass through unchanged")
	}
}

func TestNormalizePatternsEmpty(t *testing.T) {
	patterns, err := normalizePatterns("like", nil)
	if err != nil {
		t.Fatalf("normalizePatterns: %v", err)
	}
	if patterns != nil {
		t.Errorf("expected nil for empty input, got %v", patterns)
	}
}
