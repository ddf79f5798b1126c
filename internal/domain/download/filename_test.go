package download

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "reserved characters removed",
			input: `My <Video>: Test/Name`,
			want:  "My Video TestName",
		},
		{
			name:  "backslash and wildcard removed",
			input: `a\b?c*d|e`,
			want:  "abcde",
		},
		{
			name:  "control characters become spaces",
			input: "a\tb\nc",
			want:  "a b c",
		},
		{
			name:  "whitespace collapsed and trimmed",
			input: "  hello   world  ",
			want:  "hello world",
		},
		{
			name:  "traversal sequences lose separators",
			input: "../../etc/passwd",
			want:  "....etcpasswd",
		},
		{
			name:  "already sanitized passes through",
			input: "Example Video [720p].mp4",
			want:  "Example Video [720p].mp4",
		},
		{
			name:  "length capped at 150",
			input: strings.Repeat("a", 160),
			want:  strings.Repeat("a", 150),
		},
		{
			name:  "length cap counts runes not bytes",
			input: strings.Repeat("é", 160),
			want:  strings.Repeat("é", 150),
		},
		{
			name:  "cap does not expose trailing space",
			input: strings.Repeat("a", 149) + " bbb",
			want:  strings.Repeat("a", 149),
		},
		{
			name:  "empty stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Properties(t *testing.T) {
	inputs := []string{
		"",
		"plain name",
		`<>:"/\|?*`,
		"  spaced \t out \n title  ",
		"../../etc/passwd",
		"日本語タイトル/テスト",
		strings.Repeat("x", 500),
		strings.Repeat("ナ", 200) + "<end>",
		"dl_01h455vb4pex_Some Title [1080p].mp4",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", input, once, twice)
		}
		if n := len([]rune(once)); n > 150 {
			t.Errorf("Sanitize(%q) length = %d runes, want <= 150", input, n)
		}
		if strings.ContainsAny(once, `<>:"/\|?*`) {
			t.Errorf("Sanitize(%q) = %q still contains reserved characters", input, once)
		}
	}
}

func TestFallbackName(t *testing.T) {
	name := FallbackName()
	if !strings.HasPrefix(name, "file_") {
		t.Fatalf("FallbackName() = %q, want file_ prefix", name)
	}
	if len(name) != len("file_")+8 {
		t.Errorf("FallbackName() length = %d, want %d", len(name), len("file_")+8)
	}
	if other := FallbackName(); other == name {
		t.Errorf("FallbackName() returned the same value twice: %q", name)
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{1, "1.00 B"},
		{500, "500.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{2047, "2.00 KB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
		{5 * 1099511627776, "5.00 TB"},
	}

	for _, tt := range tests {
		if got := HumanSize(tt.size); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
