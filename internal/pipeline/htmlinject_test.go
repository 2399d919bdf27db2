package pipeline

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSanitizeCSS - Style block escaping
// ---------------------------------------------------------------------------

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no escape needed", input: "body { color: red; }", expected: "body { color: red; }"},
		{name: "escapes style close", input: "</style>", expected: `<\/style>`},
		{name: "multiple occurrences", input: "</a></b>", expected: `<\/a><\/b>`},
		{name: "case variation", input: "</STYLE>", expected: `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInjectCSS - Insertion points
// ---------------------------------------------------------------------------

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		html       string
		css        string
		wantPrefix string
		wantSubstr string
		unchanged  bool
	}{
		{
			name:      "empty css leaves html unchanged",
			html:      "<html><head></head></html>",
			css:       "",
			unchanged: true,
		},
		{
			name:       "inserts before closing head",
			html:       "<html><head><title>x</title></head><body></body></html>",
			css:        "h1{}",
			wantSubstr: "<title>x</title><style>\nh1{}\n</style>\n</head>",
		},
		{
			name:       "uppercase head",
			html:       "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			css:        "p{}",
			wantSubstr: "<HEAD><style>\np{}\n</style>\n</HEAD>",
		},
		{
			name:       "falls back to body",
			html:       `<body class="x"><p>hi</p></body>`,
			css:        "p{}",
			wantSubstr: `<body class="x"><style>`,
		},
		{
			name:       "prepends without head or body",
			html:       "<p>hi</p>",
			css:        "p{}",
			wantPrefix: "<style>",
		},
		{
			name:       "sanitizes close sequences",
			html:       "<head></head>",
			css:        "a{}</style><script>",
			wantSubstr: `a{}<\/style><script>`,
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if tt.unchanged && got != tt.html {
				t.Errorf("InjectCSS() = %q, want unchanged", got)
			}
			if tt.wantPrefix != "" && !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("InjectCSS() = %q, want prefix %q", got, tt.wantPrefix)
			}
			if tt.wantSubstr != "" && !strings.Contains(got, tt.wantSubstr) {
				t.Errorf("InjectCSS() = %q, want substring %q", got, tt.wantSubstr)
			}
		})
	}
}

func TestInjectCSS_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "<head></head>"
	if got := (&CSSInjection{}).InjectCSS(ctx, in, "p{}"); got != in {
		t.Errorf("InjectCSS() with canceled context = %q, want unchanged", got)
	}
}
