package shell

import "testing"

func TestTokenize_Words(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "echo hello",
			expected: []string{"echo", "hello"},
		},
		{
			name:     "command with multiple arguments",
			input:    "ls -la /home/user",
			expected: []string{"ls", "-la", "/home/user"},
		},
		{
			name:     "single quoted string",
			input:    "echo 'hello world'",
			expected: []string{"echo", "hello world"},
		},
		{
			name:     "double quoted string",
			input:    `echo "hello world"`,
			expected: []string{"echo", "hello world"},
		},
		{
			name:     "mixed quotes",
			input:    `echo "hello" 'world'`,
			expected: []string{"echo", "hello", "world"},
		},
		{
			name:     "escaped characters outside quotes",
			input:    `echo hello\ world`,
			expected: []string{"echo", "hello world"},
		},
		{
			name:     "escaped quote in double quotes",
			input:    `echo "hello \"world\""`,
			expected: []string{"echo", `hello "world"`},
		},
		{
			name:     "escaped backslash in double quotes",
			input:    `echo "hello\\world"`,
			expected: []string{"echo", `hello\world`},
		},
		{
			name:     "single quotes preserve everything literally",
			input:    `echo 'hello\nworld'`,
			expected: []string{"echo", `hello\nworld`},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "only whitespace",
			input:    "   \t  ",
			expected: nil,
		},
		{
			name:     "multiple spaces between arguments",
			input:    "echo    hello     world",
			expected: []string{"echo", "hello", "world"},
		},
		{
			name:     "unclosed single quote degrades gracefully",
			input:    "echo 'hello",
			expected: []string{"echo", "hello"},
		},
		{
			name:     "unclosed double quote degrades gracefully",
			input:    `echo "hello`,
			expected: []string{"echo", "hello"},
		},
		{
			name:     "trailing backslash is swallowed",
			input:    `echo hello\`,
			expected: []string{"echo", "hello"},
		},
		{
			name:     "empty quotes produce nothing",
			input:    `echo "" ''`,
			expected: []string{"echo"},
		},
		{
			name:     "adjacent quoted strings concatenate",
			input:    `echo "hello"'world'`,
			expected: []string{"echo", "helloworld"},
		},
		{
			name:     "adjacent single-quoted strings concatenate",
			input:    `'a''b'`,
			expected: []string{"ab"},
		},
		{
			name:     "three adjacent quoted segments concatenate",
			input:    `"a"b"c"`,
			expected: []string{"abc"},
		},
		{
			name:     "single quote preserves internal spaces",
			input:    `echo 'a   b'`,
			expected: []string{"echo", "a   b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			got := wordsOf(tokens)
			if !equalStringSlices(got, tt.expected) {
				t.Errorf("input: %q\nexpected: %v\ngot:      %v", tt.input, tt.expected, got)
			}
		})
	}
}

func TestTokenize_RedirectionOperators(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{
			name:     "stdout create",
			input:    "echo hi > out.txt",
			expected: []TokenKind{TokenWord, TokenWord, TokenRedirectStdoutCreate, TokenWord},
		},
		{
			name:     "stdout create with fd 1 prefix",
			input:    "echo hi 1> out.txt",
			expected: []TokenKind{TokenWord, TokenWord, TokenRedirectStdoutCreate, TokenWord},
		},
		{
			name:     "stdout append",
			input:    "echo hi >> out.txt",
			expected: []TokenKind{TokenWord, TokenWord, TokenRedirectStdoutAppend, TokenWord},
		},
		{
			name:     "stderr create",
			input:    "cmd 2> err.txt",
			expected: []TokenKind{TokenWord, TokenRedirectStderrCreate, TokenWord},
		},
		{
			name:     "stderr append",
			input:    "cmd 2>> err.txt",
			expected: []TokenKind{TokenWord, TokenRedirectStderrAppend, TokenWord},
		},
		{
			name:     "operator glued to preceding word with no space",
			input:    "echo hi>out.txt",
			expected: []TokenKind{TokenWord, TokenWord, TokenRedirectStdoutCreate, TokenWord},
		},
		{
			name:     "quoted operator text is a plain word, not an operator",
			input:    `echo '>'`,
			expected: []TokenKind{TokenWord, TokenWord},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("input: %q\nexpected %d tokens, got %d (%v)", tt.input, len(tt.expected), len(tokens), tokens)
			}
			for i, k := range tt.expected {
				if tokens[i].Kind != k {
					t.Errorf("input: %q\ntoken %d: expected kind %v, got %v", tt.input, i, k, tokens[i].Kind)
				}
			}
		})
	}
}

func TestTokenize_PipeSeparator(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{
			name:     "simple pipe",
			input:    "ls | wc -l",
			expected: []TokenKind{TokenWord, TokenPipe, TokenWord, TokenWord},
		},
		{
			name:     "extra surrounding spaces still match",
			input:    "ls   |   wc",
			expected: []TokenKind{TokenWord, TokenPipe, TokenWord},
		},
		{
			name:     "bare pipe with no surrounding spaces is literal",
			input:    "a|b",
			expected: []TokenKind{TokenWord},
		},
		{
			name:     "quoted pipe literal is not a separator",
			input:    `echo 'a | b'`,
			expected: []TokenKind{TokenWord, TokenWord},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("input: %q\nexpected %d tokens, got %d (%v)", tt.input, len(tt.expected), len(tokens), tokens)
			}
			for i, k := range tt.expected {
				if tokens[i].Kind != k {
					t.Errorf("input: %q\ntoken %d: expected kind %v, got %v", tt.input, i, k, tokens[i].Kind)
				}
			}
		})
	}
}

func wordsOf(tokens []Token) []string {
	var words []string
	for _, t := range tokens {
		if t.Kind == TokenWord {
			words = append(words, t.Value)
		}
	}
	return words
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
