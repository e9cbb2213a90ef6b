package shell

// RedirectKind distinguishes the two forms a RedirectSpec can take.
type RedirectKind int

const (
	RedirectCreate RedirectKind = iota // truncate-or-create
	RedirectAppend                     // create-if-absent, append
)

// RedirectSpec describes how a stage's stdout or stderr should be
// connected to a file.
type RedirectSpec struct {
	Kind RedirectKind
	Path string
}

// Stage is one command within a pipeline: its name, its arguments, and
// its optional stdout/stderr redirections. Stdin is never modeled here
// — it is supplied either by the previous stage's pipe or, for the
// first stage, by the shell's inherited stdin.
type Stage struct {
	Cmd         string
	Argv        []string
	StdoutRedir *RedirectSpec
	StderrRedir *RedirectSpec
}

// ParsePipeline tokenizes line and groups the resulting tokens into
// stages at pipe separators, extracting each stage's redirections
// inline. It returns ErrBadRedirect if a redirection operator has no
// following word token, and ErrEmptyPipeline if a stage (e.g. from a
// leading or trailing " | ", or two separators in a row) has no
// command token.
func ParsePipeline(line string) ([]Stage, error) {
	tokens := Tokenize(line)

	var groups [][]Token
	var cur []Token
	for _, t := range tokens {
		if t.Kind == TokenPipe {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)

	stages := make([]Stage, 0, len(groups))
	for _, g := range groups {
		stage, err := buildStage(g)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

func buildStage(tokens []Token) (Stage, error) {
	var stage Stage
	var words []string

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		switch t.Kind {
		case TokenWord:
			words = append(words, t.Value)

		case TokenRedirectStdoutCreate, TokenRedirectStdoutAppend,
			TokenRedirectStderrCreate, TokenRedirectStderrAppend:
			i++
			if i >= len(tokens) || tokens[i].Kind != TokenWord {
				return Stage{}, ErrBadRedirect
			}
			spec := &RedirectSpec{Path: tokens[i].Value}

			switch t.Kind {
			case TokenRedirectStdoutCreate:
				spec.Kind = RedirectCreate
				stage.StdoutRedir = spec
			case TokenRedirectStdoutAppend:
				spec.Kind = RedirectAppend
				stage.StdoutRedir = spec
			case TokenRedirectStderrCreate:
				spec.Kind = RedirectCreate
				stage.StderrRedir = spec
			case TokenRedirectStderrAppend:
				spec.Kind = RedirectAppend
				stage.StderrRedir = spec
			}
		}
	}

	if len(words) == 0 {
		return Stage{}, ErrEmptyPipeline
	}

	stage.Cmd = words[0]
	if len(words) > 1 {
		stage.Argv = words[1:]
	}
	return stage, nil
}
