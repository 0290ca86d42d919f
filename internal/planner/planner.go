// Package planner turns a flat token sequence from the lexer into a
// Pipeline: an ordered list of Stages, each with its own argv and
// redirections. It generalizes the ArgumentParser in
// pkg/shell/redirections.go with pipeline splitting on "|".
package planner

import (
	"errors"
	"fmt"

	"github.com/coreshell/posh/internal/redirect"
)

// ErrEmptyCommand signals that, after splitting and redirection
// extraction, there was nothing left to run — the caller should silently
// return to the prompt, printing nothing.
var ErrEmptyCommand = errors.New("empty command")

// Stage is one command-plus-redirections unit within a Pipeline.
type Stage struct {
	Argv  []string
	Redir []redirect.TaggedSpec
}

// Pipeline is an ordered sequence of one or more Stages.
type Pipeline struct {
	Stages []Stage
}

// Plan splits tokens into pipeline stages at "|" and extracts each stage's
// redirections from its own argv.
//
// An empty stage — caused by a leading, trailing, or doubled "|" — is a
// planning error reported as "Empty pipeline stage". A
// line that is empty after redirection extraction (e.g. "> out.txt" alone)
// returns ErrEmptyCommand instead, which callers treat as silently
// re-prompting.
func Plan(tokens []string) (Pipeline, error) {
	if len(tokens) == 0 {
		return Pipeline{}, ErrEmptyCommand
	}

	groups := splitOnPipe(tokens)
	for _, g := range groups {
		if len(g) == 0 {
			return Pipeline{}, fmt.Errorf("Empty pipeline stage")
		}
	}

	stages := make([]Stage, 0, len(groups))
	for _, g := range groups {
		stage := extractRedirections(g)
		if len(stage.Argv) == 0 {
			return Pipeline{}, ErrEmptyCommand
		}
		stages = append(stages, stage)
	}

	return Pipeline{Stages: stages}, nil
}

func splitOnPipe(tokens []string) [][]string {
	var groups [][]string
	var current []string

	for _, tok := range tokens {
		if tok == "|" {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	groups = append(groups, current)

	return groups
}

// extractRedirections scans a single stage's tokens left to right, pulling
// out redirection operator+operand pairs and leaving the clean argv behind.
// An operator with no following token is silently dropped.
func extractRedirections(tokens []string) Stage {
	stage := Stage{Argv: []string{}}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		fd, mode, ok := redirect.ModeOf(tok)
		if !ok {
			stage.Argv = append(stage.Argv, tok)
			i++
			continue
		}

		if i == len(tokens)-1 {
			// Operator at end of stage with no operand: dropped silently.
			i++
			continue
		}

		stage.Redir = append(stage.Redir, redirect.TaggedSpec{
			Spec: redirect.Spec{FD: fd, Path: tokens[i+1]},
			Mode: mode,
		})
		i += 2
	}

	return stage
}
