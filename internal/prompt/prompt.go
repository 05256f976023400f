// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package prompt asks yes/no questions. Standard reads from a console stream
// and Scripted replays canned answers in tests.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Affirmative is the only answer that confirms.
const Affirmative = "y"

// ErrNoAnswer is returned when input ends before a line is read.
var ErrNoAnswer = errors.New("no answer")

// Prompter asks question and reports whether the answer was affirmative.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Standard prompts on Out and reads one line per question from In.
type Standard struct {
	In  io.Reader
	Out io.Writer

	once   sync.Once
	reader *bufio.Reader
}

var _ Prompter = (*Standard)(nil)

// Confirm implements Prompter. The answer is compared to Affirmative without
// regard to case after trimming the line ending.
func (s *Standard) Confirm(question string) (bool, error) {
	s.once.Do(func() { s.reader = bufio.NewReader(s.In) })

	if _, err := fmt.Fprint(s.Out, question); err != nil {
		return false, err
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return false, ErrNoAnswer
		}
		if !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
	}

	return IsAffirmative(line), nil
}

// IsAffirmative reports whether answer is the affirmative token.
func IsAffirmative(answer string) bool {
	return strings.EqualFold(strings.TrimRight(answer, "\r\n"), Affirmative)
}

// Scripted answers questions from a fixed list and records what was asked.
type Scripted struct {
	Answers []string
	Asked   []string
}

var _ Prompter = (*Scripted)(nil)

// Confirm implements Prompter. Running out of answers is ErrNoAnswer.
func (s *Scripted) Confirm(question string) (bool, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Asked) > len(s.Answers) {
		return false, ErrNoAnswer
	}
	return IsAffirmative(s.Answers[len(s.Asked)-1]), nil
}
