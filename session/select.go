package session

import (
	"fmt"
	"strings"

	"github.com/zond/grue"
	"github.com/zond/grue/lang"
)

// Select asks until the answer is one of the options, and returns that option.
func Select(t Terminal, prompt string, options []string) (string, error) {
	question := fmt.Sprintf("%s %s\n", prompt, lang.Enumerator{Pattern: "[%s]", Operator: "or"}.Do(options...))
	for {
		fmt.Fprint(t, question)
		line, err := t.ReadLine()
		if err != nil {
			return "", grue.WithStack(err)
		}
		for _, option := range options {
			if strings.EqualFold(strings.TrimSpace(line), option) {
				return option, nil
			}
		}
	}
}
