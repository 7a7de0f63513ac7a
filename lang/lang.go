package lang

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gertd/go-pluralize"
)

const (
	DefaultPattern   = "%s"
	DefaultSeparator = ","
	DefaultOperator  = "and"
)

var (
	pluralizer = pluralize.NewClient()
	smallCards = []string{"no", "one", "two", "three"}
)

// Enumerator joins elements into an English list.
// Two elements get no separator ("a or b"), three or more get a serial one ("a, b, or c").
type Enumerator struct {
	Pattern   string
	Separator string
	Operator  string
}

func (e Enumerator) Do(elements ...string) string {
	pattern, separator, operator := DefaultPattern, DefaultSeparator, DefaultOperator
	if e.Pattern != "" {
		pattern = e.Pattern
	}
	if e.Separator != "" {
		separator = e.Separator
	}
	if e.Operator != "" {
		operator = e.Operator
	}
	res := &bytes.Buffer{}
	for idx, element := range elements {
		fmt.Fprintf(res, pattern, element)
		switch {
		case idx+2 < len(elements):
			fmt.Fprintf(res, "%s ", separator)
		case idx+2 == len(elements) && len(elements) > 2:
			fmt.Fprintf(res, "%s %s ", separator, operator)
		case idx+2 == len(elements):
			fmt.Fprintf(res, " %s ", operator)
		}
	}
	return res.String()
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Article returns the indefinite article for word.
func Article(word string) string {
	lower := strings.ToLower(word)
	for _, prefix := range []string{"hour", "honest", "honor", "heir"} {
		if strings.HasPrefix(lower, prefix) {
			return "an"
		}
	}
	for _, prefix := range []string{"uni", "use", "one", "once", "eu"} {
		if strings.HasPrefix(lower, prefix) {
			return "a"
		}
	}
	for _, prefix := range []string{"8", "11", "18"} {
		if strings.HasPrefix(lower, prefix) {
			return "an"
		}
	}
	if lower != "" && strings.ContainsRune("aeiou", rune(lower[0])) {
		return "an"
	}
	return "a"
}

func Indef(word string) string {
	return fmt.Sprintf("%s %s", Article(word), word)
}

func Plural(word string) string {
	return pluralizer.Plural(word)
}

// Card phrases count of word: "no swords", "an axe", "two swords", "4 swords".
func Card(count int, word string) string {
	switch {
	case count == 1:
		return Indef(word)
	case count >= 0 && count < len(smallCards):
		return fmt.Sprintf("%s %s", smallCards[count], Plural(word))
	default:
		return fmt.Sprintf("%s %s", strconv.Itoa(count), Plural(word))
	}
}
