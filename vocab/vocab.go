// Package vocab normalizes player input into vocabulary words.
//
// A normalized word is the uppercase form of its first five characters, so
// "LANTERN" and "LANTE" are the same word. All matching of verbs,
// prepositions, directions and object names compares normalized words only.
package vocab

import (
	"strings"
	"unicode/utf8"
)

const WordLength = 5

// Preposition classes.
const (
	With = "WITH"
	In   = "IN"
	To   = "TO"
	At   = "AT"
	On   = "ON"
	Off  = "OFF"
)

// Directions.
const (
	North = "NORTH"
	South = "SOUTH"
	East  = "EAST"
	West  = "WEST"
	Up    = "UP"
	Down  = "DOWN"
	NE    = "NE"
	NW    = "NW"
	SE    = "SE"
	SW    = "SW"
	Enter = "ENTER"
	Exit  = "EXIT"
	Launc = "LAUNC"
	Land  = "LAND"
	Cross = "CROSS"
	Climb = "CLIMB"
)

// Words with special meaning in object phrases.
const (
	It    = "IT"
	Again = "AGAIN"
)

var (
	prepositions = map[string]string{
		"WITH":  With,
		"USING": With,
		"THROU": With,
		"IN":    In,
		"INSID": In,
		"INTO":  In,
		"TO":    To,
		"AT":    At,
		"ON":    On,
		"OFF":   Off,
	}
	directions = map[string]string{
		"N":     North,
		"NORTH": North,
		"S":     South,
		"SOUTH": South,
		"E":     East,
		"EAST":  East,
		"W":     West,
		"WEST":  West,
		"U":     Up,
		"UP":    Up,
		"D":     Down,
		"DOWN":  Down,
		"NE":    NE,
		"NW":    NW,
		"SE":    SE,
		"SW":    SW,
		"ENTER": Enter,
		"EXIT":  Exit,
		"OUT":   Exit,
		"LEAVE": Exit,
		"LAUNC": Launc,
		"LAND":  Land,
		"CROSS": Cross,
		"CLIMB": Climb,
	}
	noise = map[string]bool{
		"THE": true,
		"A":   true,
		"AN":  true,
	}
)

// Norm normalizes a single word.
func Norm(word string) string {
	word = strings.ToUpper(strings.TrimSpace(word))
	if utf8.RuneCountInString(word) <= WordLength {
		return word
	}
	count := 0
	for idx := range word {
		if count == WordLength {
			return word[:idx]
		}
		count++
	}
	return word
}

// Fields splits line on whitespace, dropping empty tokens, without normalizing.
func Fields(line string) []string {
	return strings.Fields(line)
}

// Split splits line on whitespace and normalizes every token.
func Split(line string) []string {
	fields := Fields(line)
	result := make([]string, len(fields))
	for idx, field := range fields {
		result[idx] = Norm(field)
	}
	return result
}

// Prep returns the preposition class of a normalized word.
func Prep(word string) (string, bool) {
	class, found := prepositions[word]
	return class, found
}

// Direction returns the canonical direction of a normalized word.
// IN is a preposition, but alone or after a walking verb it means ENTER.
func Direction(word string) (string, bool) {
	if word == In {
		return Enter, true
	}
	dir, found := directions[word]
	return dir, found
}

// Noise reports whether a normalized word carries no meaning in an object phrase.
func Noise(word string) bool {
	return noise[word]
}
