// Package password generates random site passwords.
// All randomness comes from crypto/rand.
package password

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// character classes
const (
	Letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits  = "0123456789"
	Symbols = "!#$%&()*+"
)

// group sizes, inclusive
const (
	minLetters = 8
	maxLetters = 10
	minSymbols = 2
	maxSymbols = 4
	minDigits  = 2
	maxDigits  = 4

	MinLength = minLetters + minSymbols + minDigits
	MaxLength = maxLetters + maxSymbols + maxDigits
)

// Generator produces passwords made of letters, symbols and digits.
type Generator struct{}

// New creates a generator.
func New() *Generator {
	return &Generator{}
}

// Generate returns a password of 8-10 letters, 2-4 symbols and 2-4 digits
// in a uniformly random order.
func (g *Generator) Generate() string {
	nLetters := between(minLetters, maxLetters)
	nSymbols := between(minSymbols, maxSymbols)
	nDigits := between(minDigits, maxDigits)

	buf := make([]byte, 0, nLetters+nSymbols+nDigits)
	buf = appendPicks(buf, Letters, nLetters)
	buf = appendPicks(buf, Symbols, nSymbols)
	buf = appendPicks(buf, Digits, nDigits)

	// Fisher-Yates
	for i := len(buf) - 1; i > 0; i-- {
		j := randIntn(i + 1)
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}

// Composition counts the characters of a password by class.
type Composition struct {
	Letters int
	Digits  int
	Symbols int
	Other   int
}

// Classify counts the letters, digits and symbols in s. Symbols only count
// when they belong to the generator's symbol set.
func Classify(s string) Composition {
	var c Composition
	for _, r := range s {
		switch {
		case strings.ContainsRune(Letters, r):
			c.Letters++
		case strings.ContainsRune(Digits, r):
			c.Digits++
		case strings.ContainsRune(Symbols, r):
			c.Symbols++
		default:
			c.Other++
		}
	}
	return c
}

func appendPicks(buf []byte, set string, n int) []byte {
	for range n {
		buf = append(buf, set[randIntn(len(set))])
	}
	return buf
}

// between returns a random int in [lo, hi].
func between(lo, hi int) int {
	return lo + randIntn(hi-lo+1)
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
