// Package sentiment scores short texts such as headlines against a word valence list.
package sentiment

import (
	"strings"
	"unicode"
)

// afinn holds AFINN-165 valences (-5 to 5) for words common in market headlines.
var afinn = map[string]int{
	"abandon": -2, "accelerate": 1, "accuse": -2, "accused": -2, "advance": 1, "advances": 1,
	"alarm": -2, "alarming": -2, "amazing": 4, "anger": -3, "angry": -3, "anxious": -2,
	"attack": -1, "awesome": 4, "bad": -3, "bankrupt": -3, "bankruptcy": -3, "beat": 1,
	"beats": 1, "benefit": 2, "best": 3, "better": 2, "boom": 2, "boost": 1, "boosts": 1,
	"breakthrough": 3, "bright": 1, "bullish": 2, "cancel": -1, "cancelled": -1, "collapse": -2,
	"collapses": -2, "concern": -2, "concerns": -2, "confident": 2, "crash": -2, "crashes": -2,
	"crisis": -3, "cut": -1, "cuts": -1, "damage": -3, "danger": -2, "decline": -1,
	"declines": -1, "default": -2, "delay": -1, "delayed": -1, "deny": -1, "disappoint": -2,
	"disappointing": -2, "disaster": -2, "down": -1, "drop": -1, "drops": -1, "excellent": 3,
	"expand": 1, "expands": 1, "fail": -2, "failed": -2, "failure": -2, "fall": -1,
	"falls": -1, "fear": -2, "fears": -2, "fine": -2, "fined": -2, "fraud": -4, "gain": 2,
	"gains": 2, "good": 3, "great": 3, "grow": 1, "growth": 2, "growing": 1, "happy": 3,
	"hope": 2, "improve": 2, "improved": 2, "improves": 2, "innovative": 2, "investigation": -1,
	"jump": 1, "jumps": 1, "lawsuit": -2, "layoff": -2, "layoffs": -2, "lose": -3, "loses": -3,
	"loss": -3, "losses": -3, "miss": -2, "misses": -2, "negative": -2, "optimistic": 2,
	"outperform": 2, "panic": -3, "plunge": -2, "plunges": -2, "positive": 2, "probe": -1,
	"problem": -2, "profit": 2, "profits": 2, "rally": 1, "rallies": 1, "recall": -1,
	"recession": -2, "record": 1, "recover": 2, "recovery": 2, "risk": -2, "risks": -2,
	"rise": 1, "rises": 1, "scandal": -3, "sell-off": -2, "selloff": -2, "slump": -2,
	"slumps": -2, "soar": 2, "soars": 2, "strong": 2, "stronger": 2, "success": 2,
	"successful": 3, "sue": -2, "sued": -2, "surge": 1, "surges": 1, "threat": -2,
	"tumble": -2, "tumbles": -2, "uncertain": -1, "uncertainty": -1, "up": 1, "upgrade": 1,
	"upgraded": 1, "warn": -2, "warning": -3, "warns": -2, "weak": -2, "weaker": -2,
	"win": 4, "wins": 4, "worry": -3, "worries": -3, "worse": -3, "worst": -3,
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "don't": true, "doesn't": true, "isn't": true,
	"won't": true, "can't": true, "didn't": true, "aren't": true, "wasn't": true,
}

// Lexicon sums word valences, flipping the sign of a word that follows a negator.
type Lexicon struct {
	words map[string]int
}

func NewLexicon() *Lexicon {
	return &Lexicon{words: afinn}
}

func (l *Lexicon) Score(text string) float64 {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '-'
	})

	score := 0
	for i, token := range tokens {
		v, ok := l.words[token]
		if !ok {
			continue
		}
		if i > 0 && negators[tokens[i-1]] {
			v = -v
		}
		score += v
	}

	return float64(score)
}
