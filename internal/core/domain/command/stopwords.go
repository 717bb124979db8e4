package command

import "strings"

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`cortex image show generate i me my myself we our ours ourselves you your
		yours yourself yourselves he him his himself she her hers herself it its itself they them their theirs
		themselves what which who whom this that these those am is are was were be been being have has had
		having do does did doing a an the and but if or because as until while of at by for with about against
		between into through during before after above below to from up down in out on off over under again
		further then once here there when where why how all any both each few more most other some such no nor
		not only own same so than too very s t can will just don should now picture`) {
		stopwords[w] = struct{}{}
	}
}

// RemoveStopwords lowercases text and drops filler words, leaving a search query.
func RemoveStopwords(text string) string {
	var kept []string

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(strings.ReplaceAll(word, ".", ""), ",!?;:\"'")
		if word == "" {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}
