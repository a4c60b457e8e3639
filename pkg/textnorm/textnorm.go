package textnorm

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Normalizer holds the text resources used for lexical matching:
// a punctuation stripper and an English stopword set. Build one with New()
// and share it; it is immutable and safe for concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
	punct     *regexp.Regexp
}

// New returns a ready-to-use Normalizer.
func New() *Normalizer {
	stop := make(map[string]struct{}, len(englishStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	return &Normalizer{
		stopwords: stop,
		punct:     regexp.MustCompile(`[^\p{L}\p{N}_\s]+`),
	}
}

// Preprocess lowercases the text, strips punctuation, removes stopwords and
// returns the remaining tokens joined by single spaces.
func (n *Normalizer) Preprocess(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the preprocessed tokens of text in order.
func (n *Normalizer) Tokens(text string) []string {
	cleaned := n.punct.ReplaceAllString(strings.ToLower(text), "")
	fields := strings.Fields(cleaned)

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := n.stopwords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Similarity returns the normalized Levenshtein similarity of two strings
// in [0,1]. It is case-insensitive and symmetric; if either string is empty
// the similarity is 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == lb {
		return 1
	}

	dist := levenshtein.ComputeDistance(la, lb)
	maxLen := len([]rune(la))
	if l := len([]rune(lb)); l > maxLen {
		maxLen = l
	}

	return 1 - float64(dist)/float64(maxLen)
}

// englishStopwords is the NLTK English stopword list.
var englishStopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"youre", "youve", "youll", "youd", "your", "yours", "yourself",
	"yourselves", "he", "him", "his", "himself", "she", "shes", "her",
	"hers", "herself", "it", "its", "itself", "they", "them", "their",
	"theirs", "themselves", "what", "which", "who", "whom", "this", "that",
	"thatll", "these", "those", "am", "is", "are", "was", "were", "be",
	"been", "being", "have", "has", "had", "having", "do", "does", "did",
	"doing", "a", "an", "the", "and", "but", "if", "or", "because", "as",
	"until", "while", "of", "at", "by", "for", "with", "about", "against",
	"between", "into", "through", "during", "before", "after", "above",
	"below", "to", "from", "up", "down", "in", "out", "on", "off", "over",
	"under", "again", "further", "then", "once", "here", "there", "when",
	"where", "why", "how", "all", "any", "both", "each", "few", "more",
	"most", "other", "some", "such", "no", "nor", "not", "only", "own",
	"same", "so", "than", "too", "very", "s", "t", "can", "will", "just",
	"don", "dont", "should", "shouldve", "now", "d", "ll", "m", "o", "re",
	"ve", "y", "ain", "aren", "arent", "couldn", "couldnt", "didn",
	"didnt", "doesn", "doesnt", "hadn", "hadnt", "hasn", "hasnt", "haven",
	"havent", "isn", "isnt", "ma", "mightn", "mightnt", "mustn", "mustnt",
	"needn", "neednt", "shan", "shant", "shouldn", "shouldnt", "wasn",
	"wasnt", "weren", "werent", "won", "wont", "wouldn", "wouldnt",
}
