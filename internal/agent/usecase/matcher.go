package usecase

import (
	"strings"

	"business-agent-service/internal/model"
	"business-agent-service/pkg/textnorm"
)

// Match thresholds.
const (
	faqSimilarityThreshold = 0.7
	intentScoreThreshold   = 0.6
	keywordTokenSimilarity = 0.8
)

// match is the outcome of intent detection; exactly one of faq/intent is set.
type match struct {
	faq    *model.FAQ
	intent *model.Intent
}

// matcher scores free text against a business's FAQ list and intent list
// using lexical similarity and keyword containment.
type matcher struct {
	norm *textnorm.Normalizer
}

func newMatcher(norm *textnorm.Normalizer) *matcher {
	return &matcher{norm: norm}
}

// detectIntent returns the best qualifying match and its confidence, or
// (nil, 0) when nothing qualifies. FAQs are checked first and a qualifying
// FAQ always wins even if an intent would have scored higher: static
// knowledge is preferred over action-triggering matches. Exact ties go to
// the first entry in scan order.
func (m *matcher) detectIntent(question string, faqs []model.FAQ, intents []model.Intent) (*match, float64) {
	var bestFAQ *model.FAQ
	bestFAQScore := 0.0

	for i := range faqs {
		faq := &faqs[i]
		if strings.EqualFold(question, faq.Question) {
			return &match{faq: faq}, 1.0
		}
		if sim := textnorm.Similarity(question, faq.Question); sim > bestFAQScore {
			bestFAQScore = sim
			bestFAQ = faq
		}
	}
	if bestFAQScore >= faqSimilarityThreshold {
		return &match{faq: bestFAQ}, bestFAQScore
	}

	var bestIntent *model.Intent
	bestIntentScore := 0.0

	for i := range intents {
		intent := &intents[i]
		if score := m.intentScore(question, intent); score > bestIntentScore {
			bestIntentScore = score
			bestIntent = intent
		}
	}
	if bestIntentScore >= intentScoreThreshold {
		return &match{intent: bestIntent}, bestIntentScore
	}

	return nil, 0.0
}

// intentScore awards 1 point per keyword contained in the preprocessed
// question and 0.5 per keyword with a near-matching token, normalized by
// keyword count and capped at 1.
func (m *matcher) intentScore(question string, intent *model.Intent) float64 {
	if len(intent.Keywords) == 0 {
		return 0
	}

	processed := m.norm.Preprocess(question)
	tokens := strings.Fields(processed)

	points := 0.0
	for _, keyword := range intent.Keywords {
		kw := m.norm.Preprocess(keyword)
		if kw == "" {
			continue
		}

		if strings.Contains(processed, kw) {
			points++
			continue
		}
		for _, tok := range tokens {
			if textnorm.Similarity(tok, kw) >= keywordTokenSimilarity {
				points += 0.5
				break
			}
		}
	}

	score := points / float64(len(intent.Keywords))
	if score > 1 {
		score = 1
	}
	return score
}
