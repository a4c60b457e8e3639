package usecase

import (
	"regexp"
	"strings"

	"business-agent-service/internal/model"
)

// extractParameters pulls parameter values for an action out of the raw
// question text. Parameters with allowed values match by case-insensitive
// containment in declared order; free-form string parameters match a
// name-anchored token pattern; anything still unset falls back to the
// configured default. Non-string types have no extraction rule and resolve
// to default-or-absent.
func extractParameters(question string, action model.Action) map[string]string {
	params := make(map[string]string)
	questionLower := strings.ToLower(question)

	for _, p := range action.Parameters {
		if p.Type == "string" {
			if len(p.AllowedValues) > 0 {
				for _, v := range p.AllowedValues {
					if strings.Contains(questionLower, strings.ToLower(v)) {
						params[p.Name] = v
						break
					}
				}
			} else if value := matchNamedParam(question, p.Name); value != "" {
				params[p.Name] = value
			}
		}

		if _, ok := params[p.Name]; !ok && p.Default != nil {
			params[p.Name] = *p.Default
		}
	}

	return params
}

// matchNamedParam matches the literal parameter name followed by a colon or
// whitespace and captures the next run of non-space/non-comma/non-period
// characters.
func matchNamedParam(question, name string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `[:\s]+([^\s,.]+)`)
	if m := re.FindStringSubmatch(question); len(m) == 2 {
		return m[1]
	}
	return ""
}
