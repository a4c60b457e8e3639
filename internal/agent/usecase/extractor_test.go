package usecase

import (
	"reflect"
	"testing"

	"business-agent-service/internal/model"
)

func strPtr(s string) *string { return &s }

func TestExtractParameters(t *testing.T) {
	tests := []struct {
		name     string
		question string
		action   model.Action
		want     map[string]string
	}{
		{
			name:     "allowed value matched case-insensitively",
			question: "I'd like a MEDIUM pizza please",
			action: model.Action{Parameters: []model.Parameter{
				{Name: "size", Type: "string", AllowedValues: []string{"Small", "Medium", "Large"}},
			}},
			want: map[string]string{"size": "Medium"},
		},
		{
			name:     "first allowed value in declared order wins",
			question: "small or large, whichever ships first",
			action: model.Action{Parameters: []model.Parameter{
				{Name: "size", Type: "string", AllowedValues: []string{"Small", "Medium", "Large"}},
			}},
			want: map[string]string{"size": "Small"},
		},
		{
			name:     "named parameter with colon",
			question: "cancel order_id: 12345 now",
			action: model.Action{Parameters: []model.Parameter{
				{Name: "order_id", Type: "string"},
			}},
			want: map[string]string{"order_id": "12345"},
		},
		{
			name:     "named parameter stops at punctuation",
			question: "my order_id A-99, thanks",
			action: model.Action{Parameters: []model.Parameter{
				{Name: "order_id", Type: "string"},
			}},
			want: map[string]string{"order_id": "A-99"},
		},
		{
			name:     "default fills unmatched string",
			question: "just ship it",
			action: model.Action{Parameters: []model.Parameter{
				{Name: "priority", Type: "string", Default: strPtr("normal")},
			}},
			want: map[string]string{"priority": "normal"},
		},
		{
			name:     "non-string type resolves to default",
			question: "order quantity 3",
			action: model.Action{Parameters: []model.Parameter{
				{Name: "quantity", Type: "integer", Default: strPtr("1")},
			}},
			want: map[string]string{"quantity": "1"},
		},
		{
			name:     "non-string type without default stays absent",
			question: "order quantity 3",
			action: model.Action{Parameters: []model.Parameter{
				{Name: "quantity", Type: "integer"},
			}},
			want: map[string]string{},
		},
		{
			name:     "no parameters declared",
			question: "anything",
			action:   model.Action{},
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractParameters(tt.question, tt.action)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractParameters() = %v, want %v", got, tt.want)
			}
		})
	}
}
