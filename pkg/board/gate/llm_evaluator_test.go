package gate

import (
	"testing"
)

func TestExtractVerdict(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		wantSpecific bool
		wantErr      bool
	}{
		{
			name:         "clean JSON",
			reply:        `{"is_specific": true, "reason": "concrete"}`,
			wantSpecific: true,
		},
		{
			name:         "JSON in code fence",
			reply:        "```json\n{\"is_specific\": false, \"reason\": \"vague\"}\n```",
			wantSpecific: false,
		},
		{
			name:         "JSON surrounded by prose",
			reply:        `Sure! Here is my judgment: {"is_specific": true, "reason": "dates given"} Hope that helps.`,
			wantSpecific: true,
		},
		{
			name:    "no JSON at all",
			reply:   "The answer seems fine to me.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			reply:   `{"is_specific": maybe}`,
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := extractVerdict(tt.reply)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("extractVerdict(%q) error = nil, want error", tt.reply)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractVerdict(%q) error = %v", tt.reply, err)
			}
			if v.IsSpecific != tt.wantSpecific {
				t.Errorf("IsSpecific = %v, want %v", v.IsSpecific, tt.wantSpecific)
			}
		})
	}
}
