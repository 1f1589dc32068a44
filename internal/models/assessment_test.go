package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestWebhookGrant_Usable(t *testing.T) {
	tests := []struct {
		name        string
		grant       *WebhookGrant
		wantUsable  bool
		wantMissing []string
	}{
		{"nil grant", nil, false, []string{"webhook", "accessToken"}},
		{"empty grant", &WebhookGrant{}, false, []string{"webhook", "accessToken"}},
		{"url only", &WebhookGrant{WebhookURL: strPtr("https://x/y")}, false, []string{"accessToken"}},
		{"empty token", &WebhookGrant{WebhookURL: strPtr("https://x/y"), AccessToken: strPtr("")}, false, []string{"accessToken"}},
		{"token only", &WebhookGrant{AccessToken: strPtr("tok")}, false, []string{"webhook"}},
		{"complete", &WebhookGrant{WebhookURL: strPtr("https://x/y"), AccessToken: strPtr("tok123")}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUsable, tt.grant.Usable())
			assert.Equal(t, tt.wantMissing, tt.grant.Missing())
		})
	}
}

func TestIdentityRequest_WireNames(t *testing.T) {
	data, err := json.Marshal(IdentityRequest{Name: "Jane Doe", RegNo: "REG12348", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jane Doe","regNo":"REG12348","email":"jane@example.com"}`, string(data))
}

func TestSubmissionPayload_WireName(t *testing.T) {
	data, err := json.Marshal(SubmissionPayload{FinalQuery: "SELECT 1;"})
	require.NoError(t, err)
	assert.Equal(t, `{"finalQuery":"SELECT 1;"}`, string(data))
}
