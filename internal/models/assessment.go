package models

// IdentityRequest is the body of the generate-webhook call. Field names match
// the upstream contract.
type IdentityRequest struct {
	Name  string `json:"name"`
	RegNo string `json:"regNo"`
	Email string `json:"email"`
}

// WebhookGrant is what the generate-webhook response yielded. A nil field
// means the value could not be extracted.
type WebhookGrant struct {
	WebhookURL  *string `json:"webhook,omitempty"`
	AccessToken *string `json:"accessToken,omitempty"`
}

// URL returns the webhook URL or "".
func (g *WebhookGrant) URL() string {
	if g == nil || g.WebhookURL == nil {
		return ""
	}
	return *g.WebhookURL
}

// Token returns the access token or "".
func (g *WebhookGrant) Token() string {
	if g == nil || g.AccessToken == nil {
		return ""
	}
	return *g.AccessToken
}

// Usable reports whether both the URL and the token are present and non-empty.
func (g *WebhookGrant) Usable() bool {
	return g.URL() != "" && g.Token() != ""
}

// Missing names the fields that are absent or empty, using wire names.
func (g *WebhookGrant) Missing() []string {
	var missing []string
	if g.URL() == "" {
		missing = append(missing, "webhook")
	}
	if g.Token() == "" {
		missing = append(missing, "accessToken")
	}
	return missing
}

// SubmissionPayload is the body of the submission call.
type SubmissionPayload struct {
	FinalQuery string `json:"finalQuery"`
}
