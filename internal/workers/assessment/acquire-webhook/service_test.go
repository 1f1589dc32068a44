package acquirewebhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"assessment-runner/internal/common/config"
	"assessment-runner/internal/common/errors"
	httpclient "assessment-runner/internal/common/http"
	"assessment-runner/internal/common/logger"
	"assessment-runner/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func createValidInput() *models.IdentityRequest {
	return &models.IdentityRequest{
		Name:  "Jane Doe",
		RegNo: "REG12348",
		Email: "jane.doe@example.com",
	}
}

func newTestService(t *testing.T, url string) *Service {
	t.Helper()
	client := httpclient.NewClient(2 * time.Second)
	t.Cleanup(client.CloseIdleConnections)
	return NewService(ServiceDependencies{
		Logger:     logger.NewTestLogger(t),
		HTTPClient: client,
	}, &Config{URL: url})
}

func newUpstream(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != "" {
			w.Write([]byte(body))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// ==========================
// Execute
// ==========================

func TestService_Execute_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"name":  "Jane Doe",
			"regNo": "REG12348",
			"email": "jane.doe@example.com",
		}, body)

		w.Write([]byte(`{"webhook":"https://x/y","accessToken":"tok123"}`))
	}))
	defer server.Close()

	grant, err := newTestService(t, server.URL).Execute(context.Background(), createValidInput())

	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, "https://x/y", grant.URL())
	assert.Equal(t, "tok123", grant.Token())
	assert.True(t, grant.Usable())
}

func TestService_Execute_EmptyBody(t *testing.T) {
	server := newUpstream(t, http.StatusOK, "", nil)

	grant, err := newTestService(t, server.URL).Execute(context.Background(), createValidInput())

	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Nil(t, grant.WebhookURL)
	assert.Nil(t, grant.AccessToken)
	assert.False(t, grant.Usable())
}

func TestService_Execute_NoKeys(t *testing.T) {
	server := newUpstream(t, http.StatusOK, `{}`, nil)

	grant, err := newTestService(t, server.URL).Execute(context.Background(), createValidInput())

	require.NoError(t, err)
	assert.Nil(t, grant.WebhookURL)
	assert.Nil(t, grant.AccessToken)
}

func TestService_Execute_PartialGrant(t *testing.T) {
	server := newUpstream(t, http.StatusOK, `{"webhook":"https://x/y"}`, nil)

	grant, err := newTestService(t, server.URL).Execute(context.Background(), createValidInput())

	require.NoError(t, err)
	assert.Equal(t, "https://x/y", grant.URL())
	assert.Nil(t, grant.AccessToken)
	assert.Equal(t, []string{"accessToken"}, grant.Missing())
}

func TestService_Execute_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	grant, err := newTestService(t, url).Execute(context.Background(), createValidInput())

	require.Error(t, err)
	assert.Nil(t, grant)
	assert.Equal(t, errors.ErrCodeAcquisitionTransportFailed, errors.CodeOf(err))
	assert.True(t, errors.IsTransportError(err))
}

func TestService_Execute_Rejected(t *testing.T) {
	server := newUpstream(t, http.StatusBadRequest, `{"message":"invalid regNo"}`, nil)

	grant, err := newTestService(t, server.URL).Execute(context.Background(), createValidInput())

	require.Error(t, err)
	assert.Nil(t, grant)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeAcquisitionRejected, stdErr.Code)
	assert.Equal(t, http.StatusBadRequest, stdErr.Metadata["statusCode"])
	assert.Contains(t, stdErr.Details, "invalid regNo")
}

func TestService_Execute_InvalidIdentity(t *testing.T) {
	var hits int32
	server := newUpstream(t, http.StatusOK, `{"webhook":"https://x/y","accessToken":"tok"}`, &hits)
	svc := newTestService(t, server.URL)

	tests := []struct {
		name  string
		input *models.IdentityRequest
	}{
		{"nil input", nil},
		{"missing name", &models.IdentityRequest{RegNo: "R1", Email: "a@b.c"}},
		{"missing reg no", &models.IdentityRequest{Name: "A", Email: "a@b.c"}},
		{"missing email", &models.IdentityRequest{Name: "A", RegNo: "R1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := svc.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, grant)
			assert.Equal(t, errors.ErrCodeInvalidIdentity, errors.CodeOf(err))
		})
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestService_Execute_DoesNotLogToken(t *testing.T) {
	server := newUpstream(t, http.StatusOK, `{"webhook":"https://x/y","accessToken":"super-secret-token"}`, nil)

	core, logs := observer.New(zapcore.DebugLevel)
	client := httpclient.NewClient(time.Second)
	defer client.CloseIdleConnections()
	svc := NewService(ServiceDependencies{
		Logger:     logger.NewZapAdapter(zap.New(core)),
		HTTPClient: client,
	}, &Config{URL: server.URL})

	_, err := svc.Execute(context.Background(), createValidInput())
	require.NoError(t, err)

	raw := logs.FilterMessage("raw response from generate webhook").All()
	require.Len(t, raw, 1)
	body, _ := raw[0].ContextMap()["body"].(string)
	assert.Contains(t, body, "https://x/y")
	assert.Contains(t, body, logger.Redacted)

	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			if s, ok := v.(string); ok {
				assert.False(t, strings.Contains(s, "super-secret-token"), "token leaked in %q", entry.Message)
			}
		}
	}
}

func TestRedactToken(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"short token leaves url intact",
			`{"webhook":"https://x1/y1","accessToken":"1"}`,
			`{"webhook":"https://x1/y1","accessToken":"[HIDDEN]"}`,
		},
		{
			"token before webhook",
			`{"accessToken":"tok","webhook":"https://x/tok"}`,
			`{"accessToken":"[HIDDEN]","webhook":"https://x/tok"}`,
		},
		{"no token", `{"webhook":"https://x/y"}`, `{"webhook":"https://x/y"}`},
		{"empty token", `{"accessToken":""}`, `{"accessToken":""}`},
		{"empty body", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactToken(tt.body))
		})
	}
}

func TestService_Execute_ShortTokenKeepsLoggedURL(t *testing.T) {
	server := newUpstream(t, http.StatusOK, `{"webhook":"https://x1/y1","accessToken":"1"}`, nil)

	core, logs := observer.New(zapcore.DebugLevel)
	client := httpclient.NewClient(time.Second)
	defer client.CloseIdleConnections()
	svc := NewService(ServiceDependencies{
		Logger:     logger.NewZapAdapter(zap.New(core)),
		HTTPClient: client,
	}, &Config{URL: server.URL})

	grant, err := svc.Execute(context.Background(), createValidInput())
	require.NoError(t, err)
	assert.Equal(t, "1", grant.Token())

	raw := logs.FilterMessage("raw response from generate webhook").All()
	require.Len(t, raw, 1)
	assert.Equal(t, `{"webhook":"https://x1/y1","accessToken":"[HIDDEN]"}`, raw[0].ContextMap()["body"])
}

// ==========================
// ParseGrant / Config
// ==========================

func TestParseGrant(t *testing.T) {
	grant := ParseGrant(`{"webhook":"https://x/y","accessToken":"tok123"}`)
	assert.Equal(t, "https://x/y", grant.URL())
	assert.Equal(t, "tok123", grant.Token())

	empty := ParseGrant("")
	assert.Nil(t, empty.WebhookURL)
	assert.Nil(t, empty.AccessToken)
}

func TestConfig(t *testing.T) {
	assert.Equal(t, config.DefaultAcquisitionURL, DefaultConfig().URL)
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{URL: "/relative"}).Validate())

	cfg := &config.Config{}
	cfg.Assessment.Acquisition.URL = "http://localhost:9000/generate"
	assert.Equal(t, "http://localhost:9000/generate", FromAppConfig(cfg).URL)
	assert.Equal(t, config.DefaultAcquisitionURL, FromAppConfig(nil).URL)
}

func TestGetInputSchema(t *testing.T) {
	schema, err := GetInputSchema()
	require.NoError(t, err)
	assert.Equal(t, "object", schema["type"])
}
