package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := CreateToken("ops-dashboard", "plans", time.Hour, secret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "ops-dashboard", claims.Subject)
	assert.Equal(t, "plans", claims.Scope)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Rejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := CreateToken("svc", "", -time.Minute, secret)
	require.NoError(t, err)
	_, err = ValidateToken(expired, secret)
	assert.Error(t, err)

	valid, err := CreateToken("svc", "", time.Minute, secret)
	require.NoError(t, err)
	_, err = ValidateToken(valid, []byte("other-secret"))
	assert.Error(t, err)

	_, err = CreateToken("svc", "", time.Minute, nil)
	assert.Error(t, err)
}

func TestHashKey(t *testing.T) {
	assert.Equal(t, HashKey("openai", "gpt", "prompt"), HashKey("openai", "gpt", "prompt"))
	assert.NotEqual(t, HashKey("ab", "c"), HashKey("a", "bc"))
	assert.Len(t, HashKey("x"), 64)
}

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: duration", ErrInvalidInput), http.StatusBadRequest},
		{ErrPlanNotFound, http.StatusNotFound},
		{ErrRetrievalDisabled, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: timeout", ErrUpstreamUnavailable), http.StatusBadGateway},
		{fmt.Errorf("%w: insert", ErrDatabaseError), http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var body APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, "trace-1", body.TraceID)
		})
	}
}

func TestRespondSuccessWithoutTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, map[string]int{"n": 1}, "ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","code":200,"message":"ok","data":{"n":1}}`, w.Body.String())
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.Local, LoadLocation(""))
	assert.Equal(t, time.Local, LoadLocation("Not/AZone"))
	assert.Equal(t, "UTC", LoadLocation("UTC").String())
	assert.True(t, FromUnixSeconds(0, time.UTC).IsZero())
}
