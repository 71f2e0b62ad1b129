package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Eletrônicos":    "ELETRONICOS",
		" Casa e Jardim": "CASA E JARDIM",
		"Calçados":       "CALCADOS",
		"Centímetro":     "CENTIMETRO",
		"Galão":          "GALAO",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ação", Truncate("ação", 4))
	assert.Equal(t, "aç", Truncate("ação", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestValidateCPF(t *testing.T) {
	assert.True(t, ValidateCPF("52998224725"))
	assert.False(t, ValidateCPF("52998224724"))
	assert.False(t, ValidateCPF("11111111111"))
	assert.False(t, ValidateCPF("5299822472"))
	assert.False(t, ValidateCPF("529.982.247-25"))
}

func TestValidatePhoneAndPostalCode(t *testing.T) {
	assert.True(t, ValidatePhone(11, "98765432"))
	assert.True(t, ValidatePhone(99, "9876-5432"))
	assert.False(t, ValidatePhone(10, "98765432"))
	assert.False(t, ValidatePhone(100, "98765432"))
	assert.False(t, ValidatePhone(21, "123"))

	assert.True(t, ValidatePostalCode("01310100"))
	assert.False(t, ValidatePostalCode("01310-100"))
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/06/2025")
	assert.Error(t, err)

	start := time.Date(2024, 7, 15, 18, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 15, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 365, DaysBetween(start, end))
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), BeginningOfDay(start))
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "s3cret"

	router := func(secret string) *gin.Engine {
		r := gin.New()
		r.POST("/seed", AuthMiddleware(secret), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"operator": c.GetString("operator")})
		})
		return r
	}
	call := func(r *gin.Engine, header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/seed", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	token, err := GenerateToken("ops", secret, time.Hour)
	require.NoError(t, err)

	w := call(router(secret), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"operator":"ops"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(router(secret), "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(router("other"), "Bearer "+token).Code)

	expired, err := GenerateToken("ops", secret, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(router(secret), "Bearer "+expired).Code)

	assert.Equal(t, http.StatusServiceUnavailable, call(router(""), "Bearer "+token).Code)

	_, err = GenerateToken("ops", "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
