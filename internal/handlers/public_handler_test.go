package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityContext(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/public/navalha/availability"+query, nil)
	c.Params = gin.Params{{Key: "slug", Value: "navalha"}}
	return c, rec
}

// barber_id é validado antes de qualquer consulta, então o handler sem
// banco serve para cobrir o caminho de parse da grade de horários.
func TestGetAvailabilityRejectsBadBarberID(t *testing.T) {
	h := NewPublicHandler(nil, nil, nil, nil)

	cases := []struct {
		name  string
		query string
	}{
		{"ausente", "?date=2030-06-10"},
		{"não numérico", "?barber_id=ze&date=2030-06-10"},
		{"negativo", "?barber_id=-1&date=2030-06-10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := availabilityContext(t, tc.query)
			h.GetAvailability(c)

			require.Equal(t, 400, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "invalid_id", body["error_code"])
		})
	}
}
