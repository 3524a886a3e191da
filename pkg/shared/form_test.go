package shared

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaveForm struct {
	StartDate DateOnly        `form:"StartDate"`
	EndDate   DateOnly        `form:"EndDate"`
	Hours     decimal.Decimal `form:"Hours"`
}

func TestDecoder_CustomTypes(t *testing.T) {
	var f leaveForm
	err := Decoder.Decode(&f, url.Values{
		"StartDate": {"2024-03-01"},
		"EndDate":   {""},
		"Hours":     {"7.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", f.StartDate.String())
	assert.True(t, f.EndDate.IsZero())
	assert.Equal(t, "", f.EndDate.String())
	assert.True(t, f.Hours.Equal(decimal.RequireFromString("7.5")))
}

func TestDecoder_BadDate(t *testing.T) {
	var f leaveForm
	require.Error(t, Decoder.Decode(&f, url.Values{"StartDate": {"03/01/2024"}}))
}

func TestParseID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/employees/12", nil), map[string]string{"id": "12"})
	id, err := ParseID(r)
	require.NoError(t, err)
	assert.EqualValues(t, "12", id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/employees/emp-7", nil), map[string]string{"id": "emp-7"})
	id, err = ParseID(r)
	require.NoError(t, err)
	assert.EqualValues(t, "emp-7", id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/employees/", nil), map[string]string{"id": ""})
	_, err = ParseID(r)
	assert.Error(t, err)
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	Redirect(w, httptest.NewRequest(http.MethodPost, "/leave", nil), "/leave")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/leave", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/leave", nil)
	r.Header.Set("Hx-Request", "true")
	Redirect(w, r, "/leave")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/leave", w.Header().Get("Hx-Redirect"))
}
