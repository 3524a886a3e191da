package controllers_test

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/modules/holidays"
	"github.com/ati-intranet/portal/modules/holidays/domain/entities/holiday"
	"github.com/ati-intranet/portal/pkg/itf"
)

var calendar = []holiday.Holiday{
	{ID: "1", Year: 2025, Client: "Globex", Date: "2025-12-25T00:00:00.000Z", Occasion: "Christmas"},
	{ID: "2", Year: 2025, Client: "Acme", Date: "2025-01-26", Occasion: "Republic Day"},
	{ID: "3", Year: 2025, Client: "Acme", Date: "2025-12-24", Occasion: "Christmas Eve"},
}

func texts(s *goquery.Selection) []string {
	out := []string{}
	s.Each(func(_ int, sel *goquery.Selection) {
		out = append(out, strings.TrimSpace(sel.Text()))
	})
	return out
}

func TestHolidayController_Calendar(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/holidays", http.StatusOK, calendar)

	doc := suite.GET("/holidays?year=2025").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, "year=2025", suite.Upstream.Last(t, http.MethodGet, "/holidays").Query)
	assert.Equal(t, []string{"January", "December"}, texts(doc.Find(".month-name")))
	assert.Equal(t, []string{"Republic Day", "Christmas Eve", "Christmas"}, texts(doc.Find(".holiday-card .occasion")))

	christmas := doc.Find(".holiday-card").Last()
	assert.Equal(t, "25", christmas.Find(".day").Text())
	assert.Equal(t, "Thu", christmas.Find(".weekday").Text())
	assert.Equal(t, "Globex", christmas.Find(".client").Text())

	assert.Equal(t, []string{"All Clients", "Acme", "Globex"}, texts(doc.Find(`select[name="client"] option`)))
	assert.Equal(t, "2025", doc.Find(`select[name="year"] option[selected]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("#add-holidays").Length())
}

func TestHolidayController_ClientFilter(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("HR")
	suite.Upstream.JSON(http.MethodGet, "/holidays", http.StatusOK, calendar)

	doc := suite.GET("/holidays?year=2025&client=Acme").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, []string{"Republic Day", "Christmas Eve"}, texts(doc.Find(".holiday-card .occasion")))
	assert.Equal(t, "Acme", doc.Find(`select[name="client"] option[selected]`).AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find("#add-holidays").Length())

	doc = suite.GET("/holidays?year=2025&client=Initech").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, "No holidays found for Initech in 2025", strings.TrimSpace(doc.Find("#no-holidays").Text()))
}

func TestHolidayController_DefaultYearAndEmpty(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/holidays", http.StatusOK, map[string]string{"message": "none"})

	year := strconv.Itoa(time.Now().Year())
	doc := suite.GET("/holidays").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, "year="+year, suite.Upstream.Last(t, http.MethodGet, "/holidays").Query)
	assert.Equal(t, "No holidays found for "+year, strings.TrimSpace(doc.Find("#no-holidays").Text()))
}

func TestHolidayController_NewRequiresManager(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("Employee")

	suite.GET("/holidays/new").Expect(t).RedirectTo("/holidays")
	suite.POST("/holidays").Form(url.Values{"Year": {"2025"}}).Expect(t).Status(http.StatusForbidden)
	assert.Empty(t, suite.Upstream.Requests(http.MethodPost, "/holidays"))
}

func TestHolidayController_NewAddRow(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("HR")

	doc := suite.GET("/holidays/new").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, 1, doc.Find(".holiday-row").Length())
	assert.Equal(t, strconv.Itoa(time.Now().Year()), doc.Find(`select[name="Year"] option[selected]`).AttrOr("value", ""))

	q := url.Values{"Year": {"2026"}, "Client": {"Acme"}, "Rows[0].Date": {"2026-01-26"}, "rows": {"3"}}
	doc = suite.GET("/holidays/new?" + q.Encode()).Expect(t).Status(http.StatusOK).HTML()
	require.Equal(t, 3, doc.Find(".holiday-row").Length())
	assert.Equal(t, "2026-01-26", doc.Find(`input[name="Rows[0].Date"]`).AttrOr("value", ""))
	assert.Equal(t, "Acme", doc.Find(`input[name="Client"]`).AttrOr("value", ""))
	assert.Equal(t, "4", doc.Find("#add-row").AttrOr("value", ""))
	assert.Equal(t, "2", doc.Find("#remove-row").AttrOr("value", ""))
}

func TestHolidayController_Create(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("HR")
	suite.Upstream.JSON(http.MethodPost, "/holidays", http.StatusCreated, map[string]any{"count": 2})

	var event *holiday.AddedEvent
	suite.App.EventPublisher().Subscribe(func(ev *holiday.AddedEvent) { event = ev })

	res := suite.POST("/holidays").Form(url.Values{
		"Year":             {"2025"},
		"Client":           {"Acme"},
		"Rows[0].Date":     {"2025-01-26"},
		"Rows[0].Occasion": {"Republic Day"},
		"Rows[1].Date":     {"2025-12-25"},
		"Rows[1].Occasion": {"Christmas"},
		"Rows[1].Client":   {"Globex"},
		"Rows[2].Date":     {""},
		"Rows[2].Occasion": {""},
	}).Expect(t).RedirectTo("/holidays?year=2025")
	flash := res.Cookie("flash")
	require.NotNil(t, flash)
	suite.Upstream.JSON(http.MethodGet, "/holidays", http.StatusOK, calendar)
	suite.GET("/holidays?year=2025").Cookie(flash).Expect(t).Status(http.StatusOK).
		Contains("Successfully added 2 holiday(s)")

	var body struct {
		Holidays []holiday.Holiday `json:"holidays"`
	}
	suite.Upstream.Last(t, http.MethodPost, "/holidays").JSON(t, &body)
	require.Len(t, body.Holidays, 2)
	assert.Equal(t, holiday.Holiday{Year: 2025, Client: "Acme", Date: "2025-01-26", Occasion: "Republic Day"}, body.Holidays[0])
	assert.Equal(t, "Globex", body.Holidays[1].Client)
	require.NotNil(t, event)
	assert.Equal(t, "hr-user", event.Actor)
}

func TestHolidayController_CreateNoRows(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("HR")

	doc := suite.POST("/holidays").Form(url.Values{
		"Year":             {"2025"},
		"Client":           {"Acme"},
		"Rows[0].Occasion": {"No date"},
	}).Expect(t).Status(http.StatusUnprocessableEntity).HTML()
	assert.Equal(t, "Please add at least one holiday with date and occasion", doc.Find(`.field-error[data-field="Rows"]`).Text())
	assert.Equal(t, "No date", doc.Find(`input[name="Rows[0].Occasion"]`).AttrOr("value", ""))
	assert.Empty(t, suite.Upstream.Requests(http.MethodPost, "/holidays"))
}

func TestHolidayController_CreateFailure(t *testing.T) {
	suite := itf.HTTP(t, holidays.NewModule()).AsRole("Admin")
	suite.Upstream.JSON(http.MethodPost, "/holidays", http.StatusInternalServerError, map[string]string{"message": "boom"})

	doc := suite.POST("/holidays").Form(url.Values{
		"Year":             {"2025"},
		"Client":           {"Acme"},
		"Rows[0].Date":     {"2025-01-26"},
		"Rows[0].Occasion": {"Republic Day"},
	}).Expect(t).Status(http.StatusBadGateway).HTML()
	assert.Equal(t, "Failed to add holidays", doc.Find("#form-error").Text())
	assert.Equal(t, "2025-01-26", doc.Find(`input[name="Rows[0].Date"]`).AttrOr("value", ""))
}
