package controllers_test

import (
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/modules/core/domain/entities/profile"
	"github.com/ati-intranet/portal/pkg/itf"
)

func TestDashboard_RedirectsAnonymous(t *testing.T) {
	suite := itf.HTTP(t)
	suite.GET("/").Expect(t).Status(http.StatusFound).RedirectTo("/login")
}

func TestDashboard_HTMXRedirect(t *testing.T) {
	suite := itf.HTTP(t)
	suite.GET("/").HTMX().Expect(t).Status(http.StatusUnauthorized).RedirectTo("/login")
}

func TestDashboard_Announcements(t *testing.T) {
	suite := itf.HTTP(t).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/announcements", http.StatusOK, []map[string]any{
		{"id": 1, "title": "Office closed", "content": "Friday", "category": "General", "priority": "High", "created_at": "2024-03-01T09:00:00Z"},
		{"id": 2, "title": "Picnic", "content": "Saturday", "category": "Events", "priority": "low", "created_at": "2024-03-02T09:00:00Z"},
	})

	doc := suite.GET("/").Expect(t).Status(http.StatusOK).HTML()

	articles := doc.Find("article.announcement")
	require.Equal(t, 2, articles.Length())
	assert.True(t, articles.First().HasClass("priority-high"))
	assert.Equal(t, "General", articles.First().Find(".category").Text())
	assert.Equal(t, 4, doc.Find(".quick-card").Length())
	assert.Equal(t, 0, doc.Find("#no-announcements").Length())
	assert.Equal(t, "Bearer token-employee-user", suite.Upstream.Last(t, http.MethodGet, "/announcements").Authorization)
}

func TestDashboard_NoAnnouncements(t *testing.T) {
	suite := itf.HTTP(t).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/announcements", http.StatusOK, map[string]string{"unexpected": "shape"})

	doc := suite.GET("/").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, "No announcements at this time.", doc.Find("#no-announcements").Text())
}

func TestDashboard_AnnouncementsFailureStillRenders(t *testing.T) {
	suite := itf.HTTP(t).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/announcements", http.StatusInternalServerError, map[string]string{"message": "boom"})

	suite.GET("/").Expect(t).Status(http.StatusOK).Contains("No announcements at this time.")
}

func TestDashboard_ExpiredToken(t *testing.T) {
	suite := itf.HTTP(t).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/auth/profile", http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})

	resp := suite.GET("/").Expect(t).Status(http.StatusFound).RedirectTo("/login")
	cookie := resp.Cookie("token")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestDashboard_SidebarFollowsRole(t *testing.T) {
	suite := itf.HTTP(t).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/announcements", http.StatusOK, []any{})

	doc := suite.GET("/").Expect(t).Status(http.StatusOK).HTML()
	var links []string
	doc.Find("aside nav a").Each(func(_ int, s *goquery.Selection) {
		links = append(links, s.AttrOr("href", ""))
	})
	assert.Contains(t, links, "/")
	assert.Equal(t, "employee-user", doc.Find("aside .truncate").First().Text())
}

func TestAccountController(t *testing.T) {
	t.Run("linked employee", func(t *testing.T) {
		suite := itf.HTTP(t).AsRole("Employee")
		suite.GET("/profile").Expect(t).Status(http.StatusFound).RedirectTo("/employees/7")
	})

	t.Run("no employee record", func(t *testing.T) {
		suite := itf.HTTP(t).AsUser(&profile.Profile{ID: "2", Username: "ghost", Role: "Employee"})
		resp := suite.GET("/profile").Expect(t).Status(http.StatusFound).RedirectTo("/")
		require.NotNil(t, resp.Cookie("flash"))

		suite.Upstream.JSON(http.MethodGet, "/announcements", http.StatusOK, []any{})
		suite.GET("/").Cookie(resp.Cookie("flash")).Expect(t).
			Status(http.StatusOK).
			Contains("Profile not available. Please contact administrator.")
	})
}

func TestSpotlightController(t *testing.T) {
	suite := itf.HTTP(t).AsRole("Employee")

	resp := suite.GET("/spotlight/search?q=home").HTMX().Expect(t).Status(http.StatusOK)
	assert.Equal(t, "/", resp.HTML().Find("li a").First().AttrOr("href", ""))

	suite.GET("/spotlight/search?q=zzzzzz").HTMX().Expect(t).
		Status(http.StatusOK).
		Contains("spotlight-empty")
}

func TestHealthController(t *testing.T) {
	suite := itf.HTTP(t)
	suite.GET("/health").Expect(t).Status(http.StatusOK).Contains(`"status":"ok"`)

	suite.Upstream.JSON(http.MethodGet, "/", http.StatusNotFound, map[string]string{"message": "Cannot GET /"})
	suite.GET("/health?deep=1").Expect(t).Status(http.StatusOK).Contains(`"api":"up"`)

	suite.Upstream.Close()
	suite.GET("/health?deep=1").Expect(t).Status(http.StatusServiceUnavailable).Contains(`"status":"degraded"`)
}

func TestNotFound(t *testing.T) {
	suite := itf.HTTP(t)
	resp := suite.GET("/no/such/page").Expect(t).Status(http.StatusNotFound)
	assert.Equal(t, "Page not found", resp.HTML().Find("h1").Text())
}
