package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/modules/core/domain/entities/session"
	"github.com/ati-intranet/portal/pkg/itf"
)

func TestLoginController_Get(t *testing.T) {
	suite := itf.HTTP(t)

	doc := suite.GET("/login?next=/leave").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, "/leave", doc.Find(`input[name="Next"]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("aside").Length())
	assert.Equal(t, 1, doc.Find(`a[href="/signup"]`).Length())
}

func TestLoginController_Post_Success(t *testing.T) {
	suite := itf.HTTP(t)
	suite.Upstream.JSON(http.MethodPost, "/auth/login", http.StatusCreated, map[string]string{"access_token": "tok-1"})
	var signedIn *session.SignedInEvent
	suite.App.EventPublisher().Subscribe(func(ev *session.SignedInEvent) { signedIn = ev })

	resp := suite.POST("/login").Form(url.Values{
		"Username": {"alice"},
		"Password": {"secret"},
		"Next":     {"/leave"},
	}).Expect(t).Status(http.StatusFound).RedirectTo("/leave")

	cookie := resp.Cookie("token")
	require.NotNil(t, cookie)
	assert.Equal(t, "tok-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var body map[string]string
	suite.Upstream.Last(t, http.MethodPost, "/auth/login").JSON(t, &body)
	assert.Equal(t, map[string]string{"username": "alice", "password": "secret"}, body)
	require.NotNil(t, signedIn)
	assert.Equal(t, "alice", signedIn.Username)
}

func TestLoginController_Post_RejectsOffsiteNext(t *testing.T) {
	suite := itf.HTTP(t)
	suite.Upstream.JSON(http.MethodPost, "/auth/login", http.StatusOK, map[string]string{"access_token": "tok-1"})

	suite.POST("/login").Form(url.Values{
		"Username": {"alice"},
		"Password": {"secret"},
		"Next":     {"//evil.example"},
	}).Expect(t).Status(http.StatusFound).RedirectTo("/")
}

func TestLoginController_Post_InvalidCredentials(t *testing.T) {
	suite := itf.HTTP(t)
	suite.Upstream.JSON(http.MethodPost, "/auth/login", http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})

	resp := suite.POST("/login").Form(url.Values{
		"Username": {"alice"},
		"Password": {"wrong"},
	}).Expect(t).Status(http.StatusUnauthorized)

	assert.Equal(t, "Invalid credentials", resp.HTML().Find("#login-error").Text())
	assert.Nil(t, resp.Cookie("token"))
}

func TestLoginController_Post_Unreachable(t *testing.T) {
	suite := itf.HTTP(t)
	suite.Upstream.Close()

	resp := suite.POST("/login").Form(url.Values{
		"Username": {"alice"},
		"Password": {"secret"},
	}).Expect(t).Status(http.StatusBadGateway)

	assert.Equal(t, "Login failed", resp.HTML().Find("#login-error").Text())
}

func TestLoginController_Post_Validation(t *testing.T) {
	suite := itf.HTTP(t)

	resp := suite.POST("/login").Form(url.Values{"Username": {"alice"}}).
		Expect(t).Status(http.StatusUnprocessableEntity)

	assert.Equal(t, "Password is required", resp.HTML().Find(".field-error").Text())
	assert.Empty(t, suite.Upstream.Requests(http.MethodPost, "/auth/login"))
}

func TestSignupController(t *testing.T) {
	suite := itf.HTTP(t)
	suite.Upstream.JSON(http.MethodPost, "/auth/signup", http.StatusCreated, map[string]any{"id": 3})

	resp := suite.POST("/signup").Form(url.Values{
		"Username":  {"bob"},
		"Email":     {"bob@ati.test"},
		"Password":  {"pw"},
		"FirstName": {"Bob"},
		"LastName":  {"Stone"},
	}).Expect(t).Status(http.StatusFound).RedirectTo("/login")
	require.NotNil(t, resp.Cookie("flash"))

	var body map[string]string
	suite.Upstream.Last(t, http.MethodPost, "/auth/signup").JSON(t, &body)
	assert.Equal(t, "Bob", body["first_name"])
	assert.Equal(t, "Stone", body["last_name"])
	assert.Equal(t, "bob@ati.test", body["email"])
}

func TestSignupController_Failure(t *testing.T) {
	suite := itf.HTTP(t)
	suite.Upstream.JSON(http.MethodPost, "/auth/signup", http.StatusConflict, map[string]string{"message": "exists"})

	resp := suite.POST("/signup").Form(url.Values{
		"Username":  {"bob"},
		"Email":     {"bob@ati.test"},
		"Password":  {"pw"},
		"FirstName": {"Bob"},
		"LastName":  {"Stone"},
	}).Expect(t).Status(http.StatusBadGateway)

	doc := resp.HTML()
	assert.Equal(t, "Signup failed", doc.Find("#signup-error").Text())
	assert.Equal(t, "bob", doc.Find(`input[name="Username"]`).AttrOr("value", ""))
}

func TestLogoutController(t *testing.T) {
	suite := itf.HTTP(t).AsRole("Employee")

	resp := suite.POST("/logout").Expect(t).Status(http.StatusFound).RedirectTo("/login")
	cookie := resp.Cookie("token")
	require.NotNil(t, cookie)
	assert.Equal(t, "", cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}
