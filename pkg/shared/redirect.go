package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ati-intranet/portal/pkg/htmx"
)

// Redirect sends the browser to path; htmx requests get an Hx-Redirect header instead of a 302.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusFound)
}

// SetFlash stores a one-shot value that the next request reads and clears.
func SetFlash(w http.ResponseWriter, name string, value []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString(value),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

func SetFlashMap[K comparable, V any](w http.ResponseWriter, name string, value map[K]V) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	SetFlash(w, name, b)
}

// FlashCookie carries the notice shown on the page after a redirect.
const FlashCookie = "flash"

type flashNotice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func FlashSuccess(w http.ResponseWriter, message string) {
	setNotice(w, "success", message)
}

func FlashError(w http.ResponseWriter, message string) {
	setNotice(w, "error", message)
}

func setNotice(w http.ResponseWriter, kind, message string) {
	b, err := json.Marshal(flashNotice{Kind: kind, Message: message})
	if err != nil {
		return
	}
	SetFlash(w, FlashCookie, b)
}
