package htmx

import "net/http"

const (
	HeaderRequest    = "Hx-Request"
	HeaderRedirect   = "Hx-Redirect"
	HeaderPushURL    = "Hx-Push-Url"
	HeaderTrigger    = "Hx-Trigger"
	HeaderRetarget   = "Hx-Retarget"
	HeaderReswap     = "Hx-Reswap"
	HeaderCurrentURL = "Hx-Current-Url"
)

// IsHxRequest reports whether r was issued by htmx.
func IsHxRequest(r *http.Request) bool {
	return len(r.Header.Get(HeaderRequest)) > 0
}

// Redirect asks htmx to perform a full client side navigation.
func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderRedirect, url)
}

func PushUrl(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderPushURL, url)
}

func SetTrigger(w http.ResponseWriter, event, detail string) {
	if detail == "" {
		w.Header().Set(HeaderTrigger, event)
		return
	}
	w.Header().Set(HeaderTrigger, `{"`+event+`":`+detail+`}`)
}

// Retarget swaps the response into target instead of the requesting element.
func Retarget(w http.ResponseWriter, target string) {
	w.Header().Set(HeaderRetarget, target)
	w.Header().Set(HeaderReswap, "innerHTML")
}
