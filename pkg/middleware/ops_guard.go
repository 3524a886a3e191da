package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/routing"
)

// opsCheck admits a request to an ops route.
type opsCheck func(r *http.Request) bool

// OpsGuard answers 404 for ops routes (/health, metrics) in production unless
// the caller passes one of the configured checks: source CIDR, ops token or
// basic auth. Outside production, or with OPS_GUARD_ENABLED=false, it is a
// no-op.
func OpsGuard(conf *configuration.Configuration, entrypoint string) mux.MiddlewareFunc {
	if conf == nil {
		conf = configuration.Use()
	}
	if conf.GoAppEnvironment != configuration.Production || !conf.OpsGuardEnabled {
		return func(next http.Handler) http.Handler { return next }
	}
	rules, err := routing.LoadAllowlistOrDefault("", entrypoint)
	if err != nil {
		rules = nil
	}
	classifier := routing.NewClassifier(rules)
	checks := opsChecks(conf)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if classifier.ClassifyPath(r.URL.Path) != routing.RouteClassOps || admitted(checks, r) {
				next.ServeHTTP(w, r)
				return
			}
			if logger, err := composables.TryUseLogger(r.Context()); err == nil {
				logger.WithField("path", r.URL.Path).Warn("ops route denied")
			}
			http.NotFound(w, r)
		})
	}
}

func admitted(checks []opsCheck, r *http.Request) bool {
	for _, check := range checks {
		if check(r) {
			return true
		}
	}
	return false
}

func opsChecks(conf *configuration.Configuration) []opsCheck {
	var checks []opsCheck
	if prefixes := parseCIDRs(conf.OpsGuardCIDRs); len(prefixes) > 0 {
		header := conf.RealIPHeader
		checks = append(checks, func(r *http.Request) bool {
			ip, ok := realIP(r, header)
			if !ok {
				return false
			}
			addr, err := netip.ParseAddr(ip)
			if err != nil {
				return false
			}
			for _, p := range prefixes {
				if p.Contains(addr) {
					return true
				}
			}
			return false
		})
	}
	if token := strings.TrimSpace(conf.OpsGuardToken); token != "" {
		checks = append(checks, func(r *http.Request) bool {
			return equal(opsToken(r), token)
		})
	}
	user, pass := strings.TrimSpace(conf.OpsGuardBasicAuthUser), strings.TrimSpace(conf.OpsGuardBasicAuthPass)
	if user != "" || pass != "" {
		checks = append(checks, func(r *http.Request) bool {
			u, p, ok := r.BasicAuth()
			return ok && equal(u, user) && equal(p, pass)
		})
	}
	return checks
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// parseCIDRs accepts prefixes separated by commas, semicolons or whitespace;
// malformed entries are dropped.
func parseCIDRs(raw string) []netip.Prefix {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	var out []netip.Prefix
	for _, part := range parts {
		if p, err := netip.ParsePrefix(part); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// opsToken reads X-Ops-Token, then a bearer Authorization header.
func opsToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("X-Ops-Token")); t != "" {
		return t
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

// realIP prefers header (first hop of an X-Forwarded-For style list) over
// the connection address.
func realIP(r *http.Request, header string) (string, bool) {
	v := ""
	if header != "" {
		v = r.Header.Get(header)
		if first, _, found := strings.Cut(v, ","); found {
			v = first
		}
	}
	v = strings.TrimSpace(v)
	if v == "" {
		v = strings.TrimSpace(r.RemoteAddr)
	}
	if v == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(v); err == nil {
		return host, true
	}
	return v, true
}
