package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey         ContextKey = "app"
	LoggerKey      ContextKey = "logger"
	ParamsKey      ContextKey = "params"
	PageContext    ContextKey = "pageContext"
	RequestStart   ContextKey = "requestStart"
	NavItemsKey    ContextKey = "navItems"
	AllNavItemsKey ContextKey = "allNavItems"
	TokenKey       ContextKey = "token"
	ProfileKey     ContextKey = "profile"
	HeadKey        ContextKey = "head"
	RequestIDKey   ContextKey = "requestID"
	FlashKey       ContextKey = "flash"
)

// Wire and display layouts for calendar dates.
const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "1/2/2006"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
