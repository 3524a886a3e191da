package shared

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/form"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/types"
)

// DateOnly is a form field carrying a yyyy-mm-dd date. Blank input leaves it zero.
type DateOnly time.Time

func (d DateOnly) Time() time.Time {
	return time.Time(d)
}

func (d DateOnly) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d DateOnly) String() string {
	if d.IsZero() {
		return ""
	}
	return time.Time(d).Format(constants.DateLayout)
}

var Decoder = newDecoder()

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		v := strings.TrimSpace(vals[0])
		if v == "" {
			return DateOnly{}, nil
		}
		t, err := time.Parse(constants.DateLayout, v)
		if err != nil {
			return nil, err
		}
		return DateOnly(t), nil
	}, DateOnly{})
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		v := strings.TrimSpace(vals[0])
		if v == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(v)
	}, decimal.Decimal{})
	return d
}

// ParseID reads the {id} route variable.
func ParseID(r *http.Request) (types.ID, error) {
	return types.ParseID(mux.Vars(r)["id"])
}
