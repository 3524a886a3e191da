package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/holidays/domain/entities/holiday"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/eventbus"
)

var ErrNoHolidays = errors.New("no holidays to add")

type HolidayService struct {
	api       *apiclient.Client
	publisher eventbus.EventBus
}

func NewHolidayService(api *apiclient.Client, publisher eventbus.EventBus) *HolidayService {
	return &HolidayService{api: api, publisher: publisher}
}

func (s *HolidayService) GetByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	return apiclient.GetList[holiday.Holiday](ctx, s.api, "/holidays", url.Values{"year": {strconv.Itoa(year)}})
}

type bulkRequest struct {
	Holidays []holiday.Holiday `json:"holidays"`
}

// AddBulk stores every holiday of the batch in one request.
func (s *HolidayService) AddBulk(ctx context.Context, year int, list []holiday.Holiday) error {
	if len(list) == 0 {
		return ErrNoHolidays
	}
	if err := s.api.Post(ctx, "/holidays", &bulkRequest{Holidays: list}, nil); err != nil {
		return errors.Wrapf(err, "add %d holidays", len(list))
	}
	if s.publisher != nil {
		ev := &holiday.AddedEvent{Year: year, Holidays: list}
		if p, err := composables.UseProfile(ctx); err == nil {
			ev.Actor = p.Username
		}
		s.publisher.Publish(ev)
	}
	return nil
}
