package services

import (
	"context"

	"github.com/ati-intranet/portal/modules/core/domain/entities/announcement"
	"github.com/ati-intranet/portal/pkg/apiclient"
)

type AnnouncementService struct {
	api *apiclient.Client
}

func NewAnnouncementService(api *apiclient.Client) *AnnouncementService {
	return &AnnouncementService{api: api}
}

// Latest returns the announcements feed. A body that is not a list yields none.
func (s *AnnouncementService) Latest(ctx context.Context) ([]announcement.Announcement, error) {
	return apiclient.GetList[announcement.Announcement](ctx, s.api, "/announcements", nil)
}
