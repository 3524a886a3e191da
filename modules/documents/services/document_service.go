package services

import (
	"context"
	"net/url"

	"github.com/ati-intranet/portal/modules/documents/domain/entities/document"
	"github.com/ati-intranet/portal/pkg/apiclient"
)

type DocumentService struct {
	api *apiclient.Client
}

func NewDocumentService(api *apiclient.Client) *DocumentService {
	return &DocumentService{api: api}
}

// GetAll lists documents of one type; document.TypeAll lists every document.
func (s *DocumentService) GetAll(ctx context.Context, docType string) ([]document.Document, error) {
	var query url.Values
	if docType != "" && docType != document.TypeAll {
		query = url.Values{"type": {docType}}
	}
	return apiclient.GetList[document.Document](ctx, s.api, "/documents", query)
}
