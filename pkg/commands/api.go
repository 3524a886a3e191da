package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/configuration"
)

// PingAPI checks the HR API configured by API_BASE_URL.
func PingAPI(ctx context.Context, w io.Writer) error {
	conf := configuration.Use()
	api, err := apiclient.New(apiclient.Options{
		BaseURL:         conf.API.BaseURL,
		Timeout:         conf.API.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
		Logger:          conf.Logger(),
	})
	if err != nil {
		return err
	}
	return ping(ctx, w, api)
}

func ping(ctx context.Context, w io.Writer, api *apiclient.Client) error {
	took, err := api.Ping(ctx)
	if err != nil {
		return errors.Wrapf(err, "api %s unreachable", api.BaseURL())
	}
	fmt.Fprintf(w, "api %s is up (%s)\n", api.BaseURL(), took)
	return nil
}
