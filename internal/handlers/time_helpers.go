package handlers

import (
	"time"

	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/ident"
)

// Wire parsing shared by the handlers. Each helper returns a kinded business
// error so respondErr can map it without further inspection.

func parseID(s, code string) ([]byte, error) {
	b, err := ident.Parse(s)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.KindInvalidArgument, code)
	}
	return b, nil
}

func parseWireDate(s string) (time.Time, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.KindInvalidArgument, "invalid_date")
	}
	return d, nil
}

func checkWireTime(s, code string) error {
	if !domain.ValidTime(s) {
		return httperr.ErrBusiness(httperr.KindInvalidArgument, code)
	}
	return nil
}
