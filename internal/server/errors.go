package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"deal_radar/internal/domain"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/httpx/reply"
)

// writeError переводит доменные коды в HTTP-статусы, остальное отдаёт reply.Error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		reply.Error(ctx, w, err)
		return
	}

	status := statusByCode(appErr.Code)

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = err.Error()
	}

	reply.Problem(ctx, w, status, appErr.Code, message)
}

func statusByCode(code failure.ErrorCode) int {
	switch code {
	case errcodes.ValidationError, errcodes.InvalidItemID, errcodes.InvalidListing, errcodes.InvalidMaxBid:
		return http.StatusBadRequest
	case errcodes.NotFound, errcodes.MonitorNotFound, errcodes.BidNotFound:
		return http.StatusNotFound
	case errcodes.Forbidden:
		return http.StatusForbidden
	case errcodes.InvalidTransition, errcodes.CycleInProgress:
		return http.StatusConflict
	case errcodes.TransientFetchFailed:
		return http.StatusBadGateway
	case errcodes.TimeoutExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func parseInt64(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, failure.NewInvalidArgumentError(
			fmt.Sprintf("invalid %s: %q", name, raw),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(name+" must be an integer"),
		)
	}

	return v, nil
}
