package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Unauthorized        failure.ErrorCode = "Unauthorized"

	// Мониторинг
	TransientFetchFailed failure.ErrorCode = "TransientFetchFailed" // Не удалось получить лот/группу с маркетплейса
	DeliveryFailed       failure.ErrorCode = "DeliveryFailed"       // Уведомление не доставлено
	CycleFailed          failure.ErrorCode = "CycleFailed"          // Цикл опроса прерван целиком
	CycleInProgress      failure.ErrorCode = "CycleInProgress"      // Цикл этого вида ещё выполняется

	// Подписки и ставки
	MonitorNotFound   failure.ErrorCode = "MonitorNotFound"
	BidNotFound       failure.ErrorCode = "BidNotFound"
	InvalidTransition failure.ErrorCode = "InvalidTransition" // Переход из терминального статуса
	InvalidItemID     failure.ErrorCode = "InvalidItemID"
	InvalidListing    failure.ErrorCode = "InvalidListingType"
	InvalidMaxBid     failure.ErrorCode = "InvalidMaxBid"
)
