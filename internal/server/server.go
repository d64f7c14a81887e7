// Package server содержит административный HTTP API для мониторов, ставок и состояния циклов.
package server

// Server объединяет серверы отдельных сущностей
type Server struct {
	MonitorServer
	BidServer
	MonitoringServer
}

func NewServer(
	monitorServer MonitorServer,
	bidServer BidServer,
	monitoringServer MonitoringServer,
) Server {
	return Server{
		MonitorServer:    monitorServer,
		BidServer:        bidServer,
		MonitoringServer: monitoringServer,
	}
}
