package infra

import (
	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
)

type Clients struct {
	station  interfaces.Station
	bqClient interfaces.BigQuery
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Station() interfaces.Station {
	return x.station
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}

func WithStation(client interfaces.Station) Option {
	return func(x *Clients) {
		x.station = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}
