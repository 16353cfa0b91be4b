package config

import "time"

type HTTPConfig interface {
	GetRequestTimeout() time.Duration
}

type HTTP struct{}

var _ HTTPConfig = HTTP{}

func (HTTP) GetRequestTimeout() time.Duration {
	return 30 * time.Second // Transport-level ceiling; individual requests carry no explicit deadline
}
