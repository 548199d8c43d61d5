package agentstats

import "errors"

var (
	ErrTooManyAgents                = errors.New("agent stats: distinct agent limit reached")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrStoreFailure                 = errors.New("agent stats store failure")
)
