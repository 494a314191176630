package usecase

import (
	"context"

	"portfolio-site/internal/domain"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthProbe reports the state of one dependency; nil means healthy.
type HealthProbe func(ctx context.Context) error

type healthUsecase struct {
	content domain.ContentRepository
	relay   domain.Relay
	probes  map[string]HealthProbe
}

func NewHealthUsecase(content domain.ContentRepository, relay domain.Relay, probes map[string]HealthProbe) HealthUsecase {
	return &healthUsecase{content: content, relay: relay, probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status":  "ok",
		"content": "ok",
		"relay":   "configured",
	}
	if u.content == nil {
		out["content"] = "missing"
		out["status"] = "degraded"
	} else if _, err := u.content.Current(ctx); err != nil {
		out["content"] = err.Error()
		out["status"] = "degraded"
	}
	if u.relay == nil {
		out["relay"] = "not configured"
		out["status"] = "degraded"
	}
	for name, probe := range u.probes {
		if err := probe(ctx); err != nil {
			out[name] = err.Error()
			out["status"] = "degraded"
			continue
		}
		out[name] = "ok"
	}
	return out
}
