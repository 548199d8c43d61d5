package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/servicekit/pkg/agentstats"
	"github.com/dmitrymomot/servicekit/pkg/serviceerror"
	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

const maxBodyBytes = 64 << 10

type handlers struct {
	store agentstats.Store
	log   *slog.Logger
}

func (h *handlers) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if !req.Strict {
		respond(w, r, h.log, toUserAgentDTO(useragent.TryParse(req.UserAgent)))
		return
	}

	ua, err := useragent.Parse(req.UserAgent)
	if err != nil {
		respondError(w, r, h.log, serviceerror.Wrap(serviceerror.DefaultInvalidArgument, err, serviceerror.UnsafeArg("userAgent", req.UserAgent)))
		return
	}
	respond(w, r, h.log, toUserAgentDTO(ua))
}

func (h *handlers) format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	ua, err := buildUserAgent(req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, r, h.log, formatResult{Formatted: useragent.Format(ua)})
}

func buildUserAgent(req formatRequest) (useragent.UserAgent, error) {
	primary, err := useragent.NewAgent(req.Primary.Name, req.Primary.Version)
	if err != nil {
		return useragent.UserAgent{}, invalidField("primary.name", req.Primary.Name, err)
	}

	ua := useragent.New(primary)
	if req.NodeID != "" {
		if ua, err = useragent.NewWithNodeID(primary, req.NodeID); err != nil {
			return useragent.UserAgent{}, invalidField("nodeId", req.NodeID, err)
		}
	}

	for i, dto := range req.Informational {
		a, err := useragent.NewAgent(dto.Name, dto.Version)
		if err != nil {
			return useragent.UserAgent{}, invalidField(fmt.Sprintf("informational[%d].name", i), dto.Name, err)
		}
		ua = ua.AddAgent(a)
	}
	return ua, nil
}

func invalidField(field, value string, cause error) error {
	return serviceerror.Wrap(serviceerror.DefaultInvalidArgument, cause,
		serviceerror.SafeArg("field", field),
		serviceerror.UnsafeArg("value", value),
	)
}

// self echoes the caller's user agent as this service understood it.
func (h *handlers) self(w http.ResponseWriter, r *http.Request) {
	ua, ok := useragent.FromContext(r.Context())
	if !ok {
		ua = useragent.TryParseRequest(useragent.HTTPHeader(r.Header))
	}
	respond(w, r, h.log, toUserAgentDTO(ua))
}

func (h *handlers) listAgents(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Snapshot(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if entries == nil {
		entries = []agentstats.Entry{}
	}
	respond(w, r, h.log, entries)
}

func (h *handlers) resetAgents(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, h.log, serviceerror.New(serviceerror.DefaultNotFound, serviceerror.SafeArg("path", r.URL.Path)))
}

func (h *handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, h.log, serviceerror.New(errMethodNotAllowed, serviceerror.SafeArg("method", r.Method)))
}
