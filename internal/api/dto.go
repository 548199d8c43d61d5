package api

import "github.com/dmitrymomot/servicekit/pkg/useragent"

type agentDTO struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type userAgentDTO struct {
	Primary       agentDTO   `json:"primary"`
	Informational []agentDTO `json:"informational"`
	NodeID        string     `json:"nodeId,omitempty"`
	Formatted     string     `json:"formatted"`
}

func toUserAgentDTO(ua useragent.UserAgent) userAgentDTO {
	informational := ua.Informational()
	dto := userAgentDTO{
		Primary:       toAgentDTO(ua.Primary()),
		Informational: make([]agentDTO, 0, len(informational)),
		Formatted:     useragent.Format(ua),
	}
	for _, a := range informational {
		dto.Informational = append(dto.Informational, toAgentDTO(a))
	}
	dto.NodeID, _ = ua.NodeID()
	return dto
}

func toAgentDTO(a useragent.Agent) agentDTO {
	return agentDTO{Name: a.Name(), Version: a.Version()}
}

type parseRequest struct {
	UserAgent string `json:"userAgent"`
	Strict    bool   `json:"strict"`
}

type formatRequest struct {
	Primary       agentDTO   `json:"primary"`
	Informational []agentDTO `json:"informational"`
	NodeID        string     `json:"nodeId"`
}

type formatResult struct {
	Formatted string `json:"formatted"`
}
