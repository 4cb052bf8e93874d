// SPDX-License-Identifier: BSD-2-Clause

package policy

import (
	"fmt"
)

// A Policy as published by the policy service.
type Policy struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	YAMLContent string `json:"yaml_content" yaml:"-"`
}

// An ApplyRequest asks the service to apply a policy to a cluster.
// EditedYAML overrides the published policy content when set.
type ApplyRequest struct {
	ClusterName string `json:"cluster_name"`
	EditedYAML  string `json:"edited_yaml,omitempty"`
}

// An ApplyResult is the service's answer to an ApplyRequest.
type ApplyResult struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	AppliedYAML string `json:"applied_yaml,omitempty"`
}

// A StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Code, e.Body)
}
