// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"kubesage.io/pkg/policy"
)

func policyServer(t *testing.T, applied *policy.ApplyRequest) PolicyFlags {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/policies", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]policy.Policy{
			{ID: "restrict-registries", Name: "Restrict registries", Category: "security"},
			{ID: "require-labels", Name: "Require labels", Category: "best-practices"},
		})
	})
	mux.HandleFunc("/api/v1/policies/restrict-registries", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(policy.Policy{ID: "restrict-registries", Name: "Restrict registries", YAMLContent: testPolicy})
	})
	mux.HandleFunc("/api/v1/policies/restrict-registries/apply", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(applied); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(policy.ApplyResult{Status: "success", Message: "applied to " + applied.ClusterName})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return PolicyFlags{URL: srv.URL + "/api/v1", Timeout: 5 * time.Second}
}

func TestPolicyList(t *testing.T) {
	flags := policyServer(t, &policy.ApplyRequest{})

	testCases := []struct {
		category string
		want     string
	}{
		{"", "restrict-registries\tsecurity\tRestrict registries\nrequire-labels\tbest-practices\tRequire labels\n"},
		{"security", "restrict-registries\tsecurity\tRestrict registries\n"},
		{"none", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.category, func(t *testing.T) {
			ctx, out := newTestContext()
			cmd := PolicyListCmd{PolicyFlags: flags, Category: tc.category}
			if err := cmd.Run(ctx); err != nil {
				t.Fatal(err)
			}
			if got, want := out.String(), tc.want; got != want {
				t.Errorf("got: %q, want: %q", got, want)
			}
		})
	}
}

func TestPolicyShow(t *testing.T) {
	flags := policyServer(t, &policy.ApplyRequest{})

	ctx, out := newTestContext()
	if err := (&PolicyShowCmd{PolicyFlags: flags, ID: "restrict-registries"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), testPolicy; got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	ctx, out = newTestContext()
	if err := (&PolicyShowCmd{PolicyFlags: flags, ID: "restrict-registries", Fields: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "5_validationFailureAction: audit\n10_message: Unknown image registry.\n"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestPolicyShowNotFound(t *testing.T) {
	flags := policyServer(t, &policy.ApplyRequest{})

	ctx, _ := newTestContext()
	err := (&PolicyShowCmd{PolicyFlags: flags, ID: "nope"}).Run(ctx)
	var se *policy.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("expecting 404 status error, got: %v", err)
	}
}

func TestPolicyApply(t *testing.T) {
	testCases := []struct {
		name   string
		values []Setter
		want   policy.ApplyRequest
	}{
		{
			// 10_message is quoted, so the policy always counts as edited.
			"unedited",
			nil,
			policy.ApplyRequest{
				ClusterName: "prod",
				EditedYAML: strings.Replace(testPolicy,
					"validationFailureAction: audit ##editable", `validationFailureAction: "audit" ##editable`, 1),
			},
		},
		{
			"edited",
			[]Setter{{"5_validationFailureAction", "enforce"}},
			policy.ApplyRequest{
				ClusterName: "prod",
				EditedYAML: strings.Replace(testPolicy,
					"validationFailureAction: audit ##editable", `validationFailureAction: "enforce" ##editable`, 1),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var applied policy.ApplyRequest
			flags := policyServer(t, &applied)

			ctx, out := newTestContext()
			cmd := PolicyApplyCmd{PolicyFlags: flags, Cluster: "prod", ID: "restrict-registries", Values: tc.values}
			if err := cmd.Run(ctx); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, applied); diff != "" {
				t.Errorf("unexpected request (-want +got):\n%s", diff)
			}
			if got, want := out.String(), "success: applied to prod\n"; got != want {
				t.Errorf("got: %q, want: %q", got, want)
			}
		})
	}
}

func TestPolicyApplyDryRun(t *testing.T) {
	var applied policy.ApplyRequest
	flags := policyServer(t, &applied)

	ctx, out := newTestContext()
	cmd := PolicyApplyCmd{
		PolicyFlags: flags,
		Cluster:     "prod",
		ID:          "restrict-registries",
		DryRun:      true,
		Values:      []Setter{{"10_message", "Only ghcr.io."}},
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if applied.ClusterName != "" {
		t.Errorf("dry run called the policy service: %+v", applied)
	}
	if got := out.String(); !strings.Contains(got, `message: "Only ghcr.io."  ##editable`) {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestPolicyApplyUnknownField(t *testing.T) {
	var applied policy.ApplyRequest
	flags := policyServer(t, &applied)

	ctx, _ := newTestContext()
	cmd := PolicyApplyCmd{PolicyFlags: flags, Cluster: "prod", ID: "restrict-registries", Values: []Setter{{"6_background", "false"}}}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expecting error")
	}
	if applied.ClusterName != "" {
		t.Errorf("policy applied despite error: %+v", applied)
	}
}
