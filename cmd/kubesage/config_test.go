// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
)

func TestTOMLConfig(t *testing.T) {
	const conf = `
policy_url = "https://kubesage.example.com/api/v1"
timeout = "5s"
verbose = true

[ignored]
token = "not me"
`
	r, err := tomlConfig(strings.NewReader(conf))
	if err != nil {
		t.Fatal(err)
	}

	var c struct {
		Verbose bool `name:"verbose"`
		PolicyFlags
	}
	p, err := kong.New(&c, kong.Resolvers(r))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse(nil); err != nil {
		t.Fatal(err)
	}

	if got, want := c.URL, "https://kubesage.example.com/api/v1"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
	if got, want := c.Timeout, 5*time.Second; got != want {
		t.Errorf("got: %v, want: %v", got, want)
	}
	if got, want := c.Token, ""; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
	if !c.Verbose {
		t.Error("expecting verbose")
	}
}

func TestTOMLConfigFlagsWin(t *testing.T) {
	r, err := tomlConfig(strings.NewReader(`token = "from-config"`))
	if err != nil {
		t.Fatal(err)
	}

	var c struct{ PolicyFlags }
	p, err := kong.New(&c, kong.Resolvers(r))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse([]string{"--token", "from-flag"}); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Token, "from-flag"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestTOMLConfigBad(t *testing.T) {
	if _, err := tomlConfig(strings.NewReader("not = [toml")); err == nil {
		t.Fatal("expecting error")
	}
}
