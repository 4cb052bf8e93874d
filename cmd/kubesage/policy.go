// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mkmik/multierror"
	"go.uber.org/zap"
	"kubesage.io/pkg/editable"
	"kubesage.io/pkg/policy"
)

type PolicyCmd struct {
	List  PolicyListCmd  `cmd:"" help:"List published policies."`
	Show  PolicyShowCmd  `cmd:"" help:"Show a policy and its editable fields."`
	Apply PolicyApplyCmd `cmd:"" help:"Apply a policy to a cluster, optionally editing its fields first."`
}

// PolicyFlags configure the policy service client.
type PolicyFlags struct {
	URL     string        `name:"policy-url" env:"KUBESAGE_POLICY_URL" default:"http://localhost:8002/api/v1" help:"Base URL of the policy service."`
	Token   string        `name:"token" env:"KUBESAGE_TOKEN" help:"Bearer token for the policy service."`
	Timeout time.Duration `name:"timeout" default:"30s" help:"Timeout of each request to the policy service."`
}

func (f *PolicyFlags) client(log *zap.Logger) (*policy.Client, error) {
	return policy.NewClient(policy.Options{
		BaseURL: f.URL,
		Token:   f.Token,
		Timeout: f.Timeout,
		Logger:  log,
	})
}

type PolicyListCmd struct {
	PolicyFlags

	Category string `name:"category" help:"Only list policies of this category."`
}

func (c *PolicyListCmd) Run(ctx *Context) error {
	cl, err := c.client(ctx.Log)
	if err != nil {
		return err
	}
	ps, err := cl.List(context.Background())
	if err != nil {
		return err
	}
	for _, p := range ps {
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		fmt.Fprintf(ctx.Stdout, "%s\t%s\t%s\n", p.ID, p.Category, p.Name)
	}
	return nil
}

type PolicyShowCmd struct {
	PolicyFlags

	Fields bool   `name:"fields" help:"Show only the editable fields instead of the whole document."`
	ID     string `arg:"" help:"Policy ID."`
}

func (c *PolicyShowCmd) Run(ctx *Context) error {
	cl, err := c.client(ctx.Log)
	if err != nil {
		return err
	}
	p, err := cl.Get(context.Background(), c.ID)
	if err != nil {
		return err
	}
	if c.Fields {
		fs := editable.ExtractFields(editable.NewDocument(p.YAMLContent))
		return encodeYAML(ctx.Stdout, fieldsNode([]namedFields{{name: p.ID, fields: fs}}))
	}
	_, err = fmt.Fprint(ctx.Stdout, p.YAMLContent)
	return err
}

type PolicyApplyCmd struct {
	PolicyFlags

	Cluster string   `name:"cluster" required:"" help:"Name of the cluster the policy is applied to."`
	From    []string `name:"from" type:"existingfile" help:"Read field values from one or more YAML files mapping field keys to values."`
	DryRun  bool     `name:"dry-run" help:"Print the document that would be applied and don't call the policy service."`
	ID      string   `arg:"" help:"Policy ID."`
	Values  []Setter `arg:"" optional:"" help:"Field values to set, as key=value. Keys are listed by 'policy show --fields'."`
}

func (c *PolicyApplyCmd) Run(ctx *Context) error {
	values := c.Values
	if len(c.From) > 0 {
		fromValues, err := settersFromFiles(c.From)
		if err != nil {
			return err
		}
		values = append(fromValues, values...)
	}

	cl, err := c.client(ctx.Log)
	if err != nil {
		return err
	}
	p, err := cl.Get(context.Background(), c.ID)
	if err != nil {
		return err
	}

	s := policy.NewSession(*p)
	var errs []error
	for _, v := range values {
		if err := s.Set(v.Field, v.Value); err != nil {
			errs = append(errs, err)
		}
	}
	if errs != nil {
		return multierror.Join(errs)
	}

	req := s.Request(c.Cluster)
	ctx.Log.Info("applying policy",
		zap.String("policy", p.ID),
		zap.String("cluster", c.Cluster),
		zap.Bool("edited", req.EditedYAML != ""),
	)

	if c.DryRun {
		_, err := fmt.Fprint(ctx.Stdout, s.YAML())
		return err
	}

	res, err := cl.Apply(context.Background(), p.ID, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout, "%s: %s\n", res.Status, res.Message)
	return nil
}
