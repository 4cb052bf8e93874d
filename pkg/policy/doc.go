// SPDX-License-Identifier: BSD-2-Clause

/*
Package policy talks to the KubeSage policy-management service and implements the
policy application workflow.

A policy is a YAML manifest whose editable fields are marked with "##editable"
comments. Applying a policy opens an edit Session, lets the caller change field
values, and sends an ApplyRequest. The request carries the edited YAML only when
at least one field differs from the policy as published; otherwise the service
applies its own copy.
*/
package policy
