// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lensed

import (
	"encoding/base64"
	"fmt"
)

// Base64Lens implements the "base64" lens.
// It has no structure: the only valid pointer is "/", which selects the decoded payload.
// Useful to reach documents stored in Secret data.
type Base64Lens struct{}

// Apply implements the Lens interface.
func (Base64Lens) Apply(src []byte, vals []Setter) ([]byte, error) {
	enc := base64.StdEncoding

	b, err := enc.DecodeString(string(src))
	if err != nil {
		return nil, err
	}

	for _, v := range vals {
		if p := v.Pointer; p != "/" {
			return nil, fmt.Errorf("base64 lens has no structure, invalid pointer %q", p)
		}
		b, err = v.Value.Transform(b)
		if err != nil {
			return nil, err
		}
	}
	return []byte(enc.EncodeToString(b)), nil
}
