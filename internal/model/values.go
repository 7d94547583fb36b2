// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// toValue converts a native Go value into a cty.Value. A cty.Value is
// returned unchanged and nil becomes the null value.
func toValue(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return None(), nil
	case cty.Value:
		return tv, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot represent %T as a parameter value: %w", v, err)
	}
	val, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot convert %T to %s: %w", v, ty.FriendlyName(), err)
	}
	return val, nil
}
