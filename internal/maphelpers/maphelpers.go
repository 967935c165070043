/*
Copyright Hyperfed Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package maphelpers provides utilities for JSON object trees decoded into maps.
package maphelpers

// CopyMap performs a deep copy of a map, including nested maps and slices.
func CopyMap(m map[string]interface{}) map[string]interface{} {
	cm := make(map[string]interface{}, len(m))

	for k, v := range m {
		cm[k] = copyValue(v)
	}

	return cm
}

// CopySlice performs a deep copy of a slice, including nested maps and slices.
func CopySlice(s []interface{}) []interface{} {
	cs := make([]interface{}, len(s))

	for i, v := range s {
		cs[i] = copyValue(v)
	}

	return cs
}

// CopyValue performs a deep copy of an arbitrary JSON value.
func CopyValue(v interface{}) interface{} {
	return copyValue(v)
}

func copyValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case map[string]interface{}:
		return CopyMap(tv)
	case []interface{}:
		return CopySlice(tv)
	default:
		return v
	}
}
