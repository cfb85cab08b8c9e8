// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with small generic
helpers for reshaping decoded payloads and table rows.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Collect maps every element and keeps the ones transform accepts.
//
// The result is never nil, so it encodes as [] in JSON.
func Collect[T any, U any](input []T, transform func(T) (U, bool)) []U {
	result := make([]U, 0, len(input))
	for _, v := range input {
		if mapped, ok := transform(v); ok {
			result = append(result, mapped)
		}
	}
	return result
}
