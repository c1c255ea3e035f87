package main

import (
	"time"

	"github.com/spf13/cobra"
)

type optional[T any] struct {
	val     T
	isEmpty bool
}

func (o optional[T]) IsEmpty() bool {
	return o.isEmpty
}

func (o optional[T]) Get() T {
	return o.val
}

// Ptr returns nil when empty.
func (o optional[T]) Ptr() *T {
	if o.isEmpty {
		return nil
	}
	v := o.val
	return &v
}

func Optional[T any](val T) optional[T] {
	return optional[T]{
		val: val,
	}
}

func EmptyOptional[T any]() optional[T] {
	return optional[T]{
		isEmpty: true,
	}
}

// stringFlag is empty unless the user passed the flag.
func stringFlag(cmd *cobra.Command, name string) optional[string] {
	if !cmd.Flags().Changed(name) {
		return EmptyOptional[string]()
	}
	v, _ := cmd.Flags().GetString(name)
	return Optional(v)
}

func durationFlag(cmd *cobra.Command, name string) optional[time.Duration] {
	if !cmd.Flags().Changed(name) {
		return EmptyOptional[time.Duration]()
	}
	v, _ := cmd.Flags().GetDuration(name)
	return Optional(v)
}
