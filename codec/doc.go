// Package codec serializes store operations and their results with
// msgpack, for use across process boundaries.
//
// An operation is encoded as an array whose first element is its name:
//
//	["put", key, value]
//	["get", key, snapshot]
//	["delete", key]
//	["snapshot"]
//	["delete_snapshot", snapshot]
//
// A result is encoded as a map with the keys op, ok, value, has_value,
// snapshot, error (the error kind name) and message.
package codec
