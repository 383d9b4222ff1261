// Package snapstore provides an in-memory, snapshot-isolated, versioned
// key-value store.
//
// Every write is tagged with the current epoch. [Store.TakeSnapshot]
// freezes that epoch as a snapshot id and advances it, so a snapshot sees
// exactly the writes made before it was taken. [Store.Get] resolves a key
// as of any live snapshot with a binary search over the key's version
// chain (see the [github.com/tarantool/go-snapstore/version] package).
//
// Operations can also be applied as values with [Store.Execute]; the
// [github.com/tarantool/go-snapstore/codec] package serializes them.
package snapstore
