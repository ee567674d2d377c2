// Package workspace holds the workspace list, the active workspace and a
// time-boxed cache of each workspace's collections.
//
// # Cache policy
//
// Each cache entry records the collections of one workspace, the time they
// were captured and whether a background refresh is in flight. An entry is
// fresh while now - captured < CacheDuration (five minutes). Stale entries
// are never handed out as authoritative: GetCachedCollections reports a miss
// and the caller goes to the network. The refreshing flag lets a view keep
// showing stale data with an "updating" indicator while that fetch runs.
//
// Concurrent fetches for the same workspace resolve as last writer wins.
// Responses that arrive out of order overwrite fresher data; callers that
// care must sequence their own fetches.
package workspace
