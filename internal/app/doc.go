// Package app wires the state containers to the transport for one session.
//
// New builds every container explicitly; there are no package-level
// singletons. Close tears them down. Flows that span containers (login,
// logout, loading collections through the cache) live here so the
// containers themselves stay synchronous and network-free.
//
// # Collections cache
//
// Collections follows the workspace cache policy:
//
//  1. fresh entry: the cached list becomes the current view, no network;
//  2. stale entry: the stale list is shown with the entry marked refreshing
//     while the list is fetched, then replaced;
//  3. no entry: the list is fetched and cached.
//
// A failed fetch clears the refreshing flag, records the error on the
// workspace state and raises an error toast. Concurrent fetches for the same
// workspace are not coalesced; the last response to arrive wins.
package app
