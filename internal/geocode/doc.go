// Package geocode resolves normalized location strings to coordinates using a
// prefetched location cache.
//
// The cache is a JSON object mapping a location string to a [lat, lon] pair.
// Lookups try an exact key first and then scan the keys in document order for
// the first key that contains the query or is contained by it. The first
// structural match wins, even if a later key would be a closer match.
package geocode
