// Package services implements music catalog providers.
//
// Two providers implement [Catalog]: a ytmusic proxy client and a scraper
// for the public search results page. Resilient wraps either so upstream
// failures degrade to empty or fallback results, and Cached adds a bounded
// TTL cache in front.
package services
