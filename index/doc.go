// Package index provides the embedded full-text index behind unified
// search. It maintains one bleve index per source collection, fans queries
// out across them through an alias, and serves raw JSON result envelopes
// as an in-process search.Client.
package index
