// Package reindex rebuilds the derivable full-text indexes from the detail
// store. The identity and address source indexes are projections of stored
// detail records, so after index loss or corruption they can be
// reconstructed without replaying the original feeds. Contact and account
// documents carry fields the detail store does not keep and are outside
// this package's reach.
//
// Document identifiers are derived from entity keys, so running a rebuild
// twice overwrites rather than duplicates.
package reindex
