// Package correlate partitions unlabeled stream descriptors into candidate
// attachment groups.
//
// The engine never fails outright: descriptors that find no eligible
// partner become single-member groups, a deliberate conservative bias since
// a human can merge two outputs afterwards but cannot un-merge a wrongly
// combined one.
//
// Matching is driven by a pure scoring function (ScorePair) over duration
// delta, timestamp delta, and filename affinity, with explicit tie-breaks
// so the partition is independent of input ordering.
package correlate
