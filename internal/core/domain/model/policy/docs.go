// Package policy provides the tenant-wide retry/automation configuration.
//
// RetryPolicy is the single source of truth for automation knobs: which
// statuses count as retries versus confirmations, the retry budget, the
// auto-move target for exhausted orders, working hours gating for the work
// queue, notification flags and the shipping handoff sub-policy.
//
// The policy is versioned. Assignments snapshot the retry budget at
// assignment time, so saving an edited policy never changes in-flight work.
package policy
