// Package report renders timing summaries as plain-text tables. It
// consumes only the structured output shapes of the metrics and tool
// packages, so hosts can swap in their own presentation freely.
package report
