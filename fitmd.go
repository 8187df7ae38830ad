// Package fitmd converts already-rendered HTML into clean, LLM-consumable
// Markdown. It isolates the main content of a page, optionally filters it to
// the blocks most relevant to a query (BM25) or most likely to be genuine
// content (pruning), and produces raw and "fit" Markdown variants with
// numbered citations.
//
// This package contains domain types, interfaces, and the pure scoring
// algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, trafilatura/, htmltomarkdown/).
package fitmd
