// Package gapscan provides a content gap analysis engine for articles.
// It converts fetched documents (HTML, reader-mode markdown, or plain
// text) into heading trees, fuzzy-matches headings and topics across
// documents using lexical heuristics, and reports topics, subtopics,
// and FAQ questions that competitor articles cover but a target article
// does not.
//
// This package contains domain types, interfaces, and the pure matching
// engine following Ben Johnson's Standard Package Layout. Implementations
// with external dependencies live in subdirectories named after their
// primary dependency (e.g., goquery/, sqlite/, rod/).
package gapscan
