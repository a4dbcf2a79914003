// Package postrewriter provides tools for rewriting content management
// system posts: it extracts article content from arbitrary web pages,
// restructures it into clean semantic HTML, strips post bodies down to
// their images, and merges extracted content into existing posts.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. goquery/,
// wordpress/, rod/).
package postrewriter
