// Package fetch retrieves pages over HTTP and parses them into goquery
// documents for the extractors. A non-2xx response or network failure is an
// error; callers decide whether that is fatal (source table) or not
// (optional detail page).
package fetch
