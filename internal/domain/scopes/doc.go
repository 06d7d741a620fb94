// Package scopes provides the categorized search-results view models.
//
// Categories is a role-projected list of categories. Each row owns a Results
// collection that is built on first access and memoized by row index. Any
// structural change of the category list discards every memoized Results,
// because row indices are the cache key and they shift under insert and
// remove.
//
// Components:
//   - Categories: the parent collection and its lazy results cache
//   - Results: the per-category result collection
//   - CountSource, Counter: externally driven badge counts for special rows
//   - Renderer, Components: presentation hints computed on every read
//
// Example Usage:
//
//	cats := scopes.NewCategories(3)
//	unread := scopes.NewCounter(5)
//	cats.AddSpecialCategory("inbox", "Inbox", "mail", "", unread)
//	results := cats.Data(1, scopes.RoleResults).(*scopes.Results)
//	unread.Set(7) // DataChanged(0, 0, [RoleCount])
package scopes
