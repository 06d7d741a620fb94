// Package listmodel provides the ordered, role-projected collection shared by
// every shell view model.
//
// A model exposes rows addressed by index and projects each row's attributes
// as numbered roles. Observers receive structural changes as a begin/end
// bracket around the mutation and attribute changes as data-changed ranges.
//
// Key Components:
//   - Change: the pending change value passed at begin and at end
//   - Observer, Funcs: notification sinks
//   - Notifier, Subscription: subscriber set with revocable tokens
//   - List: generic ordered storage that enforces the bracket discipline
//   - Model: the read contract consumed by views and the API layer
//
// Bracket Discipline:
//
//	BeginChange is delivered before the backing slice is touched and
//	EndChange after it is consistent again. Observers may read the model
//	from either callback and always see a complete state. Structural
//	mutations requested from inside a callback fail with ErrReentrant.
//
// Models are not safe for concurrent use; callers serialize access.
package listmodel
