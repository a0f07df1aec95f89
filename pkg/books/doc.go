// Package books defines the book record held by a stacks inventory and its
// availability state machine.
//
// A Book is either available or issued. Issue and Return are the only
// transitions; each rejects a book that is already in the target state with an
// error satisfying errors.IsConflict and leaves the book unchanged.
//
//	b := books.New("Dune", "Frank Herbert", "111")
//	if err := b.Issue(); err != nil {
//	    // already issued
//	}
//	fmt.Println(b) // Dune | Frank Herbert | ISBN: 111 | Status: issued
package books
